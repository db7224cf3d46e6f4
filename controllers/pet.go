package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/db"
	"github.com/petgroomhq/grooming-app/models"
	"github.com/petgroomhq/grooming-app/utils"
)

// GetAllPets lists pets, optionally filtered by owner (?customer_id=).
func GetAllPets(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	query := db.DB.Preload("Customer").Where("company_id = ?", companyID)
	if customerID := c.QueryInt("customer_id"); customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	var pets []models.Pet
	if err := query.Order("name asc").Find(&pets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch pets",
			Error:   err.Error(),
		})
	}
	return c.JSON(pets)
}

// GetPet returns a pet by ID.
func GetPet(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pet models.Pet
	if err := db.DB.Preload("Customer").Where("company_id = ?", companyID).First(&pet, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Pet not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(pet)
}

// CreatePet registers a pet for a customer.
func CreatePet(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	pet := new(models.Pet)
	if err := c.BodyParser(pet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if pet.Name == "" || pet.CustomerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name and customer are required",
		})
	}
	pet.CompanyID = companyID

	if err := db.DB.Create(pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create pet",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(pet)
}

// UpdatePet edits a pet's record.
func UpdatePet(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pet models.Pet
	if err := db.DB.Where("company_id = ?", companyID).First(&pet, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Pet not found",
			Error:   err.Error(),
		})
	}
	if err := c.BodyParser(&pet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	pet.CompanyID = companyID

	if err := db.DB.Save(&pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update pet",
			Error:   err.Error(),
		})
	}
	return c.JSON(pet)
}

// DeletePet soft-deletes a pet record.
func DeletePet(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pet models.Pet
	if err := db.DB.Where("company_id = ?", companyID).First(&pet, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Pet not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete pet",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPetPhoto stores a pet photo via cloudinary.
func UploadPetPhoto(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pet models.Pet
	if err := db.DB.Where("company_id = ?", companyID).First(&pet, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Pet not found",
			Error:   err.Error(),
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Photo file is required",
			Error:   err.Error(),
		})
	}
	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to read photo",
			Error:   err.Error(),
		})
	}
	defer src.Close()

	url, err := utils.UploadPetPhoto(src, fmt.Sprintf("pet-%d", pet.ID), "pet-photos")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	pet.PhotoURL = url
	if err := db.DB.Save(&pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update pet",
			Error:   err.Error(),
		})
	}
	return c.JSON(pet)
}

// GetPetRecords returns a pet's grooming history, newest first.
func GetPetRecords(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pet models.Pet
	if err := db.DB.Where("company_id = ?", companyID).First(&pet, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Pet not found",
			Error:   err.Error(),
		})
	}

	var records []models.GroomingRecord
	if err := db.DB.Where("company_id = ? AND pet_id = ?", companyID, pet.ID).
		Order("performed_at desc").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch records",
			Error:   err.Error(),
		})
	}
	return c.JSON(records)
}
