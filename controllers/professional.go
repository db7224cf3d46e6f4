package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/db"
	"github.com/petgroomhq/grooming-app/models"
	"github.com/petgroomhq/grooming-app/utils"
)

// GetAllProfessionals lists the company's professionals. Deactivated staff
// are excluded unless ?include_inactive=true.
func GetAllProfessionals(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	query := db.DB.Where("company_id = ?", companyID)
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var pros []models.Professional
	if err := query.Order("name asc").Find(&pros).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch professionals",
			Error:   err.Error(),
		})
	}
	return c.JSON(pros)
}

// GetProfessional returns a professional by ID.
func GetProfessional(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pro models.Professional
	if err := db.DB.Where("company_id = ?", companyID).First(&pro, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Professional not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(pro)
}

// CreateProfessional adds a staff member with their work schedule.
func CreateProfessional(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	pro := new(models.Professional)
	if err := c.BodyParser(pro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if pro.Name == "" || pro.StartTime == "" || pro.EndTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name, start time and end time are required",
		})
	}
	pro.CompanyID = companyID
	pro.IsActive = true

	if err := db.DB.Create(pro).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create professional",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(pro)
}

// UpdateProfessional edits a staff record or schedule. Existing appointments
// keep their frozen durations; schedule changes only affect new availability.
func UpdateProfessional(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pro models.Professional
	if err := db.DB.Where("company_id = ?", companyID).First(&pro, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Professional not found",
			Error:   err.Error(),
		})
	}
	if err := c.BodyParser(&pro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	pro.CompanyID = companyID

	if err := db.DB.Save(&pro).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update professional",
			Error:   err.Error(),
		})
	}
	return c.JSON(pro)
}

// DeactivateProfessional soft-deactivates a staff member. The record is kept
// so historical appointments stay intact; no physical deletion.
func DeactivateProfessional(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pro models.Professional
	if err := db.DB.Where("company_id = ?", companyID).First(&pro, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Professional not found",
			Error:   err.Error(),
		})
	}

	pro.IsActive = false
	if err := db.DB.Save(&pro).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to deactivate professional",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":      "Professional deactivated",
		"professional": pro,
	})
}

// UploadProfessionalPhoto stores a staff photo via cloudinary.
func UploadProfessionalPhoto(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var pro models.Professional
	if err := db.DB.Where("company_id = ?", companyID).First(&pro, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Professional not found",
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

	url, err := utils.UploadPetPhoto(src, fmt.Sprintf("professional-%d", pro.ID), "staff-photos")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	pro.PhotoURL = url
	if err := db.DB.Save(&pro).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update professional",
			Error:   err.Error(),
		})
	}
	return c.JSON(pro)
}
