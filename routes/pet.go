package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/controllers"
	"github.com/petgroomhq/grooming-app/middleware"
)

// SetupPetRoutes configures pet and grooming-history routes
func SetupPetRoutes(app *fiber.App) {
	pet := app.Group("/pets", middleware.Protected())

	pet.Get("/", controllers.GetAllPets)
	pet.Get("/:id", controllers.GetPet)
	pet.Get("/:id/records", controllers.GetPetRecords)

	pet.Post("/", controllers.CreatePet)
	pet.Patch("/:id", controllers.UpdatePet)
	pet.Delete("/:id", middleware.RequirePermission("pets", "delete"), controllers.DeletePet)
	pet.Post("/:id/photo", controllers.UploadPetPhoto)
}
