package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/controllers"
	"github.com/petgroomhq/grooming-app/middleware"
)

// SetupProfessionalRoutes configures staff management routes
func SetupProfessionalRoutes(app *fiber.App) {
	professional := app.Group("/professionals", middleware.Protected())

	professional.Get("/", controllers.GetAllProfessionals)
	professional.Get("/:id", controllers.GetProfessional)

	professional.Post("/", middleware.RequirePermission("professionals", "create"), controllers.CreateProfessional)
	professional.Patch("/:id", middleware.RequirePermission("professionals", "update"), controllers.UpdateProfessional)
	professional.Delete("/:id", middleware.RequirePermission("professionals", "delete"), controllers.DeactivateProfessional)
	professional.Post("/:id/photo", middleware.RequirePermission("professionals", "update"), controllers.UploadProfessionalPhoto)
}
