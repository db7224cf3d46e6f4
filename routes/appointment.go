package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/controllers"
	"github.com/petgroomhq/grooming-app/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Get("/availability", controllers.GetAvailability)
	appointment.Get("/week", controllers.GetWeeklySchedule)
	appointment.Get("/", controllers.GetAllAppointments)
	appointment.Get("/:id", controllers.GetAppointment)

	appointment.Post("/", middleware.RequirePermission("appointments", "create"), controllers.CreateAppointment)
	appointment.Post("/:id/check-in", middleware.RequirePermission("appointments", "update"), controllers.CheckInAppointment)
	appointment.Post("/:id/start", middleware.RequirePermission("appointments", "update"), controllers.StartAppointment)
	appointment.Post("/:id/check-out", middleware.RequirePermission("appointments", "update"), controllers.CheckOutAppointment)
	appointment.Post("/:id/cancel", controllers.CancelAppointment)
}
