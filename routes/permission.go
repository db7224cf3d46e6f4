package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/controllers"
	"github.com/petgroomhq/grooming-app/middleware"
)

// SetupPermissionRoutes configures RBAC management routes
func SetupPermissionRoutes(app *fiber.App) {
	rbac := app.Group("/rbac", middleware.Protected(), middleware.RequireRole("owner"))

	rbac.Post("/roles", controllers.CreateRole)
	rbac.Get("/roles", controllers.GetRoles)
	rbac.Post("/permissions", controllers.CreatePermission)
	rbac.Get("/permissions", controllers.GetPermissions)
	rbac.Post("/assign-role", controllers.AssignRoleToUser)
	rbac.Post("/assign-permission", controllers.AssignPermissionToRole)
}
