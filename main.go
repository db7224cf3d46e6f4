package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/petgroomhq/grooming-app/controllers"
	"github.com/petgroomhq/grooming-app/cron"
	"github.com/petgroomhq/grooming-app/db"
	"github.com/petgroomhq/grooming-app/redis"
	"github.com/petgroomhq/grooming-app/repository"
	"github.com/petgroomhq/grooming-app/routes"
	"github.com/petgroomhq/grooming-app/scheduling"
	"github.com/petgroomhq/grooming-app/utils"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	scheduler := scheduling.NewScheduler(
		repository.NewProfessionalRepository(db.DB),
		repository.NewAppointmentRepository(db.DB),
		repository.NewRecordRepository(db.DB),
		utils.ShopLocation(),
	)
	controllers.InitScheduler(scheduler)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupPermissionRoutes(app)
	routes.SetupProfessionalRoutes(app)
	routes.SetupPetRoutes(app)
	routes.SetupAppointmentRoutes(app)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
