package db

import (
	"fmt"
	"log"

	"github.com/petgroomhq/grooming-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Pet{},
		&models.Professional{},
		&models.Appointment{},
		&models.GroomingRecord{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
