package main

import (
	"log"

	"Proofchain-Backend/cmd/config"
	migration "Proofchain-Backend/cmd/database/migrate"
	"Proofchain-Backend/internal/utils"
	"Proofchain-Backend/pkg/reminder"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, reminderService, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("Error creating app: %v", err)
	}

	scheduler := reminder.StartScheduler(reminderService)
	defer scheduler.Stop()

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
