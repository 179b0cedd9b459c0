package config

import (
	"Proofchain-Backend/internal/api/handlers"
	"Proofchain-Backend/internal/api/routes"
	"Proofchain-Backend/internal/middleware"
	"Proofchain-Backend/internal/utils"
	"Proofchain-Backend/internal/utils/mailing"
	"Proofchain-Backend/internal/utils/storage"
	"Proofchain-Backend/pkg/bill"
	"Proofchain-Backend/pkg/claim"
	"Proofchain-Backend/pkg/extraction"
	"Proofchain-Backend/pkg/gmail"
	"Proofchain-Backend/pkg/jwt"
	"Proofchain-Backend/pkg/reminder"
	"Proofchain-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, reminder.ReminderService, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewSMTPMailer()

	// Repository
	userRepository := user.NewUserRepository(db)
	billRepository := bill.NewBillRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository)
	ocrService := extraction.NewOCRService()
	llmService := extraction.NewLLMService()
	billService := bill.NewBillService(billRepository, s3, ocrService, llmService)
	claimService := claim.NewClaimService()
	gmailService := gmail.NewGmailService(userRepository, llmService)
	reminderService := reminder.NewReminderService(userRepository, billRepository, mailer)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	billHandler := handlers.NewBillHandler(billService, claimService, validator)
	gmailHandler := handlers.NewGmailHandler(gmailService)

	// routes
	routesConfig := routes.Config{
		App:          app,
		UserHandler:  userHandler,
		BillHandler:  billHandler,
		GmailHandler: gmailHandler,
		Middleware:   middlewares,
		JWTService:   jwtService,
		UserService:  userService,
	}
	routesConfig.Setup()
	return app, reminderService, nil
}
