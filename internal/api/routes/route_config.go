package routes

import (
	"github.com/gofiber/fiber/v2"

	"Proofchain-Backend/internal/api/handlers"
	"Proofchain-Backend/internal/middleware"
	"Proofchain-Backend/pkg/jwt"
	"Proofchain-Backend/pkg/user"
)

type Config struct {
	App          *fiber.App
	UserHandler  handlers.UserHandler
	BillHandler  handlers.BillHandler
	GmailHandler handlers.GmailHandler
	Middleware   middleware.Middleware
	JWTService   jwt.JWTService
	UserService  user.UserService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Bills()
	c.GoogleAuth()
	c.GuestRoute()
}

func (c *Config) Users() {
	users := c.App.Group(
		"/api/v1/users",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireUser(c.UserService),
	)
	{
		users.Get("/me", c.UserHandler.Me)
		users.Patch("/update", c.UserHandler.UpdateUser)
	}
}

func (c *Config) Bills() {
	bills := c.App.Group(
		"/api/v1/bills",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireUser(c.UserService),
	)
	bills.Get("/dashboard", c.BillHandler.GetDashboardStats)
	bills.Get("/expiring", c.BillHandler.GetExpiringBills)

	// Inbox scan and import
	bills.Post("/scan-inbox", c.GmailHandler.ScanInbox)
	bills.Post("/import/:messageId", c.GmailHandler.ImportMessage)

	// Basic CRUD operations
	bills.Post("", c.BillHandler.CreateBill)
	bills.Post("/upload", c.BillHandler.UploadBill)
	bills.Get("", c.BillHandler.GetBills)
	bills.Get("/:id", c.BillHandler.GetBillDetails)
	bills.Patch("/:id", c.BillHandler.UpdateBill)
	bills.Put("/:id", c.BillHandler.UpdateBill)
	bills.Delete("/:id", c.BillHandler.DeleteBill)

	bills.Get("/:id/claim-links", c.BillHandler.GetClaimLinks)
}

func (c *Config) GoogleAuth() {
	google := c.App.Group("/api/v1/auth/google")
	google.Get("/url",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireUser(c.UserService),
		c.GmailHandler.GetAuthURL,
	)
	google.Get("/callback", c.GmailHandler.HandleCallback)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
