package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/internal/api/presenters"
	"Proofchain-Backend/pkg/jwt"
	"Proofchain-Backend/pkg/user"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RequireUser(userService user.UserService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

// AuthMiddleware validates the identity-provider bearer token and stores
// the subject and email claims for the request.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwtService.ValidateIdentityToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("identity_ref", claims.Subject)
		c.Locals("identity_email", claims.Email)
		c.Locals("identity_name", claims.FullName)
		return c.Next()
	}
}

// RequireUser resolves the identity subject to a local user record,
// creating or linking one on first sight, and stores its id.
func (m *middleware) RequireUser(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identityRef, _ := c.Locals("identity_ref").(string)
		email, _ := c.Locals("identity_email").(string)
		fullName, _ := c.Locals("identity_name").(string)

		u, err := userService.FindOrCreateByIdentity(c.Context(), identityRef, email, fullName)
		if err != nil {
			if errors.Is(err, domain.ErrEmailMissing) {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
			}
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		}

		c.Locals("user_id", u.ID.String())
		return c.Next()
	}
}
