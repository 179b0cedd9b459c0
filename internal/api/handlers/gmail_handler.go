package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/internal/api/presenters"
	"Proofchain-Backend/pkg/gmail"
)

type (
	GmailHandler interface {
		GetAuthURL(c *fiber.Ctx) error
		HandleCallback(c *fiber.Ctx) error
		ScanInbox(c *fiber.Ctx) error
		ImportMessage(c *fiber.Ctx) error
	}

	gmailHandler struct {
		gmailService gmail.GmailService
	}
)

func NewGmailHandler(gmailService gmail.GmailService) GmailHandler {
	return &gmailHandler{gmailService: gmailService}
}

func (h *gmailHandler) GetAuthURL(c *fiber.Ctx) error {
	res, err := h.gmailService.GetAuthURL(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGmailAuth, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGmailAuthURL)
}

// HandleCallback always redirects the browser back to the client; the
// outcome rides on the query string.
func (h *gmailHandler) HandleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	redirect, err := h.gmailService.HandleCallback(c.Context(), code)
	if err != nil {
		log.Printf("gmail callback failed: %v", err)
	}
	return c.Redirect(redirect)
}

func (h *gmailHandler) ScanInbox(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.gmailService.ScanInbox(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMailNotConnected) || errors.Is(err, domain.ErrMailTokenExpired) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedScanInbox, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedScanInbox, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessScanInbox)
}

func (h *gmailHandler) ImportMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	messageID := c.Params("messageId")

	res, err := h.gmailService.ImportMessage(c.Context(), userID, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrMailNotConnected) || errors.Is(err, domain.ErrMailTokenExpired) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedImportMessage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedImportMessage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImportMessage)
}
