package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/internal/api/presenters"
	"Proofchain-Backend/pkg/bill"
	"Proofchain-Backend/pkg/claim"
)

type (
	BillHandler interface {
		CreateBill(c *fiber.Ctx) error
		UploadBill(c *fiber.Ctx) error
		GetBills(c *fiber.Ctx) error
		GetBillDetails(c *fiber.Ctx) error
		UpdateBill(c *fiber.Ctx) error
		DeleteBill(c *fiber.Ctx) error
		GetExpiringBills(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
		GetClaimLinks(c *fiber.Ctx) error
	}

	billHandler struct {
		billService  bill.BillService
		claimService claim.ClaimService
		validator    *validator.Validate
	}
)

func NewBillHandler(billService bill.BillService, claimService claim.ClaimService, validator *validator.Validate) BillHandler {
	return &billHandler{
		billService:  billService,
		claimService: claimService,
		validator:    validator,
	}
}

func (h *billHandler) CreateBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateBillRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBill, err)
	}

	res, err := h.billService.CreateBill(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBill, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateBill)
}

func (h *billHandler) UploadBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadBillRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("bill_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.BillImage = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadBill, err)
	}

	res, err := h.billService.UploadBill(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadBill, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadBill)
}

func (h *billHandler) GetBills(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")
	query := c.Query("q", "")

	bills, err := h.billService.GetBills(c.Context(), userID, status, query)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBills, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count": len(bills),
		"bills": bills,
	}, fiber.StatusOK, domain.MessageSuccessGetBills)
}

func (h *billHandler) GetBillDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")

	res, err := h.billService.GetBillByID(c.Context(), billID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetBills, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBills, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBills)
}

func (h *billHandler) UpdateBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")
	req := new(domain.UpdateBillRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateBill, err)
	}

	if err := h.billService.UpdateBill(c.Context(), billID, *req, userID); err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateBill, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateBill, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateBill)
}

func (h *billHandler) DeleteBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")

	if err := h.billService.DeleteBill(c.Context(), billID, userID); err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteBill, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteBill, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBill)
}

func (h *billHandler) GetExpiringBills(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}

	bills, err := h.billService.GetExpiringBills(c.Context(), userID, days)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetExpiringBills, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count": len(bills),
		"bills": bills,
	}, fiber.StatusOK, domain.MessageSuccessGetExpiringBills)
}

func (h *billHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.billService.GetDashboardStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboardStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}

func (h *billHandler) GetClaimLinks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")

	b, err := h.billService.GetBillByID(c.Context(), billID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSearchClaimLinks, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchClaimLinks, err)
	}

	links, err := h.claimService.SearchClaimLinks(c.Context(), b.ProductName, b.Brand, b.StoreName)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSearchClaimLinks, err)
	}

	return presenters.SuccessResponse(c, links, fiber.StatusOK, domain.MessageSuccessSearchClaimLinks)
}
