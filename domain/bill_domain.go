package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	BillStatusPending  = "pending"
	BillStatusVerified = "verified"
	BillStatusClaimed  = "claimed"
	BillStatusExpired  = "expired"
	BillStatusArchived = "archived"

	BillSourceUpload      = "upload"
	BillSourceGmailImport = "gmail-import"
)

var (
	MessageSuccessCreateBill        = "bill created successfully"
	MessageSuccessUploadBill        = "bill uploaded successfully"
	MessageSuccessUpdateBill        = "bill updated successfully"
	MessageSuccessDeleteBill        = "bill deleted successfully"
	MessageSuccessGetBills          = "bills retrieved successfully"
	MessageSuccessGetExpiringBills  = "expiring bills retrieved successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedCreateBill        = "failed to create bill"
	MessageFailedUploadBill        = "failed to upload bill"
	MessageFailedUpdateBill        = "failed to update bill"
	MessageFailedDeleteBill        = "failed to delete bill"
	MessageFailedGetBills          = "failed to retrieve bills"
	MessageFailedGetExpiringBills  = "failed to retrieve expiring bills"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrBillNotFound            = errors.New("bill not found")
	ErrInvalidBillStatus       = errors.New("invalid bill status")
	ErrInvalidExpiryDate       = errors.New("invalid expiry date")
	ErrInvalidReminderLeadTime = errors.New("reminder lead time must be between 1 and 365 days")
	ErrProductNameRequired     = errors.New("product name is required")
	ErrPurchaseDateRequired    = errors.New("purchase date is required")
)

type (
	CreateBillRequest struct {
		ProductName         string   `json:"product_name" validate:"required"`
		StoreName           string   `json:"store_name"`
		Brand               string   `json:"brand"`
		PurchaseDate        string   `json:"purchase_date" validate:"required"`
		WarrantyYears       int      `json:"warranty_years" validate:"omitempty,min=1"`
		ExpiryDate          string   `json:"expiry_date" validate:"omitempty"`
		PurchasePrice       float64  `json:"purchase_price" validate:"omitempty,min=0"`
		Keywords            []string `json:"keywords"`
		BillImageURL        string   `json:"bill_image_url"`
		ReminderDaysBefore  int      `json:"reminder_days_before" validate:"omitempty,min=1,max=365"`
		Source              string   `json:"source" validate:"omitempty,oneof=upload gmail-import"`
		StoreEmail          string   `json:"store_email"`
		StorePhone          string   `json:"store_phone"`
		WarrantyDetailsText string   `json:"warranty_details_text"`
	}

	UploadBillRequest struct {
		ProductName   string                `json:"product_name" form:"product_name" validate:"required"`
		PurchaseDate  string                `json:"purchase_date" form:"purchase_date" validate:"required"`
		WarrantyYears int                   `json:"warranty_years" form:"warranty_years" validate:"required,min=1"`
		BillImage     *multipart.FileHeader `json:"bill_image" form:"bill_image" validate:"required"`
	}

	UpdateBillRequest struct {
		Status             string `json:"status" validate:"omitempty,oneof=pending verified claimed expired archived"`
		ReminderDaysBefore int    `json:"reminder_days_before" validate:"omitempty,min=1,max=365"`
		ExpiryDate         string `json:"expiry_date" validate:"omitempty"`
	}

	BillResponse struct {
		ID                  string    `json:"id"`
		ProductName         string    `json:"product_name"`
		StoreName           string    `json:"store_name"`
		Brand               string    `json:"brand"`
		PurchaseDate        time.Time `json:"purchase_date"`
		WarrantyYears       int       `json:"warranty_years"`
		ExpiryDate          time.Time `json:"expiry_date"`
		PurchasePrice       float64   `json:"purchase_price"`
		Keywords            []string  `json:"keywords"`
		Status              string    `json:"status"`
		DaysRemaining       int       `json:"days_remaining"`
		Urgency             string    `json:"urgency"`
		ReminderDaysBefore  int       `json:"reminder_days_before"`
		ReminderSent        bool      `json:"reminder_sent"`
		BillImageURL        string    `json:"bill_image_url,omitempty"`
		Source              string    `json:"source"`
		StoreEmail          string    `json:"store_email,omitempty"`
		StorePhone          string    `json:"store_phone,omitempty"`
		WarrantyDetailsText string    `json:"warranty_details_text,omitempty"`
		CreatedAt           time.Time `json:"created_at"`
	}

	DashboardStatsResponse struct {
		TotalBills    int `json:"total_bills"`
		PendingBills  int `json:"pending_bills"`
		VerifiedBills int `json:"verified_bills"`
		ClaimedBills  int `json:"claimed_bills"`
		ExpiredBills  int `json:"expired_bills"`
		ArchivedBills int `json:"archived_bills"`
		ExpiringSoon  int `json:"expiring_soon"`
	}
)
