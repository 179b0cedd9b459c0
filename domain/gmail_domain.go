package domain

import (
	"errors"
)

var (
	MessageSuccessScanInbox     = "inbox scanned successfully"
	MessageSuccessImportMessage = "message imported successfully"
	MessageSuccessGmailAuthURL  = "authorization url generated"

	MessageFailedScanInbox     = "failed to scan inbox"
	MessageFailedImportMessage = "failed to import message"
	MessageFailedGmailAuth     = "failed to authorize gmail"

	ErrMailNotConnected = errors.New("gmail not connected")
	ErrMailTokenExpired = errors.New("gmail connection expired, please reconnect")
	ErrNoMessagesFound  = errors.New("no candidate messages found")
)

type (
	DetectedMessage struct {
		MessageID      string              `json:"message_id"`
		Subject        string              `json:"subject"`
		From           string              `json:"from"`
		Date           string              `json:"date"`
		Snippet        string              `json:"snippet"`
		ContentPreview string              `json:"content_preview"`
		Attachments    []MessageAttachment `json:"attachments"`
	}

	MessageAttachment struct {
		Filename string `json:"filename"`
		SizeKB   int64  `json:"size_kb"`
	}

	ScanInboxResponse struct {
		Count    int               `json:"count"`
		Messages []DetectedMessage `json:"messages"`
	}

	// ImportMessageResponse is a prefilled bill draft; the client confirms
	// it and calls the create endpoint to persist.
	ImportMessageResponse struct {
		ProductName         string   `json:"product_name"`
		StoreName           string   `json:"store_name"`
		Brand               string   `json:"brand"`
		PurchasePrice       float64  `json:"purchase_price"`
		PurchaseDate        string   `json:"purchase_date"`
		ExpiryDate          string   `json:"expiry_date"`
		WarrantyYears       int      `json:"warranty_years"`
		BillImageURL        string   `json:"bill_image_url"`
		Keywords            []string `json:"keywords"`
		Description         string   `json:"description"`
		Source              string   `json:"source"`
		StoreEmail          string   `json:"store_email"`
		StorePhone          string   `json:"store_phone"`
		WarrantyDetailsText string   `json:"warranty_details_text"`
	}

	GmailAuthURLResponse struct {
		URL string `json:"url"`
	}
)
