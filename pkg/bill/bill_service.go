package bill

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
	"Proofchain-Backend/internal/utils/storage"
	"Proofchain-Backend/pkg/extraction"
	"Proofchain-Backend/pkg/search"
	"Proofchain-Backend/pkg/warranty"
)

const dateLayout = "2006-01-02"

type (
	BillService interface {
		CreateBill(ctx context.Context, req domain.CreateBillRequest, userID string) (domain.BillResponse, error)
		UploadBill(ctx context.Context, req domain.UploadBillRequest, userID string) (domain.BillResponse, error)
		GetBills(ctx context.Context, userID string, status string, query string) ([]domain.BillResponse, error)
		GetBillByID(ctx context.Context, id string, userID string) (domain.BillResponse, error)
		UpdateBill(ctx context.Context, id string, req domain.UpdateBillRequest, userID string) error
		DeleteBill(ctx context.Context, id string, userID string) error
		GetExpiringBills(ctx context.Context, userID string, days int) ([]domain.BillResponse, error)
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
	}

	billService struct {
		billRepository BillRepository
		s3             storage.AwsS3
		ocr            extraction.OCRService
		llm            extraction.LLMService
	}
)

func NewBillService(billRepository BillRepository, s3 storage.AwsS3, ocr extraction.OCRService, llm extraction.LLMService) BillService {
	return &billService{
		billRepository: billRepository,
		s3:             s3,
		ocr:            ocr,
		llm:            llm,
	}
}

// CreateBill persists a bill from already-structured fields, e.g. a
// confirmed gmail import or a manual entry without an image.
func (s *billService) CreateBill(ctx context.Context, req domain.CreateBillRequest, userID string) (domain.BillResponse, error) {
	if req.ProductName == "" {
		return domain.BillResponse{}, domain.ErrProductNameRequired
	}
	purchaseDate, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		return domain.BillResponse{}, domain.ErrPurchaseDateRequired
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.BillResponse{}, domain.ErrParseUUID
	}

	warrantyYears := req.WarrantyYears
	if warrantyYears < 1 {
		warrantyYears = 1
	}

	expiryDate := warranty.ComputeExpiry(purchaseDate, warrantyYears)
	if req.ExpiryDate != "" {
		expiryDate, err = time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			return domain.BillResponse{}, domain.ErrInvalidExpiryDate
		}
	}

	reminderDays := req.ReminderDaysBefore
	if reminderDays == 0 {
		reminderDays = 30
	}
	if reminderDays < 1 || reminderDays > 365 {
		return domain.BillResponse{}, domain.ErrInvalidReminderLeadTime
	}

	storeName := req.StoreName
	if storeName == "" {
		storeName = "Unknown Store"
	}
	brand := req.Brand
	if brand == "" {
		brand = "Unknown"
	}
	source := req.Source
	if source == "" {
		source = domain.BillSourceUpload
	}

	newBill := &entities.Bill{
		ID:                  uuid.New(),
		UserID:              userUUID,
		ProductName:         req.ProductName,
		StoreName:           storeName,
		Brand:               brand,
		PurchaseDate:        purchaseDate,
		WarrantyYears:       warrantyYears,
		ExpiryDate:          expiryDate,
		PurchasePrice:       req.PurchasePrice,
		Status:              domain.BillStatusVerified,
		ReminderDaysBefore:  reminderDays,
		BillImageURL:        req.BillImageURL,
		Source:              source,
		StoreEmail:          req.StoreEmail,
		StorePhone:          req.StorePhone,
		WarrantyDetailsText: req.WarrantyDetailsText,
	}
	newBill.SetKeywords(req.Keywords)

	if err := s.billRepository.CreateBill(ctx, newBill); err != nil {
		return domain.BillResponse{}, err
	}

	return s.toResponse(newBill, time.Now()), nil
}

// UploadBill stores the proof-of-purchase image and enriches the bill
// through OCR and LLM extraction. Extraction is best-effort: every
// upstream failure degrades to explicit defaults and the bill is still
// created. Callers should expect this to take several seconds.
func (s *billService) UploadBill(ctx context.Context, req domain.UploadBillRequest, userID string) (domain.BillResponse, error) {
	purchaseDate, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		return domain.BillResponse{}, domain.ErrPurchaseDateRequired
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.BillResponse{}, domain.ErrParseUUID
	}

	warrantyYears := req.WarrantyYears
	if warrantyYears < 1 {
		warrantyYears = 1
	}

	billID := uuid.New()
	fileName := fmt.Sprintf("bill-%s", billID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.BillImage, "bills", storage.AllowImage...)
	if err != nil {
		return domain.BillResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	productInfo := domain.DefaultProductInfo()
	keywords := domain.DefaultKeywords(req.ProductName)
	claimDetails := domain.DefaultClaimDetails()

	extractedText, err := s.ocr.ExtractText(ctx, req.BillImage)
	if err != nil {
		log.Printf("bill upload: OCR extraction failed, continuing with defaults: %v", err)
		extractedText = ""
	}

	if extractedText != "" {
		if info, err := s.llm.ExtractProductInfo(ctx, extractedText); err == nil {
			productInfo = info
		} else {
			log.Printf("bill upload: product info extraction failed: %v", err)
		}
		if kw, err := s.llm.GenerateKeywords(ctx, extractedText, req.ProductName); err == nil {
			keywords = kw
		} else {
			log.Printf("bill upload: keyword generation failed: %v", err)
		}
		if details, err := s.llm.ExtractClaimDetails(ctx, extractedText); err == nil {
			claimDetails = details
		} else {
			log.Printf("bill upload: claim details extraction failed: %v", err)
		}
	}

	newBill := &entities.Bill{
		ID:                  billID,
		UserID:              userUUID,
		ProductName:         req.ProductName,
		StoreName:           productInfo.Store,
		Brand:               claimDetails.Brand,
		PurchaseDate:        purchaseDate,
		WarrantyYears:       warrantyYears,
		ExpiryDate:          warranty.ComputeExpiry(purchaseDate, warrantyYears),
		PurchasePrice:       productInfo.Price,
		Status:              domain.BillStatusVerified,
		ReminderDaysBefore:  30,
		BillImageURL:        imageURL,
		Source:              domain.BillSourceUpload,
		StoreEmail:          claimDetails.StoreEmail,
		StorePhone:          claimDetails.StorePhone,
		WarrantyDetailsText: claimDetails.WarrantyDetailsText,
	}
	newBill.SetKeywords(keywords)

	if err := s.billRepository.CreateBill(ctx, newBill); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.BillResponse{}, err
	}

	return s.toResponse(newBill, time.Now()), nil
}

// GetBills returns the owner's bills, newest first, with the status
// filter and fuzzy query applied over an in-memory snapshot. Rows whose
// persisted status lags behind their actual expiry are corrected lazily,
// best-effort.
func (s *billService) GetBills(ctx context.Context, userID string, status string, query string) ([]domain.BillResponse, error) {
	bills, err := s.billRepository.GetBills(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var staleIDs []string
	for _, b := range bills {
		if b.Status != warranty.EffectiveStatus(b.Status, b.ExpiryDate, now) {
			staleIDs = append(staleIDs, b.ID.String())
		}
	}
	if len(staleIDs) > 0 {
		if err := s.billRepository.MarkExpired(ctx, staleIDs); err != nil {
			log.Printf("lazy expiry correction failed for %d bill(s): %v", len(staleIDs), err)
		}
	}

	filtered := search.Apply(bills, query, status, now)

	response := make([]domain.BillResponse, 0, len(filtered))
	for _, b := range filtered {
		response = append(response, s.toResponse(b, now))
	}
	return response, nil
}

func (s *billService) GetBillByID(ctx context.Context, id string, userID string) (domain.BillResponse, error) {
	b, err := s.billRepository.GetBillByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BillResponse{}, domain.ErrBillNotFound
		}
		return domain.BillResponse{}, err
	}
	return s.toResponse(b, time.Now()), nil
}

// UpdateBill patches status, reminder lead time and expiry date only.
// Editing the expiry date re-arms the reminder by clearing ReminderSent.
func (s *billService) UpdateBill(ctx context.Context, id string, req domain.UpdateBillRequest, userID string) error {
	b, err := s.billRepository.GetBillByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBillNotFound
		}
		return err
	}

	if req.Status != "" {
		b.Status = req.Status
	}

	if req.ReminderDaysBefore != 0 {
		if req.ReminderDaysBefore < 1 || req.ReminderDaysBefore > 365 {
			return domain.ErrInvalidReminderLeadTime
		}
		b.ReminderDaysBefore = req.ReminderDaysBefore
	}

	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		b.ExpiryDate = expiryDate
		b.ReminderSent = false
	}

	return s.billRepository.UpdateBill(ctx, b)
}

// DeleteBill removes the record first and then the stored image. Asset
// cleanup is best-effort: a storage failure is logged and never blocks
// or undoes the record deletion.
func (s *billService) DeleteBill(ctx context.Context, id string, userID string) error {
	b, err := s.billRepository.GetBillByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBillNotFound
		}
		return err
	}

	if err := s.billRepository.DeleteBill(ctx, id, userID); err != nil {
		return err
	}

	if b.BillImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(b.BillImageURL)
		if objectKey != "" {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				log.Printf("failed to delete bill image %s: %v", objectKey, err)
			}
		}
	}

	return nil
}

func (s *billService) GetExpiringBills(ctx context.Context, userID string, days int) ([]domain.BillResponse, error) {
	if days < 1 {
		days = 30
	}
	now := time.Now()
	bills, err := s.billRepository.GetBillsByExpiryRange(ctx, userID, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	response := make([]domain.BillResponse, 0, len(bills))
	for _, b := range bills {
		response = append(response, s.toResponse(b, now))
	}
	return response, nil
}

func (s *billService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	bills, err := s.billRepository.GetBills(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	now := time.Now()
	stats := domain.DashboardStatsResponse{TotalBills: len(bills)}
	for _, b := range bills {
		switch warranty.EffectiveStatus(b.Status, b.ExpiryDate, now) {
		case domain.BillStatusPending:
			stats.PendingBills++
		case domain.BillStatusVerified:
			stats.VerifiedBills++
		case domain.BillStatusClaimed:
			stats.ClaimedBills++
		case domain.BillStatusExpired:
			stats.ExpiredBills++
		case domain.BillStatusArchived:
			stats.ArchivedBills++
		}

		remaining := warranty.DaysRemaining(b.ExpiryDate, now)
		if remaining > 0 && remaining <= warranty.WarningWindowDays {
			stats.ExpiringSoon++
		}
	}
	return stats, nil
}

func (s *billService) toResponse(b *entities.Bill, asOf time.Time) domain.BillResponse {
	remaining := warranty.DaysRemaining(b.ExpiryDate, asOf)
	return domain.BillResponse{
		ID:                  b.ID.String(),
		ProductName:         b.ProductName,
		StoreName:           b.StoreName,
		Brand:               b.Brand,
		PurchaseDate:        b.PurchaseDate,
		WarrantyYears:       b.WarrantyYears,
		ExpiryDate:          b.ExpiryDate,
		PurchasePrice:       b.PurchasePrice,
		Keywords:            b.KeywordList(),
		Status:              warranty.EffectiveStatus(b.Status, b.ExpiryDate, asOf),
		DaysRemaining:       remaining,
		Urgency:             warranty.ClassifyUrgency(remaining),
		ReminderDaysBefore:  b.ReminderDaysBefore,
		ReminderSent:        b.ReminderSent,
		BillImageURL:        b.BillImageURL,
		Source:              b.Source,
		StoreEmail:          b.StoreEmail,
		StorePhone:          b.StorePhone,
		WarrantyDetailsText: b.WarrantyDetailsText,
		CreatedAt:           b.CreatedAt,
	}
}
