package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
	"Proofchain-Backend/internal/utils"
	"Proofchain-Backend/internal/utils/crypto"
	"Proofchain-Backend/internal/utils/privacy"
	"Proofchain-Backend/pkg/extraction"
	"Proofchain-Backend/pkg/user"
)

// Search window and shape mirror the dashboard inbox scan: receipt-like
// subjects from the last 30 days, capped to keep scans fast.
const (
	scanQuery      = `subject:(invoice OR receipt OR warranty OR "order confirmation") newer_than:30d`
	scanMaxResults = 10
	importBodyCap  = 2000
)

type (
	GmailService interface {
		GetAuthURL(ctx context.Context) (domain.GmailAuthURLResponse, error)
		HandleCallback(ctx context.Context, code string) (string, error)
		ScanInbox(ctx context.Context, userID string) (domain.ScanInboxResponse, error)
		ImportMessage(ctx context.Context, userID string, messageID string) (domain.ImportMessageResponse, error)
	}

	gmailService struct {
		userRepository user.UserRepository
		llm            extraction.LLMService
	}
)

func NewGmailService(userRepository user.UserRepository, llm extraction.LLMService) GmailService {
	return &gmailService{
		userRepository: userRepository,
		llm:            llm,
	}
}

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     utils.GetConfig("GMAIL_CLIENT_ID"),
		ClientSecret: utils.GetConfig("GMAIL_CLIENT_SECRET"),
		RedirectURL:  utils.GetConfig("GMAIL_REDIRECT_URL"),
		Scopes: []string{
			oauth2api.UserinfoEmailScope,
			gmailapi.GmailReadonlyScope,
		},
		Endpoint: google.Endpoint,
	}
}

func (s *gmailService) GetAuthURL(_ context.Context) (domain.GmailAuthURLResponse, error) {
	// offline + consent forces Google to hand out a refresh token.
	url := oauthConfig().AuthCodeURL(
		"state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return domain.GmailAuthURLResponse{URL: url}, nil
}

// HandleCallback exchanges the authorization code, resolves the Google
// account email, and stores the refresh token encrypted on the matching
// user. Returns the client URL to redirect the browser to.
func (s *gmailService) HandleCallback(ctx context.Context, code string) (string, error) {
	clientURL := utils.GetConfig("CLIENT_URL")

	cfg := oauthConfig()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return clientURL + "/dashboard?gmail=failed", err
	}

	oauthService, err := oauth2api.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, token)))
	if err != nil {
		return clientURL + "/dashboard?gmail=failed", err
	}
	userInfo, err := oauthService.Userinfo.Get().Do()
	if err != nil {
		return clientURL + "/dashboard?gmail=failed", err
	}

	u, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(userInfo.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return clientURL + "/dashboard?gmail=failed", domain.ErrUserNotFound
		}
		return clientURL + "/dashboard?gmail=failed", err
	}

	if token.RefreshToken != "" {
		encrypted, err := crypto.Encrypt(token.RefreshToken)
		if err != nil {
			return clientURL + "/dashboard?gmail=failed", err
		}
		u.MailRefreshToken = encrypted
	}
	u.MailConnected = true

	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		return clientURL + "/dashboard?gmail=failed", err
	}

	return clientURL + "/dashboard?gmail=success", nil
}

func (s *gmailService) ScanInbox(ctx context.Context, userID string) (domain.ScanInboxResponse, error) {
	u, svc, err := s.clientForUser(ctx, userID)
	if err != nil {
		return domain.ScanInboxResponse{}, err
	}

	list, err := svc.Users.Messages.List("me").Q(scanQuery).MaxResults(scanMaxResults).Do()
	if err != nil {
		return domain.ScanInboxResponse{}, mapGmailError(err)
	}

	messages := make([]domain.DetectedMessage, 0, len(list.Messages))
	for _, msg := range list.Messages {
		full, err := svc.Users.Messages.Get("me", msg.Id).Format("full").Do()
		if err != nil {
			log.Printf("inbox scan: failed to fetch message %s: %v", msg.Id, err)
			continue
		}

		subject, from, date := headerValues(full.Payload)
		snippet := full.Snippet

		var attachments []domain.MessageAttachment
		for _, part := range full.Payload.Parts {
			if part.Filename != "" {
				var size int64
				if part.Body != nil {
					size = part.Body.Size
				}
				attachments = append(attachments, domain.MessageAttachment{
					Filename: part.Filename,
					SizeKB:   size / 1024,
				})
			}
		}

		preview := snippet
		if len(preview) > 300 {
			preview = preview[:300]
		}

		messages = append(messages, domain.DetectedMessage{
			MessageID:      msg.Id,
			Subject:        subject,
			From:           from,
			Date:           date,
			Snippet:        snippet,
			ContentPreview: preview,
			Attachments:    attachments,
		})
	}

	now := time.Now()
	u.LastInboxScanDate = &now
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		log.Printf("inbox scan: failed to record scan date for user %s: %v", userID, err)
	}

	return domain.ScanInboxResponse{Count: len(messages), Messages: messages}, nil
}

// ImportMessage fetches one detected message, redacts sensitive content,
// and runs LLM extraction to prefill a bill draft. Nothing is persisted:
// the client confirms the draft through the create endpoint.
func (s *gmailService) ImportMessage(ctx context.Context, userID string, messageID string) (domain.ImportMessageResponse, error) {
	_, svc, err := s.clientForUser(ctx, userID)
	if err != nil {
		return domain.ImportMessageResponse{}, err
	}

	full, err := svc.Users.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return domain.ImportMessageResponse{}, mapGmailError(err)
	}

	_, _, date := headerValues(full.Payload)
	body := extractTextBody(full.Payload)
	redacted := privacy.RedactSensitiveData(body)
	if len(redacted) > importBodyCap {
		redacted = redacted[:importBodyCap]
	}

	productInfo := domain.DefaultProductInfo()
	if info, err := s.llm.ExtractProductInfo(ctx, redacted); err == nil {
		productInfo = info
	} else {
		log.Printf("gmail import: product info extraction failed: %v", err)
	}

	keywords, err := s.llm.GenerateKeywords(ctx, redacted, productInfo.ProductName)
	if err != nil {
		log.Printf("gmail import: keyword generation failed: %v", err)
		keywords = domain.DefaultKeywords(productInfo.ProductName)
	}

	claimDetails := domain.DefaultClaimDetails()
	if details, err := s.llm.ExtractClaimDetails(ctx, redacted); err == nil {
		claimDetails = details
	} else {
		log.Printf("gmail import: claim details extraction failed: %v", err)
	}

	purchaseDate := time.Now()
	if parsed, err := time.Parse(time.RFC1123Z, date); err == nil {
		purchaseDate = parsed
	}

	description := body
	if len(description) > 200 {
		description = description[:200]
	}

	return domain.ImportMessageResponse{
		ProductName:         productInfo.ProductName,
		StoreName:           productInfo.Store,
		Brand:               claimDetails.Brand,
		PurchasePrice:       productInfo.Price,
		PurchaseDate:        purchaseDate.Format("2006-01-02"),
		ExpiryDate:          purchaseDate.AddDate(1, 0, 0).Format("2006-01-02"),
		WarrantyYears:       1,
		BillImageURL:        "https://placehold.co/400x600?text=Gmail+Receipt",
		Keywords:            keywords,
		Description:         description,
		Source:              domain.BillSourceGmailImport,
		StoreEmail:          claimDetails.StoreEmail,
		StorePhone:          claimDetails.StorePhone,
		WarrantyDetailsText: claimDetails.WarrantyDetailsText,
	}, nil
}

func (s *gmailService) clientForUser(ctx context.Context, userID string) (*entities.User, *gmailapi.Service, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}
	if !u.MailConnected || u.MailRefreshToken == "" {
		return nil, nil, domain.ErrMailNotConnected
	}

	refreshToken, err := crypto.Decrypt(u.MailRefreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	cfg := oauthConfig()
	source := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, nil, err
	}

	return u, svc, nil
}

func headerValues(payload *gmailapi.MessagePart) (subject, from, date string) {
	subject, from = "No Subject", "Unknown Sender"
	date = time.Now().Format(time.RFC1123Z)
	if payload == nil {
		return
	}
	for _, h := range payload.Headers {
		switch h.Name {
		case "Subject":
			subject = h.Value
		case "From":
			from = h.Value
		case "Date":
			date = h.Value
		}
	}
	return
}

func extractTextBody(payload *gmailapi.MessagePart) string {
	if payload == nil {
		return ""
	}
	if len(payload.Parts) == 0 && payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	for _, part := range payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}
	return ""
}

func decodeBody(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}

func mapGmailError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "401") || strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "400") {
		return domain.ErrMailTokenExpired
	}
	return err
}
