package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/internal/utils"
)

const groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

var (
	ErrLLMNotConfigured   = errors.New("GROQ_API_KEY not configured")
	ErrLLMEmptyCompletion = errors.New("LLM returned no completion")
	jsonObjectPattern     = regexp.MustCompile(`(?s)\{.*\}`)
)

type (
	// LLMService turns OCR text into structured bill fields. Callers must
	// fall back to the domain defaults whenever a call errors.
	LLMService interface {
		ExtractProductInfo(ctx context.Context, billText string) (domain.ProductInfo, error)
		GenerateKeywords(ctx context.Context, billText string, productName string) ([]string, error)
		ExtractClaimDetails(ctx context.Context, billText string) (domain.ClaimDetails, error)
	}

	llmService struct {
		httpClient *http.Client
	}
)

func NewLLMService() LLMService {
	return &llmService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *llmService) ExtractProductInfo(ctx context.Context, billText string) (domain.ProductInfo, error) {
	prompt := fmt.Sprintf(`Extract product information from this bill text.
Return strictly valid JSON with these fields: productName, price (number), store.
If a field is not found, use reasonable defaults or null.

Bill text:
%s`, billText)

	raw, err := s.complete(ctx, "You are a JSON-only API. You extract product data from receipts.", prompt, 0.1)
	if err != nil {
		return domain.ProductInfo{}, err
	}

	var info domain.ProductInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return domain.ProductInfo{}, fmt.Errorf("failed to parse product info: %w", err)
	}
	if info.ProductName == "" {
		info.ProductName = "Unidentified Item"
	}
	if info.Store == "" {
		info.Store = "Unknown"
	}
	if info.Price < 0 {
		info.Price = 0
	}
	return info, nil
}

func (s *llmService) GenerateKeywords(ctx context.Context, billText string, productName string) ([]string, error) {
	context_ := billText
	if len(context_) > 500 {
		context_ = context_[:500]
	}
	prompt := fmt.Sprintf(`Generate 5-10 relevant search keywords for this product based on the text.
Include category, brand, and key features.

Product: %s
Bill Context: %s

Return format strictly: {"keywords": ["keyword1", "keyword2", ...]}`, productName, context_)

	raw, err := s.complete(ctx, "You are a JSON-only API. Generate search keywords.", prompt, 0.3)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse keywords: %w", err)
	}
	if len(parsed.Keywords) == 0 {
		return domain.DefaultKeywords(productName), nil
	}
	return parsed.Keywords, nil
}

func (s *llmService) ExtractClaimDetails(ctx context.Context, billText string) (domain.ClaimDetails, error) {
	prompt := fmt.Sprintf(`Extract warranty claim details from this bill/email text.
Return strictly valid JSON with these fields: brand (product brand/manufacturer), storeEmail (store email if present), storePhone (store phone if present), warrantyDetailsText (any warranty text found, limit to 200 chars).
If a field is not found, use empty string or null.

Bill text:
%s`, billText)

	raw, err := s.complete(ctx, "You are a JSON-only API. Extract warranty claim details from receipts/invoices.", prompt, 0.1)
	if err != nil {
		return domain.ClaimDetails{}, err
	}

	var details domain.ClaimDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return domain.ClaimDetails{}, fmt.Errorf("failed to parse claim details: %w", err)
	}
	if details.Brand == "" {
		details.Brand = "Unknown Brand"
	}
	return details, nil
}

func (s *llmService) complete(ctx context.Context, system string, prompt string, temperature float64) (string, error) {
	apiKey := utils.GetConfig("GROQ_API_KEY")
	if apiKey == "" {
		return "", ErrLLMNotConfigured
	}

	model := utils.GetConfig("GROQ_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	requestBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", groqAPIURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groq API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrLLMEmptyCompletion
	}

	return cleanCompletion(completion.Choices[0].Message.Content), nil
}

// cleanCompletion strips markdown fences and surrounding prose the model
// sometimes wraps its JSON in.
func cleanCompletion(text string) string {
	if match := jsonObjectPattern.FindString(text); match != "" {
		text = match
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
