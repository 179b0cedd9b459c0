package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"Proofchain-Backend/internal/utils"
)

var ErrOCRNotConfigured = errors.New("OCR model URL not configured")

type (
	// OCRService extracts raw text from a bill image. An empty string is
	// an acceptable result for the downstream extraction stages.
	OCRService interface {
		ExtractText(ctx context.Context, image *multipart.FileHeader) (string, error)
	}

	ocrService struct {
		httpClient *http.Client
	}
)

func NewOCRService() OCRService {
	return &ocrService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *ocrService) ExtractText(ctx context.Context, image *multipart.FileHeader) (string, error) {
	ocrURL := utils.GetConfig("OCR_MODEL_URL")
	if ocrURL == "" {
		return "", ErrOCRNotConfigured
	}

	file, err := image.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", image.Filename)
	if err != nil {
		return "", err
	}
	if _, err = part.Write(fileBytes); err != nil {
		return "", err
	}
	if err = writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ocrURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR model error: %s - %s", resp.Status, string(bodyBytes))
	}

	var ocrResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ocrResponse); err != nil {
		return "", err
	}

	return ocrResponse.Text, nil
}
