package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	PaddleOCRName    = "paddle"
	PaddleOCRBaseURL = "http://localhost:8868"
)

// PaddleOCRConfig holds configuration for the PaddleOCR sidecar client.
type PaddleOCRConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// PaddleOCRClient implements OCRProvider against the PaddleOCR model server
// running as a local sidecar.
type PaddleOCRClient struct {
	baseURL string
	client  *http.Client
}

// NewPaddleOCRClient creates a new PaddleOCR client.
func NewPaddleOCRClient(cfg PaddleOCRConfig) *PaddleOCRClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = PaddleOCRBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &PaddleOCRClient{baseURL: cfg.BaseURL, client: client}
}

// Name returns the provider identifier.
func (c *PaddleOCRClient) Name() string {
	return PaddleOCRName
}

type paddleRequest struct {
	Image string `json:"image"` // base64-encoded
}

type paddleResponse struct {
	Lines []struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"lines"`
}

// Recognize extracts text from an image via the sidecar's /ocr endpoint.
// The transcript is the newline join of recognized lines in reading order;
// the confidence is the mean line confidence.
func (c *PaddleOCRClient) Recognize(ctx context.Context, image []byte) (*OCRResult, error) {
	start := time.Now()

	body, err := json.Marshal(paddleRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("OCR sidecar returned %d: %s", resp.StatusCode, string(data))
	}

	var parsed paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode OCR response: %w", err)
	}

	var (
		buf  bytes.Buffer
		conf float64
	)
	for i, line := range parsed.Lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line.Text)
		conf += line.Confidence
	}
	if n := len(parsed.Lines); n > 0 {
		conf /= float64(n)
	}

	return &OCRResult{
		FullText:      buf.String(),
		Confidence:    conf,
		ExecutionTime: time.Since(start),
	}, nil
}
