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
	YOLODetectorName    = "yolo"
	YOLODetectorBaseURL = "http://localhost:8869"

	// defaultDetectionConfidence is the score floor passed to the model
	// server; detections below it are not reported at all.
	defaultDetectionConfidence = 0.3
)

// YOLODetectorConfig holds configuration for the detector sidecar client.
type YOLODetectorConfig struct {
	BaseURL       string
	Timeout       time.Duration
	MinConfidence float64
	HTTPClient    *http.Client // Optional (tests)
}

// YOLODetector implements Detector against the signature/stamp model server
// running as a local sidecar.
type YOLODetector struct {
	baseURL       string
	minConfidence float64
	client        *http.Client
}

// NewYOLODetector creates a new detector client.
func NewYOLODetector(cfg YOLODetectorConfig) *YOLODetector {
	if cfg.BaseURL == "" {
		cfg.BaseURL = YOLODetectorBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = defaultDetectionConfidence
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &YOLODetector{
		baseURL:       cfg.BaseURL,
		minConfidence: cfg.MinConfidence,
		client:        client,
	}
}

// Name returns the provider identifier.
func (d *YOLODetector) Name() string {
	return YOLODetectorName
}

type detectRequest struct {
	Image         string  `json:"image"` // base64-encoded
	MinConfidence float64 `json:"min_confidence"`
}

// Detect runs signature/stamp detection via the sidecar's /detect endpoint.
// Absent classes decode to present=false with a nil box, which is exactly
// the "no detection" payload the validator expects.
func (d *YOLODetector) Detect(ctx context.Context, image []byte) (*DetectionResult, error) {
	body, err := json.Marshal(detectRequest{
		Image:         base64.StdEncoding.EncodeToString(image),
		MinConfidence: d.minConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("detector sidecar returned %d: %s", resp.StatusCode, string(data))
	}

	var parsed DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode detect response: %w", err)
	}
	return &parsed, nil
}
