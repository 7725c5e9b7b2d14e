package providers

import (
	"log/slog"
	"time"
)

// Registry holds the configured collaborator clients. The VLM slot may be
// nil: the pipeline then runs OCR-only with an empty secondary extraction.
type Registry struct {
	OCR      OCRProvider
	VLM      VLMProvider
	Detector Detector
}

// RegistryConfig is the provider section of the application config, already
// resolved (env var references expanded).
type RegistryConfig struct {
	OCRBaseURL string
	OCRTimeout int // seconds

	VLMEnabled bool
	VLMBaseURL string
	VLMAPIKey  string
	VLMModel   string

	DetectorBaseURL       string
	DetectorMinConfidence float64
}

// NewRegistry builds clients from config.
func NewRegistry(cfg RegistryConfig, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}

	r := &Registry{
		OCR: NewPaddleOCRClient(PaddleOCRConfig{
			BaseURL: cfg.OCRBaseURL,
			Timeout: secondsOrZero(cfg.OCRTimeout),
		}),
		Detector: NewYOLODetector(YOLODetectorConfig{
			BaseURL:       cfg.DetectorBaseURL,
			MinConfidence: cfg.DetectorMinConfidence,
		}),
	}

	if cfg.VLMEnabled {
		r.VLM = NewQwenVLClient(QwenVLConfig{
			BaseURL: cfg.VLMBaseURL,
			APIKey:  cfg.VLMAPIKey,
			Model:   cfg.VLMModel,
		})
	} else {
		log.Warn("VLM disabled, running OCR-only extraction")
	}

	log.Info("providers configured",
		"ocr", r.OCR.Name(),
		"detector", r.Detector.Name(),
		"vlm_enabled", r.VLM != nil,
	)
	return r
}

func secondsOrZero(s int) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}
