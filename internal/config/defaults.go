package config

// DefaultConfig returns the standard configuration. Paths are relative to
// the invofuse home directory unless overridden.
func DefaultConfig() *Config {
	return &Config{
		Masters: Masters{
			DealerPath: "masters/dealer_master.txt",
			AssetPath:  "masters/asset_master.txt",
		},
		Matching: Matching{
			FuzzyMatchThreshold: 90,
			ModelMatchThreshold: 95,
			ConfidenceThreshold: 0.5,
		},
		Providers: Providers{
			OCR: OCRProvider{
				BaseURL:        "http://localhost:8868",
				TimeoutSeconds: 120,
			},
			VLM: VLMProvider{
				Enabled: true,
				BaseURL: "http://localhost:8000/v1",
				APIKey:  "${INVOFUSE_VLM_API_KEY}",
				Model:   "Qwen/Qwen2-VL-2B-Instruct",
			},
			Detector: DetectorProvider{
				BaseURL:       "http://localhost:8869",
				MinConfidence: 0.3,
			},
		},
		Sidecars: Sidecars{
			OCR: Sidecar{
				Image:    "paddlepaddle/paddleocr-serving:latest",
				HostPort: "8868",
			},
			Detector: Sidecar{
				Image:    "invofuse/signature-stamp-detector:latest",
				HostPort: "8869",
			},
		},
		Batch: Batch{
			Workers:          4,
			CostPerSecondUSD: 0.0003,
		},
	}
}
