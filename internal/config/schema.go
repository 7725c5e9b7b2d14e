package config

import "github.com/invofuse/invofuse/internal/providers"

// Config is the full application configuration.
type Config struct {
	Masters   Masters   `mapstructure:"masters" yaml:"masters"`
	Matching  Matching  `mapstructure:"matching" yaml:"matching"`
	Providers Providers `mapstructure:"providers" yaml:"providers"`
	Sidecars  Sidecars  `mapstructure:"sidecars" yaml:"sidecars"`
	Batch     Batch     `mapstructure:"batch" yaml:"batch"`
}

// Masters points at the two reference list files.
type Masters struct {
	DealerPath string `mapstructure:"dealer_path" yaml:"dealer_path"`
	AssetPath  string `mapstructure:"asset_path" yaml:"asset_path"`
}

// Matching holds the reconciler and validator thresholds.
type Matching struct {
	FuzzyMatchThreshold float64 `mapstructure:"fuzzy_match_threshold" yaml:"fuzzy_match_threshold"`
	ModelMatchThreshold float64 `mapstructure:"model_match_threshold" yaml:"model_match_threshold"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
}

// Providers configures the collaborator endpoints.
type Providers struct {
	OCR      OCRProvider      `mapstructure:"ocr" yaml:"ocr"`
	VLM      VLMProvider      `mapstructure:"vlm" yaml:"vlm"`
	Detector DetectorProvider `mapstructure:"detector" yaml:"detector"`
}

// OCRProvider configures the recognizer sidecar client.
type OCRProvider struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// VLMProvider configures the vision-language extractor client. APIKey may
// use ${ENV_VAR} syntax.
type VLMProvider struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`
}

// DetectorProvider configures the signature/stamp detector client.
type DetectorProvider struct {
	BaseURL       string  `mapstructure:"base_url" yaml:"base_url"`
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence"`
}

// Sidecars configures the docker-managed model servers.
type Sidecars struct {
	OCR      Sidecar `mapstructure:"ocr" yaml:"ocr"`
	Detector Sidecar `mapstructure:"detector" yaml:"detector"`
}

// Sidecar describes one model-server container.
type Sidecar struct {
	Image    string `mapstructure:"image" yaml:"image"`
	HostPort string `mapstructure:"host_port" yaml:"host_port"`
}

// Batch controls batch processing behavior.
type Batch struct {
	Workers          int     `mapstructure:"workers" yaml:"workers"`
	CostPerSecondUSD float64 `mapstructure:"cost_per_second_usd" yaml:"cost_per_second_usd"`
}

// ToRegistryConfig converts the provider section for providers.NewRegistry,
// resolving ${ENV_VAR} references in the API key.
func (c *Config) ToRegistryConfig() providers.RegistryConfig {
	return providers.RegistryConfig{
		OCRBaseURL:            c.Providers.OCR.BaseURL,
		OCRTimeout:            c.Providers.OCR.TimeoutSeconds,
		VLMEnabled:            c.Providers.VLM.Enabled,
		VLMBaseURL:            c.Providers.VLM.BaseURL,
		VLMAPIKey:             ResolveEnvVars(c.Providers.VLM.APIKey),
		VLMModel:              c.Providers.VLM.Model,
		DetectorBaseURL:       c.Providers.Detector.BaseURL,
		DetectorMinConfidence: c.Providers.Detector.MinConfidence,
	}
}
