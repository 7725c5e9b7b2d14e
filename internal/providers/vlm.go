package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/invofuse/invofuse/internal/fields"
)

const (
	QwenVLName           = "qwen-vl"
	qwenVLDefaultBaseURL = "http://localhost:8000/v1"
	qwenVLDefaultModel   = "Qwen/Qwen2-VL-2B-Instruct"
)

// extractionPrompt asks the model for the four secondary fields as strict
// JSON. Models that ignore the instruction and answer in the KEY: value
// line format are handled by the fallback parser.
const extractionPrompt = `You are analyzing a tractor loan quotation/invoice document. Extract:

1. dealer_name: the name of the dealer/company issuing this quotation
2. model_name: the tractor model name (e.g. "Mahindra 475 DI", "John Deere 5045D")
3. horse_power: the engine power in HP (number only)
4. asset_cost: the total cost/price of the tractor (number only, no currency symbols)

Respond with a single JSON object with exactly those four keys.
Use null for any field not found in the document.`

// secondarySchema validates the model's JSON answer before it is trusted as
// a structured extraction.
const secondarySchema = `{
  "type": "object",
  "properties": {
    "dealer_name": {"type": ["string", "null"]},
    "model_name": {"type": ["string", "null"]},
    "horse_power": {"type": ["number", "string", "null"]},
    "asset_cost": {"type": ["number", "string", "null"]}
  },
  "required": ["dealer_name", "model_name", "horse_power", "asset_cost"]
}`

var compiledSecondarySchema = jsonschema.MustCompileString("secondary.json", secondarySchema)

// QwenVLConfig holds configuration for the vision-language extractor client.
type QwenVLConfig struct {
	BaseURL    string // OpenAI-compatible endpoint of the local model server
	APIKey     string // Optional; local servers usually ignore it
	Model      string
	MaxRetries int
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// QwenVLClient implements VLMProvider against a locally served Qwen2-VL
// speaking the OpenAI-compatible chat API.
type QwenVLClient struct {
	model  string
	client openai.Client
}

// NewQwenVLClient creates a new vision-language extractor client.
func NewQwenVLClient(cfg QwenVLConfig) *QwenVLClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = qwenVLDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = qwenVLDefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 180 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &QwenVLClient{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (c *QwenVLClient) Name() string {
	return QwenVLName
}

// Extract sends the image and prompt to the model and parses whatever comes
// back. A response that fails both the JSON schema and the line-format
// fallback yields an empty extraction, not an error: the VLM is an
// unreliable collaborator and the fusion core treats missing keys as
// "no candidate".
func (c *QwenVLClient) Extract(ctx context.Context, image []byte) (*fields.Secondary, error) {
	imageURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(extractionPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: imageURL,
		}),
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		MaxTokens:   openai.Int(512),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("VLM request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("VLM returned no choices")
	}

	return ParseSecondary(resp.Choices[0].Message.Content), nil
}

// ParseSecondary parses a model response into the secondary field set.
// JSON (optionally fenced) is tried first and must pass the schema; the
// legacy KEY: value line format is the fallback. Unparseable responses
// produce an empty extraction.
func ParseSecondary(content string) *fields.Secondary {
	if sec := parseSecondaryJSON(content); sec != nil {
		return sec
	}
	return parseSecondaryLines(content)
}

func parseSecondaryJSON(content string) *fields.Secondary {
	raw := stripCodeFences(strings.TrimSpace(content))
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil
	}
	raw = raw[start : end+1]

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}
	if err := compiledSecondarySchema.Validate(map[string]any(decoded)); err != nil {
		return nil
	}

	sec := &fields.Secondary{}
	if s, ok := decoded["dealer_name"].(string); ok && usable(s) {
		v := strings.TrimSpace(s)
		sec.DealerName = &v
	}
	if s, ok := decoded["model_name"].(string); ok && usable(s) {
		v := strings.TrimSpace(s)
		sec.ModelName = &v
	}
	if f, ok := fields.ToFloat(decoded["horse_power"]); ok {
		sec.HorsePower = &f
	}
	if f, ok := fields.ToFloat(decoded["asset_cost"]); ok {
		sec.AssetCost = &f
	}
	return sec
}

// parseSecondaryLines handles the DEALER_NAME:/MODEL_NAME:/HORSE_POWER:/
// ASSET_COST: response format, with NOT_FOUND marking absent fields.
func parseSecondaryLines(content string) *fields.Secondary {
	sec := &fields.Secondary{}
	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if !usable(value) {
			continue
		}
		switch strings.TrimSpace(key) {
		case "DEALER_NAME":
			v := value
			sec.DealerName = &v
		case "MODEL_NAME":
			v := value
			sec.ModelName = &v
		case "HORSE_POWER":
			if f, ok := fields.ParseNumber(value); ok {
				sec.HorsePower = &f
			}
		case "ASSET_COST":
			if f, ok := fields.ParseNumber(value); ok {
				sec.AssetCost = &f
			}
		}
	}
	return sec
}

func usable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "NOT_FOUND" && v != "null"
}

func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
