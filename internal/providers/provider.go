// Package providers defines the contracts for the three upstream
// collaborators — text recognition, vision-language extraction, and
// signature/stamp detection — and the clients that implement them. The
// fusion core consumes only the result shapes defined here.
package providers

import (
	"context"
	"time"

	"github.com/invofuse/invofuse/internal/fields"
)

// OCRResult is the recognized-text payload: a newline-joined transcript plus
// the recognizer's mean line confidence.
type OCRResult struct {
	FullText   string  `json:"full_text"`
	Confidence float64 `json:"confidence"`

	ExecutionTime time.Duration `json:"-"`
}

// OCRProvider extracts a transcript from a document image.
type OCRProvider interface {
	// Name returns the provider identifier (e.g. "paddle").
	Name() string

	// Recognize extracts text from an image.
	Recognize(ctx context.Context, image []byte) (*OCRResult, error)
}

// VLMProvider produces the structured secondary extraction. It is treated as
// higher prior trust but unreliable: every field is optional and values are
// re-verified downstream.
type VLMProvider interface {
	// Name returns the provider identifier (e.g. "qwen-vl").
	Name() string

	// Extract analyzes an image and returns whatever fields the model found.
	Extract(ctx context.Context, image []byte) (*fields.Secondary, error)
}

// DetectionResult carries the two detection payloads. Boxes are untyped
// here; shape validation happens in the validator.
type DetectionResult struct {
	Signature fields.RawDetection `json:"signature"`
	Stamp     fields.RawDetection `json:"stamp"`
}

// Detector locates dealer signatures and stamps in a document image.
type Detector interface {
	// Name returns the provider identifier (e.g. "yolo").
	Name() string

	// Detect runs signature/stamp detection on an image.
	Detect(ctx context.Context, image []byte) (*DetectionResult, error)
}
