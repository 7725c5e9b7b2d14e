package providers

import (
	"context"
	"sync/atomic"

	"github.com/invofuse/invofuse/internal/fields"
)

const MockProviderName = "mock"

// MockOCR is an OCRProvider for testing.
type MockOCR struct {
	Result    *OCRResult
	Err       error
	callCount atomic.Int64
}

// Name returns the provider identifier.
func (m *MockOCR) Name() string { return MockProviderName }

// Calls reports how many times Recognize was invoked.
func (m *MockOCR) Calls() int64 { return m.callCount.Load() }

// Recognize returns the configured result or error.
func (m *MockOCR) Recognize(ctx context.Context, image []byte) (*OCRResult, error) {
	m.callCount.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &OCRResult{}, nil
}

// MockVLM is a VLMProvider for testing.
type MockVLM struct {
	Result *fields.Secondary
	Err    error
}

// Name returns the provider identifier.
func (m *MockVLM) Name() string { return MockProviderName }

// Extract returns the configured result or error.
func (m *MockVLM) Extract(ctx context.Context, image []byte) (*fields.Secondary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &fields.Secondary{}, nil
}

// MockDetector is a Detector for testing.
type MockDetector struct {
	Result *DetectionResult
	Err    error
}

// Name returns the provider identifier.
func (m *MockDetector) Name() string { return MockProviderName }

// Detect returns the configured result or error.
func (m *MockDetector) Detect(ctx context.Context, image []byte) (*DetectionResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &DetectionResult{}, nil
}
