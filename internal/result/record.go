// Package result assembles the final per-document output record in the
// bit-exact schema consumed downstream.
package result

import (
	"math"
	"time"

	"github.com/invofuse/invofuse/internal/fields"
	"github.com/invofuse/invofuse/internal/validate"
)

// Record is the per-document output: values, confidences, and explanations
// keyed by field, plus processing metadata.
type Record struct {
	DocID                 string       `json:"doc_id"`
	Fields                Fields       `json:"fields"`
	Confidence            Scores       `json:"confidence"`
	Explanation           Explanations `json:"explanation"`
	ProcessingTimeSeconds float64      `json:"processing_time_seconds"`
	EstimatedCostUSD      float64      `json:"estimated_cost_usd"`
}

// Fields holds the extracted values. Pointer fields serialize as null when
// the field was rejected.
type Fields struct {
	DealerName      *string        `json:"dealer_name"`
	ModelName       *string        `json:"model_name"`
	HorsePower      *int           `json:"horse_power"`
	AssetCost       *float64       `json:"asset_cost"`
	DealerSignature DetectionField `json:"dealer_signature"`
	DealerStamp     DetectionField `json:"dealer_stamp"`
}

// DetectionField is a detection result as exposed in the fields map; its
// confidence lives in the confidence map alongside the other fields.
type DetectionField struct {
	Present bool         `json:"present"`
	BBox    *fields.BBox `json:"bbox"`
}

// Scores holds per-field confidences in [0,1].
type Scores struct {
	DealerName      float64 `json:"dealer_name"`
	ModelName       float64 `json:"model_name"`
	HorsePower      float64 `json:"horse_power"`
	AssetCost       float64 `json:"asset_cost"`
	DealerSignature float64 `json:"dealer_signature"`
	DealerStamp     float64 `json:"dealer_stamp"`
}

// Explanations holds per-field human-readable justifications.
type Explanations struct {
	DealerName      string `json:"dealer_name"`
	ModelName       string `json:"model_name"`
	HorsePower      string `json:"horse_power"`
	AssetCost       string `json:"asset_cost"`
	DealerSignature string `json:"dealer_signature"`
	DealerStamp     string `json:"dealer_stamp"`
}

// Project assembles the final record from validated fields. It is total:
// every input shape, including a zero value, produces a well-formed record.
func Project(docID string, vf validate.Fields, elapsed time.Duration, costUSD float64) Record {
	return Record{
		DocID: docID,
		Fields: Fields{
			DealerName:      stringValue(vf.DealerName),
			ModelName:       stringValue(vf.ModelName),
			HorsePower:      intValue(vf.HorsePower),
			AssetCost:       floatValue(vf.AssetCost),
			DealerSignature: DetectionField{Present: vf.Signature.Present, BBox: vf.Signature.BBox},
			DealerStamp:     DetectionField{Present: vf.Stamp.Present, BBox: vf.Stamp.BBox},
		},
		Confidence: Scores{
			DealerName:      vf.DealerName.Confidence,
			ModelName:       vf.ModelName.Confidence,
			HorsePower:      vf.HorsePower.Confidence,
			AssetCost:       vf.AssetCost.Confidence,
			DealerSignature: vf.Signature.Confidence,
			DealerStamp:     vf.Stamp.Confidence,
		},
		Explanation: Explanations{
			DealerName:      vf.DealerName.Explanation,
			ModelName:       vf.ModelName.Explanation,
			HorsePower:      vf.HorsePower.Explanation,
			AssetCost:       vf.AssetCost.Explanation,
			DealerSignature: detectionExplanation(vf.Signature),
			DealerStamp:     detectionExplanation(vf.Stamp),
		},
		ProcessingTimeSeconds: round(elapsed.Seconds(), 2),
		EstimatedCostUSD:      round(costUSD, 6),
	}
}

// detectionExplanation derives the explanation purely from the present flag.
func detectionExplanation(d fields.Detection) string {
	if d.Present {
		return "Detected"
	}
	return "Not detected"
}

func stringValue(r fields.Result) *string {
	if s, ok := r.Value.(string); ok {
		return &s
	}
	return nil
}

func intValue(r fields.Result) *int {
	if f, ok := fields.ToFloat(r.Value); ok {
		n := int(f)
		return &n
	}
	return nil
}

func floatValue(r fields.Result) *float64 {
	if f, ok := fields.ToFloat(r.Value); ok {
		return &f
	}
	return nil
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
