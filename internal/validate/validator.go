// Package validate re-derives final field results from reconciled candidates
// using domain plausibility checks, and normalizes detection payloads. It is
// the authoritative gate: its bands supersede the extractor's narrower ones.
// Nothing in this package returns an error; coercion failures degrade to
// absent fields.
package validate

import (
	"github.com/invofuse/invofuse/internal/fields"
)

// Final plausibility bands. Wider than the extraction-stage bands on
// purpose: a secondary-source value the extractor never saw can still pass
// here (e.g. 180 HP).
const (
	minPowerHP = 15
	maxPowerHP = 200

	minCostINR = 200_000
	maxCostINR = 2_000_000
)

// Fallback confidences for bare values that arrive without a structured
// shape — a defensive path for malformed upstream payloads.
const (
	bareTextConfidence    = 0.5
	bareNumericConfidence = 0.7
)

// DefaultMinConfidence is the acceptance floor for structured text fields.
const DefaultMinConfidence = 0.5

// Fields is the validated per-document field set.
type Fields struct {
	DealerName fields.Result
	ModelName  fields.Result
	HorsePower fields.Result
	AssetCost  fields.Result
	Signature  fields.Detection
	Stamp      fields.Detection
}

// Raw is the unvalidated field set as produced by reconciliation (or, on the
// defensive path, by a malformed upstream payload — hence the untyped
// fields).
type Raw struct {
	DealerName any
	ModelName  any
	HorsePower any
	AssetCost  any
	Signature  fields.RawDetection
	Stamp      fields.RawDetection
}

// Validator applies the final plausibility checks.
type Validator struct {
	minConfidence float64
}

// New creates a Validator. A non-positive minConfidence takes the default.
func New(minConfidence float64) *Validator {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Validator{minConfidence: minConfidence}
}

// Validate checks every field and normalizes both detection payloads.
func (v *Validator) Validate(raw Raw) Fields {
	return Fields{
		DealerName: v.validateText(raw.DealerName),
		ModelName:  v.validateText(raw.ModelName),
		HorsePower: v.validateNumeric(raw.HorsePower, intValue, minPowerHP, maxPowerHP),
		AssetCost:  v.validateNumeric(raw.AssetCost, floatValue, minCostINR, maxCostINR),
		Signature:  ValidateDetection(raw.Signature),
		Stamp:      ValidateDetection(raw.Stamp),
	}
}

// validateText gates a string field on reconciler confidence. Bare values
// are accepted at the fixed fallback confidence.
func (v *Validator) validateText(payload any) fields.Result {
	p := fields.NormalizePayload(payload)
	switch {
	case p.Structured != nil:
		r := *p.Structured
		if r.Confidence >= v.minConfidence {
			return r
		}
		expl := r.Explanation
		if expl == "" {
			expl = "Low confidence"
		}
		return fields.Rejected(r.Confidence, expl)
	case p.Bare != nil:
		return fields.Accepted(p.Bare, bareTextConfidence, "Direct extraction")
	default:
		return fields.Rejected(0.0, "Low confidence")
	}
}

// validateNumeric gates a numeric field on the final plausibility band,
// preserving the reconciler's confidence and explanation when nulling an
// out-of-band value.
func (v *Validator) validateNumeric(payload any, coerce func(float64) any, min, max float64) fields.Result {
	p := fields.NormalizePayload(payload)
	switch {
	case p.Structured != nil:
		r := *p.Structured
		if f, ok := fields.ToFloat(r.Value); ok && f >= min && f <= max {
			return fields.Accepted(coerce(f), r.Confidence, r.Explanation)
		}
		expl := r.Explanation
		if expl == "" {
			expl = "Invalid range or not found"
		}
		return fields.Rejected(r.Confidence, expl)
	case p.Bare != nil:
		if f, ok := fields.ToFloat(p.Bare); ok && f >= min && f <= max {
			return fields.Accepted(coerce(f), bareNumericConfidence, "Direct extraction")
		}
		return fields.Rejected(0.0, "Invalid or not found")
	default:
		return fields.Rejected(0.0, "Invalid range or not found")
	}
}

// ValidateDetection normalizes a raw detection payload. The presence flag
// and the box are independently-sourced signals: an invalid box is nulled
// without touching present, so present=true with bbox=null is a legal and
// expected output. An absent detection never carries a box.
func ValidateDetection(raw fields.RawDetection) fields.Detection {
	d := fields.Detection{
		Present:    raw.Present,
		Confidence: raw.Confidence,
	}
	if raw.Present {
		d.BBox = NormalizeBBox(raw.BBox)
	}
	return d
}

// NormalizeBBox coerces an arbitrary decoded box shape to an integer
// 4-tuple with non-negative origin and strictly positive dimensions.
// Anything else is nil.
func NormalizeBBox(box any) *fields.BBox {
	switch t := box.(type) {
	case nil:
		return nil
	case fields.BBox:
		return checkBBox(float64(t.X), float64(t.Y), float64(t.W), float64(t.H))
	case *fields.BBox:
		if t == nil {
			return nil
		}
		return checkBBox(float64(t.X), float64(t.Y), float64(t.W), float64(t.H))
	case []int:
		if len(t) != 4 {
			return nil
		}
		return checkBBox(float64(t[0]), float64(t[1]), float64(t[2]), float64(t[3]))
	case []float64:
		if len(t) != 4 {
			return nil
		}
		return checkBBox(t[0], t[1], t[2], t[3])
	case []any:
		if len(t) != 4 {
			return nil
		}
		vals := make([]float64, 4)
		for i, raw := range t {
			f, ok := fields.ToFloat(raw)
			if !ok {
				return nil
			}
			vals[i] = f
		}
		return checkBBox(vals[0], vals[1], vals[2], vals[3])
	default:
		return nil
	}
}

func checkBBox(x, y, w, h float64) *fields.BBox {
	if x < 0 || y < 0 || w <= 0 || h <= 0 {
		return nil
	}
	return &fields.BBox{X: int(x), Y: int(y), W: int(w), H: int(h)}
}

func intValue(f float64) any   { return int(f) }
func floatValue(f float64) any { return f }
