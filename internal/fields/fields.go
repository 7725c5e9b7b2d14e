// Package fields defines the shared field, payload, and detection types that
// flow between the candidate extractor, reconciler, validator, and projector.
package fields

// Result is the unit of output per field: a value (nil when the field was
// rejected), a calibrated confidence in [0,1], and a human-readable
// explanation of how the value was chosen or why it was rejected.
type Result struct {
	Value       any     `json:"value"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Accepted builds a Result carrying a value.
func Accepted(value any, confidence float64, explanation string) Result {
	return Result{Value: value, Confidence: confidence, Explanation: explanation}
}

// Rejected builds a Result with no value. The confidence and explanation
// still describe the best candidate seen, so rejections are never silent.
func Rejected(confidence float64, explanation string) Result {
	return Result{Value: nil, Confidence: confidence, Explanation: explanation}
}

// Secondary is the structured extraction produced by the vision-language
// model. Every key is optional; a missing key means "no candidate".
type Secondary struct {
	DealerName *string  `json:"dealer_name,omitempty"`
	ModelName  *string  `json:"model_name,omitempty"`
	HorsePower *float64 `json:"horse_power,omitempty"`
	AssetCost  *float64 `json:"asset_cost,omitempty"`
}

// Payload is the tagged union of field shapes that can reach the validator:
// a structured Result, or a bare value from a malformed upstream payload.
// Exactly one of the two is set; both nil means the field is absent.
type Payload struct {
	Structured *Result
	Bare       any
}

// NormalizePayload classifies an arbitrary upstream value into a Payload.
// This is the single place where shape sniffing happens; everything past the
// validator boundary works with the tagged union.
func NormalizePayload(v any) Payload {
	switch t := v.(type) {
	case nil:
		return Payload{}
	case Result:
		return Payload{Structured: &t}
	case *Result:
		if t == nil {
			return Payload{}
		}
		return Payload{Structured: t}
	case map[string]any:
		// Decoded JSON shape of a Result.
		r := Result{Value: t["value"]}
		if c, ok := ToFloat(t["confidence"]); ok {
			r.Confidence = c
		}
		if e, ok := t["explanation"].(string); ok {
			r.Explanation = e
		}
		return Payload{Structured: &r}
	default:
		return Payload{Bare: v}
	}
}
