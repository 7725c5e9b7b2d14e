package fields

import "testing"

func TestNormalizePayload(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		p := NormalizePayload(nil)
		if p.Structured != nil || p.Bare != nil {
			t.Errorf("NormalizePayload(nil) = %+v, want empty payload", p)
		}
	})

	t.Run("result_value", func(t *testing.T) {
		r := Accepted("ABC Motors", 0.9, "matched")
		p := NormalizePayload(r)
		if p.Structured == nil {
			t.Fatal("Structured = nil, want result")
		}
		if p.Structured.Value != "ABC Motors" || p.Structured.Confidence != 0.9 {
			t.Errorf("Structured = %+v", *p.Structured)
		}
	})

	t.Run("result_pointer", func(t *testing.T) {
		r := Rejected(0.0, "No HP value found")
		p := NormalizePayload(&r)
		if p.Structured == nil {
			t.Fatal("Structured = nil, want result")
		}
		if p.Structured.Explanation != "No HP value found" {
			t.Errorf("Explanation = %q", p.Structured.Explanation)
		}
	})

	t.Run("nil_result_pointer", func(t *testing.T) {
		var r *Result
		p := NormalizePayload(r)
		if p.Structured != nil || p.Bare != nil {
			t.Errorf("NormalizePayload(nil *Result) = %+v, want empty payload", p)
		}
	})

	t.Run("decoded_json_map", func(t *testing.T) {
		m := map[string]any{
			"value":       45.0,
			"confidence":  0.85,
			"explanation": "pattern",
		}
		p := NormalizePayload(m)
		if p.Structured == nil {
			t.Fatal("Structured = nil, want result")
		}
		if p.Structured.Confidence != 0.85 {
			t.Errorf("Confidence = %v, want 0.85", p.Structured.Confidence)
		}
		if p.Structured.Explanation != "pattern" {
			t.Errorf("Explanation = %q, want %q", p.Structured.Explanation, "pattern")
		}
	})

	t.Run("bare_string", func(t *testing.T) {
		p := NormalizePayload("Mahindra 475 DI")
		if p.Structured != nil {
			t.Error("Structured != nil for bare value")
		}
		if p.Bare != "Mahindra 475 DI" {
			t.Errorf("Bare = %v", p.Bare)
		}
	})

	t.Run("bare_number", func(t *testing.T) {
		p := NormalizePayload(450000.0)
		if p.Bare != 450000.0 {
			t.Errorf("Bare = %v, want 450000", p.Bare)
		}
	})
}
