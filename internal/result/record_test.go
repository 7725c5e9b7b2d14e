package result

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/invofuse/invofuse/internal/fields"
	"github.com/invofuse/invofuse/internal/validate"
)

func TestProject(t *testing.T) {
	vf := validate.Fields{
		DealerName: fields.Accepted("ABC Motors Pvt. Ltd.", 0.9, "Fuzzy matched"),
		ModelName:  fields.Rejected(0.0, "No model match found in asset master"),
		HorsePower: fields.Accepted(45, 0.85, "pattern"),
		AssetCost:  fields.Accepted(450000.0, 0.85, "pattern"),
		Signature: fields.Detection{
			Present:    true,
			BBox:       &fields.BBox{X: 100, Y: 200, W: 50, H: 30},
			Confidence: 0.92,
		},
		Stamp: fields.Detection{Present: false},
	}

	rec := Project("doc-001", vf, 1234*time.Millisecond, 0.0003702)

	if rec.DocID != "doc-001" {
		t.Errorf("DocID = %q", rec.DocID)
	}
	if rec.Fields.DealerName == nil || *rec.Fields.DealerName != "ABC Motors Pvt. Ltd." {
		t.Errorf("DealerName = %v", rec.Fields.DealerName)
	}
	if rec.Fields.ModelName != nil {
		t.Errorf("ModelName = %v, want nil", rec.Fields.ModelName)
	}
	if rec.Fields.HorsePower == nil || *rec.Fields.HorsePower != 45 {
		t.Errorf("HorsePower = %v", rec.Fields.HorsePower)
	}
	if rec.Fields.AssetCost == nil || *rec.Fields.AssetCost != 450000.0 {
		t.Errorf("AssetCost = %v", rec.Fields.AssetCost)
	}
	if !rec.Fields.DealerSignature.Present || rec.Fields.DealerSignature.BBox == nil {
		t.Errorf("DealerSignature = %+v", rec.Fields.DealerSignature)
	}
	if rec.Confidence.DealerSignature != 0.92 {
		t.Errorf("Confidence.DealerSignature = %v", rec.Confidence.DealerSignature)
	}
	if rec.Explanation.DealerSignature != "Detected" {
		t.Errorf("Explanation.DealerSignature = %q", rec.Explanation.DealerSignature)
	}
	if rec.Explanation.DealerStamp != "Not detected" {
		t.Errorf("Explanation.DealerStamp = %q", rec.Explanation.DealerStamp)
	}
	if rec.ProcessingTimeSeconds != 1.23 {
		t.Errorf("ProcessingTimeSeconds = %v, want 1.23", rec.ProcessingTimeSeconds)
	}
	if rec.EstimatedCostUSD != 0.00037 {
		t.Errorf("EstimatedCostUSD = %v, want 0.00037", rec.EstimatedCostUSD)
	}
}

func TestProjectZeroValue(t *testing.T) {
	// A fully degraded document still produces a well-formed record.
	rec := Project("empty", validate.Fields{}, 0, 0)

	if rec.Fields.DealerName != nil || rec.Fields.ModelName != nil ||
		rec.Fields.HorsePower != nil || rec.Fields.AssetCost != nil {
		t.Errorf("Fields = %+v, want all null", rec.Fields)
	}
	if rec.Explanation.DealerSignature != "Not detected" {
		t.Errorf("Explanation.DealerSignature = %q", rec.Explanation.DealerSignature)
	}
	if rec.ProcessingTimeSeconds != 0 || rec.EstimatedCostUSD != 0 {
		t.Errorf("metadata = %v, %v, want zero", rec.ProcessingTimeSeconds, rec.EstimatedCostUSD)
	}
}

func TestRecordJSONShape(t *testing.T) {
	vf := validate.Fields{
		DealerName: fields.Accepted("ABC Motors", 0.9, "matched"),
		Signature: fields.Detection{
			Present: true,
			BBox:    &fields.BBox{X: 1, Y: 2, W: 3, H: 4},
		},
	}
	data, err := json.Marshal(Project("doc-001", vf, time.Second, 0.0003))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{
		"doc_id", "fields", "confidence", "explanation",
		"processing_time_seconds", "estimated_cost_usd",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("record JSON missing key %q", key)
		}
	}

	flds, ok := decoded["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields type = %T", decoded["fields"])
	}
	for _, key := range []string{
		"dealer_name", "model_name", "horse_power", "asset_cost",
		"dealer_signature", "dealer_stamp",
	} {
		if _, ok := flds[key]; !ok {
			t.Errorf("fields JSON missing key %q", key)
		}
	}

	// Rejected fields serialize as explicit nulls, not omitted keys.
	if flds["model_name"] != nil {
		t.Errorf("model_name = %v, want null", flds["model_name"])
	}

	sig, ok := flds["dealer_signature"].(map[string]any)
	if !ok {
		t.Fatalf("dealer_signature type = %T", flds["dealer_signature"])
	}
	box, ok := sig["bbox"].([]any)
	if !ok {
		t.Fatalf("bbox type = %T, want array", sig["bbox"])
	}
	if len(box) != 4 {
		t.Errorf("bbox length = %d, want 4", len(box))
	}
}
