package providers

import (
	"testing"
)

func TestParseSecondaryJSON(t *testing.T) {
	t.Run("plain_json", func(t *testing.T) {
		sec := ParseSecondary(`{
			"dealer_name": "ABC Motors Pvt. Ltd.",
			"model_name": "Mahindra 475 DI",
			"horse_power": 45,
			"asset_cost": 650000
		}`)
		if sec.DealerName == nil || *sec.DealerName != "ABC Motors Pvt. Ltd." {
			t.Errorf("DealerName = %v", sec.DealerName)
		}
		if sec.ModelName == nil || *sec.ModelName != "Mahindra 475 DI" {
			t.Errorf("ModelName = %v", sec.ModelName)
		}
		if sec.HorsePower == nil || *sec.HorsePower != 45 {
			t.Errorf("HorsePower = %v", sec.HorsePower)
		}
		if sec.AssetCost == nil || *sec.AssetCost != 650000 {
			t.Errorf("AssetCost = %v", sec.AssetCost)
		}
	})

	t.Run("fenced_json", func(t *testing.T) {
		sec := ParseSecondary("```json\n" + `{
			"dealer_name": "ABC Motors",
			"model_name": null,
			"horse_power": "45",
			"asset_cost": null
		}` + "\n```")
		if sec.DealerName == nil || *sec.DealerName != "ABC Motors" {
			t.Errorf("DealerName = %v", sec.DealerName)
		}
		if sec.ModelName != nil {
			t.Errorf("ModelName = %v, want nil", sec.ModelName)
		}
		if sec.HorsePower == nil || *sec.HorsePower != 45 {
			t.Errorf("HorsePower = %v, want numeric string coerced", sec.HorsePower)
		}
	})

	t.Run("json_with_preamble", func(t *testing.T) {
		sec := ParseSecondary(`Here is the extraction:
{"dealer_name": "ABC Motors", "model_name": null, "horse_power": null, "asset_cost": null}`)
		if sec.DealerName == nil || *sec.DealerName != "ABC Motors" {
			t.Errorf("DealerName = %v", sec.DealerName)
		}
	})

	t.Run("missing_required_key_rejected", func(t *testing.T) {
		// Without asset_cost the schema fails and the line parser finds
		// nothing either.
		sec := ParseSecondary(`{"dealer_name": "ABC", "model_name": null, "horse_power": null}`)
		if sec.DealerName != nil {
			t.Errorf("DealerName = %v, want schema rejection", sec.DealerName)
		}
	})
}

func TestParseSecondaryLines(t *testing.T) {
	t.Run("line_format", func(t *testing.T) {
		sec := ParseSecondary(`DEALER_NAME: ABC Motors Pvt. Ltd.
MODEL_NAME: NOT_FOUND
HORSE_POWER: 45
ASSET_COST: 6,50,000`)
		if sec.DealerName == nil || *sec.DealerName != "ABC Motors Pvt. Ltd." {
			t.Errorf("DealerName = %v", sec.DealerName)
		}
		if sec.ModelName != nil {
			t.Errorf("ModelName = %v, want NOT_FOUND skipped", sec.ModelName)
		}
		if sec.HorsePower == nil || *sec.HorsePower != 45 {
			t.Errorf("HorsePower = %v", sec.HorsePower)
		}
		if sec.AssetCost == nil || *sec.AssetCost != 650000 {
			t.Errorf("AssetCost = %v", sec.AssetCost)
		}
	})

	t.Run("non_numeric_hp_skipped", func(t *testing.T) {
		sec := ParseSecondary("HORSE_POWER: forty five")
		if sec.HorsePower != nil {
			t.Errorf("HorsePower = %v, want nil", sec.HorsePower)
		}
	})

	t.Run("garbage_yields_empty", func(t *testing.T) {
		sec := ParseSecondary("I could not read the document, sorry.")
		if sec.DealerName != nil || sec.ModelName != nil ||
			sec.HorsePower != nil || sec.AssetCost != nil {
			t.Errorf("ParseSecondary(garbage) = %+v, want empty", sec)
		}
	})

	t.Run("empty_response", func(t *testing.T) {
		sec := ParseSecondary("")
		if sec == nil {
			t.Fatal("ParseSecondary(\"\") = nil, want empty extraction")
		}
	})
}
