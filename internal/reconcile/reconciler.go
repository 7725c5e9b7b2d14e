// Package reconcile scores field candidates against the master reference
// lists and selects one value per field under the documented per-field
// policies.
package reconcile

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/invofuse/invofuse/internal/extract"
	"github.com/invofuse/invofuse/internal/fields"
	"github.com/invofuse/invofuse/internal/masterlist"
)

// Config holds the acceptance thresholds and fixed confidences.
type Config struct {
	DealerThreshold float64 // minimum similarity to accept a dealer match (default 90)
	ModelThreshold  float64 // minimum similarity to accept a model match (default 95)
	VLMConfidence   float64 // fixed confidence for secondary-source numerics (default 0.9)
	TextConfidence  float64 // fixed confidence for regex-extracted numerics (default 0.85)
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		DealerThreshold: 90,
		ModelThreshold:  95,
		VLMConfidence:   0.9,
		TextConfidence:  0.85,
	}
}

// Reconciler fuses candidates into confidence-scored field results. It holds
// an immutable reference to the shared master list store and is safe for
// concurrent use.
type Reconciler struct {
	masters *masterlist.Store
	cfg     Config
	rupees  *message.Printer
}

// New creates a Reconciler. Zero-valued config fields take their defaults.
func New(masters *masterlist.Store, cfg Config) *Reconciler {
	def := DefaultConfig()
	if cfg.DealerThreshold <= 0 {
		cfg.DealerThreshold = def.DealerThreshold
	}
	if cfg.ModelThreshold <= 0 {
		cfg.ModelThreshold = def.ModelThreshold
	}
	if cfg.VLMConfidence <= 0 {
		cfg.VLMConfidence = def.VLMConfidence
	}
	if cfg.TextConfidence <= 0 {
		cfg.TextConfidence = def.TextConfidence
	}
	return &Reconciler{
		masters: masters,
		cfg:     cfg,
		rupees:  message.NewPrinter(language.English),
	}
}

// DealerName fuzzy-matches dealer candidates against the dealer master list.
// Policy: track the single best (candidate, reference, score) triple across
// all candidates and accept only if it clears the threshold. A rejection
// still reports the best score seen.
func (r *Reconciler) DealerName(candidates []string) fields.Result {
	var (
		bestRef       string
		bestCandidate string
		bestScore     float64
	)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		ref, score := bestMatch(candidate, r.masters.Dealers())
		if ref != "" && score > bestScore {
			bestRef = ref
			bestScore = score
			bestCandidate = candidate
		}
	}

	if bestScore >= r.cfg.DealerThreshold {
		return fields.Accepted(bestRef, bestScore/100,
			fmt.Sprintf("Fuzzy matched '%s' to '%s' with %.0f%% similarity", bestCandidate, bestRef, bestScore))
	}
	return fields.Rejected(0.0, fmt.Sprintf("No dealer match found (best: %.0f%%)", bestScore))
}

// ModelName matches model candidates against the asset master list.
// Policy: candidates are tried in order; an exact match short-circuits at
// confidence 1.0, otherwise the first candidate whose best similarity clears
// the threshold is accepted. This is first-acceptable, not best-overall: a
// later candidate with a higher score is never considered once an earlier
// one has been accepted. Kept distinct from the dealer policy on purpose.
func (r *Reconciler) ModelName(candidates []string) fields.Result {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		for _, ref := range r.masters.Models() {
			if candidate == ref {
				return fields.Accepted(candidate, 1.0,
					fmt.Sprintf("Exact match found: %s", candidate))
			}
		}
		ref, score := bestMatch(candidate, r.masters.Models())
		if ref != "" && score >= r.cfg.ModelThreshold {
			return fields.Accepted(ref, score/100,
				fmt.Sprintf("Matched '%s' to '%s' (%.0f%%)", candidate, ref, score))
		}
	}
	return fields.Rejected(0.0, "No model match found in asset master")
}

// HorsePower resolves the horse power field. A secondary-source value is
// trusted directly and short-circuits; otherwise the extractor's
// range-filtered regex result is used.
func (r *Reconciler) HorsePower(text string, secondary *fields.Secondary) fields.Result {
	if secondary != nil && secondary.HorsePower != nil {
		hp := int(*secondary.HorsePower)
		return fields.Accepted(hp, r.cfg.VLMConfidence,
			fmt.Sprintf("Extracted %d HP from VLM", hp))
	}
	if hp, pattern, ok := extract.PowerRating(text); ok {
		return fields.Accepted(hp, r.cfg.TextConfidence,
			fmt.Sprintf("Extracted %d HP using pattern '%s'", hp, pattern))
	}
	return fields.Rejected(0.0, "No HP value found")
}

// AssetCost resolves the asset cost field, with the same secondary-first
// short-circuit as HorsePower.
func (r *Reconciler) AssetCost(text string, secondary *fields.Secondary) fields.Result {
	if secondary != nil && secondary.AssetCost != nil {
		cost := *secondary.AssetCost
		return fields.Accepted(cost, r.cfg.VLMConfidence,
			r.rupees.Sprintf("Extracted cost ₹%.2f from VLM", cost))
	}
	if cost, pattern, ok := extract.AssetCost(text); ok {
		return fields.Accepted(cost, r.cfg.TextConfidence,
			r.rupees.Sprintf("Extracted cost ₹%.2f using pattern '%s'", cost, pattern))
	}
	return fields.Rejected(0.0, "No valid cost found")
}
