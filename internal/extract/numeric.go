package extract

import (
	"regexp"

	"github.com/invofuse/invofuse/internal/fields"
)

// Extraction-stage plausibility bands. These are deliberately narrower than
// the validator's final bands: the extractor filters obvious OCR noise, the
// validator remains the authoritative gate.
const (
	minPowerHP = 20
	maxPowerHP = 150

	minCostINR = 300_000
	maxCostINR = 1_500_000
)

// powerPatterns is the ordered regex ladder for horse power. The first
// pattern that matches anywhere in the text ends the search: its matches are
// filtered against the extraction band, and if none survive no later pattern
// is tried. First successful pattern wins, not best-of-all-patterns.
var powerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*HP`),
	regexp.MustCompile(`(?i)(\d+)\s*horse\s*power`),
	regexp.MustCompile(`(?i)HP\s*[:\-]?\s*(\d+)`),
	regexp.MustCompile(`(?i)Power\s*[:\-]?\s*(\d+)`),
}

// costPatterns match currency amounts. All matches of all patterns are
// collected; subtotals are smaller than the grand total, so the maximum
// plausible figure is selected.
var costPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:total|cost|price|amount|value)\s*[:\-]?\s*(?:rs\.?|₹)?\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)(?:rs\.?|₹)\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d{2})?)\s*(?:rupees|lakhs?)`),
}

// PowerRating extracts a horse power value from the transcript. Returns the
// value, the pattern that produced it, and whether anything plausible was
// found.
func PowerRating(text string) (int, string, bool) {
	for _, re := range powerPatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			v, ok := fields.ParseNumber(m[1])
			if !ok {
				continue
			}
			hp := int(v)
			if hp >= minPowerHP && hp <= maxPowerHP {
				return hp, re.String(), true
			}
		}
		// The first matching pattern decides; out-of-range matches are
		// discarded without falling back to later patterns.
		return 0, "", false
	}
	return 0, "", false
}

// AssetCost extracts the asset cost from the transcript, selecting the
// maximum in-band amount across all patterns. Returns the value, the pattern
// that produced it, and whether anything plausible was found.
func AssetCost(text string) (float64, string, bool) {
	var (
		best        float64
		bestPattern string
		found       bool
	)
	for _, re := range costPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, ok := fields.ParseNumber(m[1])
			if !ok {
				continue
			}
			if v < minCostINR || v > maxCostINR {
				continue
			}
			if !found || v > best {
				best = v
				bestPattern = re.String()
				found = true
			}
		}
	}
	return best, bestPattern, found
}
