// Package extract derives raw field candidates from the OCR transcript and
// the structured secondary (VLM) extraction. Everything here is a pure
// function of its inputs: malformed values are skipped, never propagated.
package extract

import (
	"regexp"
	"strings"

	"github.com/invofuse/invofuse/internal/fields"
)

const (
	maxDealerCandidates = 5
	maxModelCandidates  = 10
)

// dealerKeywords mark lines likely to contain the issuing dealer's name.
var dealerKeywords = []string{
	"motors", "auto", "tractors", "pvt", "ltd", "limited", "company", "dealer",
}

// brandKeywords are tractor brands whose presence marks a model line.
var brandKeywords = []string{
	"mahindra", "john deere", "sonalika", "tafe", "new holland",
	"kubota", "massey ferguson", "farmtrac", "powertrac",
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// DealerCandidates returns dealer name candidates in priority order: the
// secondary extraction first (higher prior trust), then transcript lines in
// document order. Transcript lines are kept when they contain a dealer
// keyword, survive lexical cleaning, and are longer than 5 characters.
func DealerCandidates(text string, secondary *fields.Secondary) []string {
	var candidates []string
	if secondary != nil && secondary.DealerName != nil && *secondary.DealerName != "" {
		candidates = append(candidates, *secondary.DealerName)
	}

	count := 0
	for _, line := range strings.Split(text, "\n") {
		if count >= maxDealerCandidates {
			break
		}
		line = strings.TrimSpace(line)
		if !containsAny(strings.ToLower(line), dealerKeywords) {
			continue
		}
		cleaned := cleanLine(line)
		if len(cleaned) > 5 {
			candidates = append(candidates, cleaned)
			count++
		}
	}
	return candidates
}

// ModelCandidates returns model name candidates: the secondary extraction
// first, then transcript lines containing a known brand, kept verbatim.
func ModelCandidates(text string, secondary *fields.Secondary) []string {
	var candidates []string
	if secondary != nil && secondary.ModelName != nil && *secondary.ModelName != "" {
		candidates = append(candidates, *secondary.ModelName)
	}

	count := 0
	for _, line := range strings.Split(text, "\n") {
		if count >= maxModelCandidates {
			break
		}
		if !containsAny(strings.ToLower(line), brandKeywords) {
			continue
		}
		candidates = append(candidates, strings.TrimSpace(line))
		count++
	}
	return candidates
}

// cleanLine strips punctuation and collapses runs of whitespace.
func cleanLine(line string) string {
	cleaned := nonWordRe.ReplaceAllString(line, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
