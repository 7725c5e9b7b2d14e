package fields

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric string, tolerating thousands separators and
// surrounding whitespace. It never fails loudly: malformed input reports
// ok=false and is expected to be skipped by callers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToFloat coerces an arbitrary decoded value to a float64. Numeric strings
// are accepted; anything else reports ok=false.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		return ParseNumber(t.String())
	case string:
		return ParseNumber(t)
	default:
		return 0, false
	}
}
