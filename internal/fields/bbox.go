package fields

import (
	"encoding/json"
	"fmt"
)

// BBox is a detection bounding box in pixel coordinates, serialized as the
// JSON array [x, y, w, h].
type BBox struct {
	X int
	Y int
	W int
	H int
}

// MarshalJSON encodes the box as [x, y, w, h].
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.X, b.Y, b.W, b.H})
}

// UnmarshalJSON decodes a [x, y, w, h] array. Exactly four elements are
// required.
func (b *BBox) UnmarshalJSON(data []byte) error {
	var arr []int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("bbox must be a [x, y, w, h] array: %w", err)
	}
	if len(arr) != 4 {
		return fmt.Errorf("bbox must have exactly 4 elements, got %d", len(arr))
	}
	b.X, b.Y, b.W, b.H = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// RawDetection is a detection payload as delivered by the detector: the box
// is untyped because upstream payloads are not trusted to be well-formed.
type RawDetection struct {
	Present    bool    `json:"present"`
	BBox       any     `json:"bbox"`
	Confidence float64 `json:"confidence"`
}

// Detection is a normalized detection payload. BBox is nil when the box was
// missing or failed shape validation; Present is an independently-sourced
// signal and is not corrected to match.
type Detection struct {
	Present    bool    `json:"present"`
	BBox       *BBox   `json:"bbox"`
	Confidence float64 `json:"confidence"`
}
