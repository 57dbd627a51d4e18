// Package numeric parses human-typed numeric input.
//
// Calculator forms accept free text, so values arrive with thousands
// separators, stray whitespace, or as JSON strings instead of numbers.
// Parsing is forgiving: anything unusable becomes zero and the calculators
// treat zero as "not provided".
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Parse converts free-form text to a float64. Spaces and comma separators
// are stripped first. Malformed input, NaN and infinities all map to zero.
func Parse(s string) float64 {
	cleaned := strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Clamp bounds v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Flexible is a float64 that unmarshals from a JSON number, a JSON string,
// or null. Strings go through Parse, so "1,200" decodes as 1200.
type Flexible float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flexible) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flexible(Parse(s))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flexible(v)
	return nil
}

// Float64 returns the underlying value.
func (f Flexible) Float64() float64 {
	return float64(f)
}
