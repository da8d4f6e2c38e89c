package models

import (
	"bytes"
	"encoding/json"
	"math"
)

// Float is a float64 that survives JSON when it is NaN or infinite.
// Non-finite values are written as null, and null reads back as NaN.
type Float float64

// NaN returns a Float holding IEEE-754 NaN.
func NaN() Float {
	return Float(math.NaN())
}

// IsFinite reports whether f is neither NaN nor ±Inf.
func (f Float) IsFinite() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = NaN()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
