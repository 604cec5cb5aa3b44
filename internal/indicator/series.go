package indicator

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is one element of a Series. Valid is false while the indicator does not
// have enough history; an undefined value is never the same as zero.
type Value struct {
	Float64 float64
	Valid   bool
}

// Some returns a defined Value.
func Some(v float64) Value { return Value{Float64: v, Valid: true} }

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.Float64, 'f', -1, 64), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Series is an indicator output, index-aligned with the candles it was computed from.
type Series []Value

// Undefined returns a series of n undefined values.
func Undefined(n int) Series {
	return make(Series, n)
}

// Defined reports whether s[i] exists and holds a value.
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && s[i].Valid
}

// Compact returns the defined values in order.
func (s Series) Compact() []float64 {
	values, _ := s.compact()
	return values
}

// Floats returns s as float64s with NaN in place of undefined values.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		if v.Valid {
			out[i] = v.Float64
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Clone returns a copy that shares no memory with s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// compact returns the defined values along with the index each one came from.
func (s Series) compact() ([]float64, []int) {
	values := make([]float64, 0, len(s))
	index := make([]int, 0, len(s))
	for i, v := range s {
		if v.Valid {
			values = append(values, v.Float64)
			index = append(index, i)
		}
	}
	return values, index
}
