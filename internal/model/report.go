package model

import (
	"encoding/json"
	"sort"
	"time"
)

// IndicatorValue is a tagged variant: either a bare scalar (e.g. RSI) or a
// small fixed-shape composite (e.g. MACD line/signal/histogram). The variant
// is decided once when the value enters a Report, so consumers never need
// runtime type inspection.
type IndicatorValue struct {
	scalar    float64
	fields    map[string]float64
	composite bool
}

// Scalar wraps a bare numeric indicator value.
func Scalar(v float64) IndicatorValue {
	return IndicatorValue{scalar: v}
}

// Composite wraps a multi-member indicator value. The map is copied.
func Composite(fields map[string]float64) IndicatorValue {
	copied := make(map[string]float64, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return IndicatorValue{fields: copied, composite: true}
}

// IsComposite reports whether the value carries named sub-fields.
func (v IndicatorValue) IsComposite() bool { return v.composite }

// Scalar returns the bare value. Zero for composite values.
func (v IndicatorValue) Scalar() float64 { return v.scalar }

// Field returns the named sub-field of a composite value, or 0 if absent.
func (v IndicatorValue) Field(name string) float64 { return v.fields[name] }

// Fields returns a copy of the composite members. Nil for scalars.
func (v IndicatorValue) Fields() map[string]float64 {
	if !v.composite {
		return nil
	}
	copied := make(map[string]float64, len(v.fields))
	for k, f := range v.fields {
		copied[k] = f
	}
	return copied
}

// FieldNames returns the sorted member names of a composite value.
func (v IndicatorValue) FieldNames() []string {
	if !v.composite {
		return nil
	}
	names := make([]string, 0, len(v.fields))
	for k := range v.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes scalars as bare numbers and composites as objects.
func (v IndicatorValue) MarshalJSON() ([]byte, error) {
	if v.composite {
		return json.Marshal(v.fields)
	}
	return json.Marshal(v.scalar)
}

// Report is the assembled indicator map for one symbol at one point in time.
// It is immutable once produced; the engine is the sole producer and every
// indicator key is always present, degraded to its documented default or not.
type Report struct {
	Symbol     string                    `json:"symbol"`
	Interval   string                    `json:"interval"`
	Market     string                    `json:"market"`
	Timestamp  time.Time                 `json:"timestamp"`
	Indicators map[string]IndicatorValue `json:"indicators"`
}
