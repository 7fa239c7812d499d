package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

var jsonNull = []byte("null")

// NullFloat is a float64 that may be absent. Absence is never encoded as zero.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a present NullFloat.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Null returns an absent NullFloat.
func Null() NullFloat {
	return NullFloat{}
}

// MarshalJSON encodes absent values as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("expected number or null: %w", err)
	}
	*n = Float(v)
	return nil
}

// Format renders the value with the given precision, or "-" when absent.
func (n NullFloat) Format(precision int) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Float64, 'f', precision, 64)
}

// MetricValue is a tagged union of missing, number and text.
// The zero value is missing.
type MetricValue struct {
	Kind   MetricKind
	Number float64
	Text   string
}

// NumberMetric returns a numeric metric value.
func NumberMetric(v float64) MetricValue {
	return MetricValue{Kind: MetricNumber, Number: v}
}

// TextMetric returns a text metric value.
func TextMetric(s string) MetricValue {
	return MetricValue{Kind: MetricText, Text: s}
}

// MissingMetric returns an absent metric value.
func MissingMetric() MetricValue {
	return MetricValue{Kind: MetricMissing}
}

// IsMissing reports whether the value is absent.
func (m MetricValue) IsMissing() bool {
	return m.Kind != MetricNumber && m.Kind != MetricText
}

// IsNumber reports whether the value is numeric.
func (m MetricValue) IsNumber() bool {
	return m.Kind == MetricNumber
}

// AsNullFloat converts numeric values to a present NullFloat and everything else to absent.
func (m MetricValue) AsNullFloat() NullFloat {
	if m.Kind == MetricNumber {
		return Float(m.Number)
	}
	return Null()
}

// Format renders numbers with the given precision, text as-is and missing as "-".
func (m MetricValue) Format(precision int) string {
	switch m.Kind {
	case MetricNumber:
		return strconv.FormatFloat(m.Number, 'f', precision, 64)
	case MetricText:
		return m.Text
	default:
		return "-"
	}
}

// MarshalJSON encodes the value as a JSON number, string or null.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case MetricNumber:
		return json.Marshal(m.Number)
	case MetricText:
		return json.Marshal(m.Text)
	default:
		return jsonNull, nil
	}
}

// UnmarshalJSON accepts a JSON number, string or null. Other JSON types are rejected.
func (m *MetricValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty metric value")
	}
	switch c := data[0]; {
	case bytes.Equal(data, jsonNull):
		*m = MissingMetric()
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = TextMetric(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*m = NumberMetric(v)
	default:
		return fmt.Errorf("metric value must be a number, string or null, got %s", string(data))
	}
	return nil
}
