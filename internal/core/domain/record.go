package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type ValueKind string

const (
	ValueKindNumeric ValueKind = "numeric"
	ValueKindText    ValueKind = "text"
)

// Value is one cell of a raw record: either a number or free text.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
}

func Numeric(v float64) Value {
	return Value{Kind: ValueKindNumeric, Num: v}
}

func Text(v string) Value {
	return Value{Kind: ValueKindText, Text: v}
}

func (v Value) IsNumeric() bool {
	return v.Kind == ValueKindNumeric
}

func (v Value) String() string {
	if v.IsNumeric() {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNumeric() {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrInvalidRecord)
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		if b {
			*v = Numeric(1)
		} else {
			*v = Numeric(0)
		}
	case '{', '[', 'n':
		return fmt.Errorf("%w: %s", ErrInvalidRecord, string(data))
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		*v = Numeric(f)
	}
	return nil
}

// RawRecord is one row of user supplied values keyed by column name.
type RawRecord map[string]Value

// UnmarshalJSON drops null fields so they behave as absent columns.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	out := make(RawRecord, len(raw))
	for name, msg := range raw {
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		var v Value
		if err := v.UnmarshalJSON(msg); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = v
	}
	*r = out
	return nil
}
