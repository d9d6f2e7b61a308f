package pricing

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a money value as it arrives on the wire. Depending on which
// client (or which era of the Mongo export) produced the payload, the same
// field may be a plain number, a numeric string, or a big-decimal wrapper
// object like {"$numberDecimal": "12.50"}. Amount normalizes all of them to
// a decimal.Decimal at the JSON boundary so nothing deeper in the
// calculation has to branch on representation.
//
// Missing, null, or unparseable values normalize to zero — the calculator
// clamps, validation happens at the request boundary.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal in an Amount.
func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

type numberDecimalWrapper struct {
	NumberDecimal string `json:"$numberDecimal"`
}

// UnmarshalJSON accepts numbers, numeric strings, {"$numberDecimal": "…"}
// objects, and null. It never returns an error for a malformed value — the
// value simply becomes zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	a.Decimal = decimal.Zero

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var w numberDecimalWrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return nil
		}
		if d, err := decimal.NewFromString(w.NumberDecimal); err == nil {
			a.Decimal = d
		}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			a.Decimal = d
		}
	default:
		if d, err := decimal.NewFromString(string(data)); err == nil {
			a.Decimal = d
		}
	}
	return nil
}

// MarshalJSON always emits a plain JSON number, regardless of the
// representation the value arrived in.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
