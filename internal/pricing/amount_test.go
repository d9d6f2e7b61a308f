package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountNormalizesAllRepresentations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain number", `12.5`, "12.5"},
		{"integer", `40`, "40"},
		{"numeric string", `"12.50"`, "12.5"},
		{"decimal wrapper", `{"$numberDecimal":"12.50"}`, "12.5"},
		{"null", `null`, "0"},
		{"garbage string", `"abc"`, "0"},
		{"wrapper with garbage", `{"$numberDecimal":"x"}`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.in), &a))
			assert.Equal(t, tc.want, a.Decimal.String())
		})
	}
}

func TestAmountInsideStruct(t *testing.T) {
	var payload struct {
		UnitPrice Amount `json:"unitPrice"`
		Cost      Amount `json:"cost"`
	}
	raw := `{"unitPrice": {"$numberDecimal": "99.90"}, "cost": 15}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, "99.9", payload.UnitPrice.Decimal.String())
	assert.Equal(t, "15", payload.Cost.Decimal.String())
}

func TestAmountMarshalsAsPlainNumber(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`{"$numberDecimal":"42.10"}`), &a))
	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "42.1", string(out))
}

func TestSubtotalIndependentOfRepresentation(t *testing.T) {
	var plain, wrapped struct {
		Price Amount `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price": 10.5}`), &plain))
	require.NoError(t, json.Unmarshal([]byte(`{"price": {"$numberDecimal":"10.5"}}`), &wrapped))

	a := Subtotal([]ArticleLine{{UnitPrice: plain.Price.Decimal, Quantity: 3}}, nil)
	b := Subtotal([]ArticleLine{{UnitPrice: wrapped.Price.Decimal, Quantity: 3}}, nil)
	assert.True(t, a.Equal(b))
}
