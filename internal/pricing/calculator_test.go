package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// ── Subtotal ─────────────────────────────────────────────────────────────────

func TestSubtotalSumsArticlesAndServices(t *testing.T) {
	articles := []ArticleLine{
		{UnitPrice: dec("40"), Quantity: 3}, // 120
	}
	services := []ServiceLine{
		{Cost: dec("100")},
	}
	assert.True(t, Subtotal(articles, services).Equal(dec("220")))
}

func TestSubtotalEmptyListsIsZero(t *testing.T) {
	assert.True(t, Subtotal(nil, nil).IsZero())
}

func TestSubtotalMultipleLines(t *testing.T) {
	articles := []ArticleLine{
		{UnitPrice: dec("12.50"), Quantity: 2}, // 25.00
		{UnitPrice: dec("0.99"), Quantity: 10}, // 9.90
	}
	services := []ServiceLine{
		{Cost: dec("15.10")},
		{Cost: dec("0")},
	}
	assert.True(t, Subtotal(articles, services).Equal(dec("50")))
}

// ── ApplyReduction ───────────────────────────────────────────────────────────

func TestApplyReductionPercent(t *testing.T) {
	red, total := ApplyReduction(dec("1000"), Reduction{Kind: ReductionPercent, Value: dec("15")})
	assert.True(t, red.Equal(dec("150")), "reduction = %s", red)
	assert.True(t, total.Equal(dec("850")), "total = %s", total)
}

func TestApplyReductionZeroPercent(t *testing.T) {
	red, total := ApplyReduction(dec("220"), Reduction{Kind: ReductionPercent, Value: dec("0")})
	assert.True(t, red.IsZero())
	assert.True(t, total.Equal(dec("220")))
}

func TestApplyReductionPercentNeverExceedsSubtotal(t *testing.T) {
	for _, v := range []string{"0", "10", "50", "99.9", "100"} {
		_, total := ApplyReduction(dec("123.45"), Reduction{Kind: ReductionPercent, Value: dec(v)})
		assert.False(t, total.GreaterThan(dec("123.45")), "percent %s", v)
		assert.False(t, total.IsNegative(), "percent %s", v)
	}
}

func TestApplyReductionAmountClampedToSubtotal(t *testing.T) {
	red, total := ApplyReduction(dec("50"), Reduction{Kind: ReductionAmount, Value: dec("80")})
	assert.True(t, red.Equal(dec("50")))
	assert.True(t, total.IsZero())
}

func TestApplyReductionNegativeValueClampsToZero(t *testing.T) {
	red, total := ApplyReduction(dec("100"), Reduction{Kind: ReductionAmount, Value: dec("-10")})
	assert.True(t, red.IsZero())
	assert.True(t, total.Equal(dec("100")))

	red, total = ApplyReduction(dec("100"), Reduction{Kind: ReductionPercent, Value: dec("-5")})
	assert.True(t, red.IsZero())
	assert.True(t, total.Equal(dec("100")))
}

func TestApplyReductionPercentAbove100Clamps(t *testing.T) {
	red, total := ApplyReduction(dec("200"), Reduction{Kind: ReductionPercent, Value: dec("150")})
	assert.True(t, red.Equal(dec("200")))
	assert.True(t, total.IsZero())
}

// ── RedistributeEvenly ───────────────────────────────────────────────────────

func TestRedistributeEvenlyExactSplit(t *testing.T) {
	amounts := RedistributeEvenly(dec("220"), 2)
	require.Len(t, amounts, 2)
	assert.True(t, amounts[0].Equal(dec("110")))
	assert.True(t, amounts[1].Equal(dec("110")))
}

func TestRedistributeEvenlyLastRowAbsorbsRounding(t *testing.T) {
	// 100 / 3 = 33.33… — the last row must absorb the remainder.
	amounts := RedistributeEvenly(dec("100"), 3)
	require.Len(t, amounts, 3)
	assert.True(t, amounts[0].Equal(dec("33.33")))
	assert.True(t, amounts[1].Equal(dec("33.33")))
	assert.True(t, amounts[2].Equal(dec("33.34")))
}

func TestRedistributeEvenlyClosureProperty(t *testing.T) {
	totals := []string{"0", "0.01", "65", "100", "220", "999.99", "1234.567"}
	for _, ts := range totals {
		total := dec(ts)
		for n := 1; n <= 7; n++ {
			amounts := RedistributeEvenly(total, n)
			require.Len(t, amounts, n)
			sum := decimal.Zero
			for _, a := range amounts {
				sum = sum.Add(a)
			}
			assert.True(t, sum.Equal(Round2(total)),
				"total=%s n=%d: sum %s != round2 %s", ts, n, sum, Round2(total))
		}
	}
}

func TestRedistributeEvenlyInvalidCount(t *testing.T) {
	assert.Nil(t, RedistributeEvenly(dec("100"), 0))
	assert.Nil(t, RedistributeEvenly(dec("100"), -3))
}

// ── AutoAdjustLast ───────────────────────────────────────────────────────────

func TestAutoAdjustLastAbsorbsSmallDrift(t *testing.T) {
	rows := []InstallmentDraft{
		{Amount: decPtr("33.33"), DueDate: datePtr("2025-01-01")},
		{Amount: decPtr("33.33"), DueDate: datePtr("2025-02-01")},
		{Amount: decPtr("33.33"), DueDate: datePtr("2025-03-01")}, // sum 99.99, total 100
	}
	adjusted := AutoAdjustLast(rows, dec("100"))
	require.True(t, adjusted)
	assert.True(t, rows[2].Amount.Equal(dec("33.34")))
	// Earlier rows untouched
	assert.True(t, rows[0].Amount.Equal(dec("33.33")))
	assert.True(t, rows[1].Amount.Equal(dec("33.33")))
}

func TestAutoAdjustLastIsIdempotent(t *testing.T) {
	rows := []InstallmentDraft{
		{Amount: decPtr("50.00"), DueDate: datePtr("2025-01-01")},
		{Amount: decPtr("49.98"), DueDate: datePtr("2025-02-01")},
	}
	require.True(t, AutoAdjustLast(rows, dec("100")))
	first := *rows[1].Amount

	assert.False(t, AutoAdjustLast(rows, dec("100")))
	assert.True(t, rows[1].Amount.Equal(first))
}

func TestAutoAdjustLastIgnoresLargeDiscrepancies(t *testing.T) {
	// [15, 49] vs 65.00: discrepancy 1.00 is a real input error, not drift.
	rows := []InstallmentDraft{
		{Amount: decPtr("15"), DueDate: datePtr("2025-01-01")},
		{Amount: decPtr("49"), DueDate: datePtr("2025-02-01")},
	}
	assert.False(t, AutoAdjustLast(rows, dec("65")))
	assert.True(t, rows[1].Amount.Equal(dec("49")))
}

func TestAutoAdjustLastNoOpWhenAlreadyClosed(t *testing.T) {
	rows := []InstallmentDraft{
		{Amount: decPtr("15"), DueDate: datePtr("2025-01-01")},
		{Amount: decPtr("50"), DueDate: datePtr("2025-02-01")},
	}
	assert.False(t, AutoAdjustLast(rows, dec("65")))
}

func TestAutoAdjustLastNilLastAmount(t *testing.T) {
	rows := []InstallmentDraft{
		{Amount: decPtr("50"), DueDate: datePtr("2025-01-01")},
		{Amount: nil, DueDate: datePtr("2025-02-01")},
	}
	assert.False(t, AutoAdjustLast(rows, dec("100.05")))
}

// ── ValidateInstallments ─────────────────────────────────────────────────────

func TestValidateInstallmentsClosurePasses(t *testing.T) {
	rows := []InstallmentDraft{
		{Amount: decPtr("15"), DueDate: datePtr("2025-01-01")},
		{Amount: decPtr("50"), DueDate: datePtr("2025-02-01")},
	}
	v := ValidateInstallments(rows, dec("65"))
	assert.True(t, v.OK)
	assert.False(t, v.Incomplete)
	assert.True(t, v.Discrepancy.LessThanOrEqual(dec("0.001")))
}

func TestValidateInstallmentsMismatchBlocks(t *testing.T) {
	rows := []InstallmentDraft{
		{Amount: decPtr("15"), DueDate: datePtr("2025-01-01")},
		{Amount: decPtr("49"), DueDate: datePtr("2025-02-01")},
	}
	v := ValidateInstallments(rows, dec("65"))
	assert.False(t, v.OK)
	assert.True(t, v.Expected.Equal(dec("65")))
	assert.True(t, v.Sum.Equal(dec("64")))
	assert.True(t, v.Discrepancy.Equal(dec("1")))
}

func TestValidateInstallmentsIncompleteRows(t *testing.T) {
	v := ValidateInstallments([]InstallmentDraft{
		{Amount: decPtr("65"), DueDate: nil},
	}, dec("65"))
	assert.False(t, v.OK)
	assert.True(t, v.Incomplete)

	v = ValidateInstallments([]InstallmentDraft{
		{Amount: nil, DueDate: datePtr("2025-01-01")},
	}, dec("0"))
	assert.False(t, v.OK)
	assert.True(t, v.Incomplete)

	v = ValidateInstallments([]InstallmentDraft{
		{Amount: decPtr("0"), DueDate: datePtr("2025-01-01")},
	}, dec("0"))
	assert.False(t, v.OK)
	assert.True(t, v.Incomplete)
}

func TestValidateInstallmentsEmptySequence(t *testing.T) {
	v := ValidateInstallments(nil, dec("100"))
	assert.False(t, v.OK)
}

// ── End-to-end calculator scenarios ──────────────────────────────────────────

func TestScenarioArticlesPlusServicesNoReduction(t *testing.T) {
	subtotal := Subtotal(
		[]ArticleLine{{UnitPrice: dec("60"), Quantity: 2}}, // 120
		[]ServiceLine{{Cost: dec("100")}},                  // 100
	)
	require.True(t, subtotal.Equal(dec("220")))

	_, total := ApplyReduction(subtotal, Reduction{Kind: ReductionPercent, Value: dec("0")})
	require.True(t, total.Equal(dec("220")))

	amounts := RedistributeEvenly(total, 2)
	require.Len(t, amounts, 2)
	assert.True(t, amounts[0].Equal(dec("110")))
	assert.True(t, amounts[1].Equal(dec("110")))
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, "10.13", Round2(dec("10.125")).String())
	assert.Equal(t, "10.12", Round2(dec("10.124")).String())
}
