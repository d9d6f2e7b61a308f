// Package pricing implements the sale total and installment calculator:
// line-item aggregation, reduction application, and the splitting of a
// deferred-payment total into date-stamped installments whose amounts must
// close exactly on the sale total.
//
// Everything here is pure and synchronous. Nothing in this package returns
// an error or touches the database — invalid input clamps to a safe value,
// and validation results are reported as data for the caller to act on.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReductionKind selects how a Reduction's value is interpreted.
type ReductionKind string

const (
	ReductionPercent ReductionKind = "percent"
	ReductionAmount  ReductionKind = "amount"
)

// Reduction is a discount applied to a sale subtotal.
type Reduction struct {
	Kind  ReductionKind
	Value decimal.Decimal
}

// ArticleLine is a product line item: unit price × quantity.
type ArticleLine struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// ServiceLine is a flat-cost service line item (quantity implicitly 1).
type ServiceLine struct {
	Cost decimal.Decimal
}

// InstallmentDraft is a user-edited installment row. Amount is nil while the
// row is still being typed.
type InstallmentDraft struct {
	Amount  *decimal.Decimal
	DueDate *time.Time
}

// Closure tolerances, in currency units. A discrepancy within
// closureTolerance passes validation outright; one inside the open interval
// (closureTolerance, autoAdjustMax) is rounding drift that AutoAdjustLast
// may absorb into the final row; anything larger is a genuine input error.
var (
	closureTolerance = decimal.NewFromFloat(0.001)
	autoAdjustMax    = decimal.NewFromFloat(0.1)
)

// Round2 rounds to 2 decimal places, half-up, for currency display.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Subtotal sums article line totals (unitPrice × quantity) and service costs.
// Empty inputs yield zero.
func Subtotal(articles []ArticleLine, services []ServiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, a := range articles {
		total = total.Add(a.UnitPrice.Mul(decimal.NewFromInt(a.Quantity)))
	}
	for _, s := range services {
		total = total.Add(s.Cost)
	}
	return total
}

// ApplyReduction computes the reduction amount for a subtotal and the
// resulting total. The total is returned unrounded so that installment
// finalization does not compound rounding error; round only at the display
// boundary with Round2.
//
// Clamping rules: a negative value counts as zero, a percent above 100
// counts as 100, an absolute amount above the subtotal counts as the
// subtotal. The total is therefore never negative.
func ApplyReduction(subtotal decimal.Decimal, r Reduction) (reductionAmount, total decimal.Decimal) {
	value := r.Value
	if value.IsNegative() {
		value = decimal.Zero
	}

	switch r.Kind {
	case ReductionAmount:
		reductionAmount = decimal.Min(value, subtotal)
	default: // percent
		if value.GreaterThan(decimal.NewFromInt(100)) {
			value = decimal.NewFromInt(100)
		}
		reductionAmount = subtotal.Mul(value).Div(decimal.NewFromInt(100))
	}

	total = subtotal.Sub(reductionAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return reductionAmount, total
}

// RedistributeEvenly splits total into n installment amounts. The first n−1
// each get round2(total/n); the last absorbs the remainder, so the sum is
// round2(total) exactly regardless of how the division rounds.
// Returns nil for n < 1.
func RedistributeEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	if n < 1 {
		return nil
	}
	per := Round2(total.Div(decimal.NewFromInt(int64(n))))
	amounts := make([]decimal.Decimal, n)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		amounts[i] = per
		running = running.Add(per)
	}
	amounts[n-1] = Round2(total).Sub(running)
	return amounts
}

// AutoAdjustLast recomputes only the final row's amount when the sum of all
// rows drifts from the total by more than closureTolerance but less than
// autoAdjustMax. Earlier rows are never touched; larger discrepancies are
// left alone for validation to reject. Rows missing an amount are treated
// as zero when summing but the final row must have an amount to be
// adjustable.
//
// Returns true when an adjustment was made. Calling it again with no
// intervening edits is a no-op: after the first pass the discrepancy is
// inside closureTolerance.
func AutoAdjustLast(rows []InstallmentDraft, total decimal.Decimal) bool {
	if len(rows) == 0 {
		return false
	}
	last := &rows[len(rows)-1]
	if last.Amount == nil {
		return false
	}

	target := Round2(total)
	sum := sumDrafts(rows)
	disc := sum.Sub(target).Abs()
	if !disc.GreaterThan(closureTolerance) || !disc.LessThan(autoAdjustMax) {
		return false
	}

	others := decimal.Zero
	for i := 0; i < len(rows)-1; i++ {
		if rows[i].Amount != nil {
			others = others.Add(*rows[i].Amount)
		}
	}
	adjusted := Round2(total.Sub(others))
	last.Amount = &adjusted
	return true
}

// InstallmentValidation reports whether a draft installment sequence may be
// submitted against a total. It carries both sides of the closure check so
// the caller can surface them in the error message.
type InstallmentValidation struct {
	OK bool
	// Incomplete is true when any row is missing its amount (or has a
	// non-positive one) or its due date.
	Incomplete bool
	// Expected is round2(total); Sum is the actual row sum.
	Expected    decimal.Decimal
	Sum         decimal.Decimal
	Discrepancy decimal.Decimal
}

// ValidateInstallments checks the submission rules for a deferred sale:
// every row needs a positive amount and a due date, and the row sum must
// equal round2(total) within closureTolerance. It never rejects by raising
// an error; the caller decides how to surface a failed validation.
func ValidateInstallments(rows []InstallmentDraft, total decimal.Decimal) InstallmentValidation {
	v := InstallmentValidation{
		Expected: Round2(total),
	}

	for _, row := range rows {
		if row.Amount == nil || !row.Amount.IsPositive() || row.DueDate == nil {
			v.Incomplete = true
		}
	}

	v.Sum = sumDrafts(rows)
	v.Discrepancy = v.Sum.Sub(v.Expected).Abs()
	v.OK = !v.Incomplete && len(rows) > 0 && !v.Discrepancy.GreaterThan(closureTolerance)
	return v
}

func sumDrafts(rows []InstallmentDraft) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range rows {
		if row.Amount != nil {
			sum = sum.Add(*row.Amount)
		}
	}
	return sum
}
