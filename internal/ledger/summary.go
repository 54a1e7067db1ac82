package ledger

import (
	"github.com/shopspring/decimal"

	"kakeibo/internal/models"
)

// YenPlaces is the number of minor-unit digits of the yen.
const YenPlaces int32 = 0

// Summary aggregates a set of purchases.
type Summary struct {
	TotalAmount       decimal.Decimal            `json:"total_amount"`
	ItemCount         int                        `json:"item_count"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
}

// Summarize totals purchases exactly. Only categories that occur in the input
// appear in the breakdown. The breakdown is never nil.
func Summarize(purchases []models.Purchase) Summary {
	s := Summary{
		TotalAmount:       decimal.Zero,
		ItemCount:         len(purchases),
		CategoryBreakdown: make(map[string]decimal.Decimal),
	}
	for _, p := range purchases {
		s.TotalAmount = s.TotalAmount.Add(p.Amount)
		if sum, ok := s.CategoryBreakdown[p.Category]; ok {
			s.CategoryBreakdown[p.Category] = sum.Add(p.Amount)
		} else {
			s.CategoryBreakdown[p.Category] = p.Amount
		}
	}
	return s
}

// Average returns TotalAmount / ItemCount rounded half-up to places decimal
// digits, or zero for an empty summary.
func (s Summary) Average(places int32) decimal.Decimal {
	if s.ItemCount == 0 {
		return decimal.Zero
	}
	return DivRoundHalfUp(s.TotalAmount, decimal.NewFromInt(int64(s.ItemCount)), places)
}

// DivRoundHalfUp divides n by d (d > 0) and rounds the quotient to places
// digits, with ties going toward positive infinity. The division is exact:
// the remainder decides the rounding, not a truncated expansion.
func DivRoundHalfUp(n, d decimal.Decimal, places int32) decimal.Decimal {
	q, r := n.Shift(places).QuoRem(d, 0)
	twice := r.Abs().Mul(decimal.NewFromInt(2))
	switch {
	case r.IsPositive() && twice.GreaterThanOrEqual(d):
		q = q.Add(decimal.NewFromInt(1))
	case r.IsNegative() && twice.GreaterThan(d):
		q = q.Sub(decimal.NewFromInt(1))
	}
	return q.Shift(-places)
}
