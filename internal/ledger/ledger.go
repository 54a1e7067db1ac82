package ledger

import "kakeibo/internal/models"

// Result is a filtered, ordered purchase list together with its summary.
// Summary always describes exactly the purchases in Purchases.
type Result struct {
	Purchases []models.Purchase `json:"purchases"`
	Summary   Summary           `json:"summary"`
}

// NewResult summarizes purchases as given. The caller is responsible for
// having filtered and ordered them.
func NewResult(purchases []models.Purchase) Result {
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	return Result{Purchases: purchases, Summary: Summarize(purchases)}
}

// Apply filters, orders and summarizes purchases in memory. The input slice
// is not modified.
func Apply(purchases []models.Purchase, f Filter) Result {
	matched := make([]models.Purchase, 0, len(purchases))
	for _, p := range purchases {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	Sort(matched)
	return NewResult(matched)
}
