package ledger

import (
	"slices"
	"strings"

	"kakeibo/internal/models"
)

// OrderClause is the SQL ordering that matches Sort. Stores must use it so
// that server results and in-memory results come out in the same order.
const OrderClause = "date DESC, created_at DESC, id DESC"

// Sort orders purchases by date, most recent first. Equal dates are ordered
// by creation time (newest first) and then by id (descending); ids are
// UUIDv7 and therefore also time-ordered.
func Sort(purchases []models.Purchase) {
	slices.SortStableFunc(purchases, compareNewestFirst)
}

func compareNewestFirst(a, b models.Purchase) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}
