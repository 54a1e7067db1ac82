package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"kakeibo/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestPurchase inserts a purchase with a generated name.
// amount and date are parsed from their text forms ("1234.50", "2024-03-15").
func CreateTestPurchase(t *testing.T, db *gorm.DB, category, amount, date string) *models.Purchase {
	t.Helper()
	return CreateTestPurchaseNamed(t, db, fmt.Sprintf("Test Purchase %d", nextID()), category, amount, date)
}

// CreateTestPurchaseNamed inserts a purchase with the given name.
func CreateTestPurchaseNamed(t *testing.T, db *gorm.DB, name, category, amount, date string) *models.Purchase {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}
	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", date, err)
	}

	p := &models.Purchase{
		Name:     name,
		Amount:   amt,
		Category: category,
		Date:     d,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test purchase: %v", err)
	}
	return p
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
