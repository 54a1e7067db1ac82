package services

import (
	"context"

	"github.com/shopspring/decimal"

	"kakeibo/internal/ledger"
	"kakeibo/internal/models"
)

// PurchaseParams carries the writable purchase fields. A nil field is left
// untouched on update and treated as missing on create. Values decoded from
// JSON that cannot be parsed are kept as field errors instead of failing the
// decode; see UnmarshalJSON.
type PurchaseParams struct {
	Name        *string          `json:"name"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"1500"`
	Category    *string          `json:"category"`
	Date        *models.Date     `json:"date" swaggertype:"string" example:"2024-03-15"`
	Description *string          `json:"description"`

	invalid map[string][]string
}

// PurchaseServicer defines the contract for purchase-related business logic.
type PurchaseServicer interface {
	ListPurchases(ctx context.Context, filter ledger.Filter) (*ledger.Result, error)
	GetPurchaseByID(ctx context.Context, id string) (*models.Purchase, error)
	CreatePurchase(ctx context.Context, params PurchaseParams) (*models.Purchase, error)
	UpdatePurchase(ctx context.Context, id string, params PurchaseParams) (*models.Purchase, error)
	DeletePurchase(ctx context.Context, id string) error
}

// CategoryServicer defines the contract for the category suggestion list.
type CategoryServicer interface {
	SuggestedCategories() []string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
