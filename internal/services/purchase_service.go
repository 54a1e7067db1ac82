package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/ledger"
	"kakeibo/internal/models"
	"kakeibo/internal/uuid"
	"kakeibo/internal/validator"
)

// purchaseService handles purchase-related business logic.
type purchaseService struct {
	db *gorm.DB
}

// NewPurchaseService creates a new PurchaseServicer.
func NewPurchaseService(db *gorm.DB) PurchaseServicer {
	return &purchaseService{db: db}
}

// ListPurchases returns the purchases matching filter, newest first, with the
// summary of exactly those purchases.
func (s *purchaseService) ListPurchases(ctx context.Context, filter ledger.Filter) (*ledger.Result, error) {
	q := applyPurchaseFilter(s.db.WithContext(ctx).Model(&models.Purchase{}), filter)

	var purchases []models.Purchase
	if err := q.Order(ledger.OrderClause).Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := ledger.NewResult(purchases)
	return &result, nil
}

func applyPurchaseFilter(q *gorm.DB, f ledger.Filter) *gorm.DB {
	if r, ok := f.Range(); ok {
		q = q.Where("date >= ? AND date <= ?", r.Start, r.End)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// GetPurchaseByID retrieves a purchase by ID. Malformed IDs are reported as
// not found.
func (s *purchaseService) GetPurchaseByID(ctx context.Context, id string) (*models.Purchase, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrPurchaseNotFound
	}

	var purchase models.Purchase
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &purchase, nil
}

// CreatePurchase validates and stores a new purchase.
func (s *purchaseService) CreatePurchase(ctx context.Context, params PurchaseParams) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	params.applyTo(purchase)

	if err := validatePurchase(purchase, params); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return purchase, nil
}

// UpdatePurchase applies the given fields to an existing purchase. The
// merged record must still be valid.
func (s *purchaseService) UpdatePurchase(ctx context.Context, id string, params PurchaseParams) (*models.Purchase, error) {
	purchase, err := s.GetPurchaseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	params.applyTo(purchase)

	if err := validatePurchase(purchase, params); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(purchase).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return purchase, nil
}

// DeletePurchase permanently removes a purchase.
func (s *purchaseService) DeletePurchase(ctx context.Context, id string) error {
	if !uuid.IsValid(id) {
		return apperrors.ErrPurchaseNotFound
	}

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Purchase{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPurchaseNotFound
	}
	return nil
}

// validatePurchase checks the merged record. Values that could not be parsed
// from the request take precedence over rule failures on the same field.
func validatePurchase(p *models.Purchase, params PurchaseParams) error {
	err := validator.Struct(p)
	fields := params.FieldErrors()
	if len(fields) == 0 {
		return err
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		for field, msgs := range appErr.Fields {
			if _, ok := fields[field]; !ok {
				fields[field] = msgs
			}
		}
	} else if err != nil {
		return err
	}
	return apperrors.WithFields(apperrors.ErrValidation, fields)
}

// applyTo copies the present fields onto p. An empty description clears it.
func (params PurchaseParams) applyTo(p *models.Purchase) {
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Amount != nil {
		p.Amount = *params.Amount
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Date != nil {
		p.Date = *params.Date
	}
	if params.Description != nil {
		if *params.Description == "" {
			p.Description = nil
		} else {
			desc := *params.Description
			p.Description = &desc
		}
	}
}
