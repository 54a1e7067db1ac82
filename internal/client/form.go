package client

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/validator"
)

// MaxAmount is the largest amount the form accepts, in yen.
var MaxAmount = decimal.NewFromInt(10_000_000)

// Form is a purchase as entered by the user. Its rules are stricter than
// the server's: amounts are capped, dates cannot be in the future and
// descriptions are limited.
type Form struct {
	Name        string          `json:"name" validate:"notblank,max=100"`
	Amount      decimal.Decimal `json:"amount" validate:"dgt=0,dlte=10000000"`
	Category    string          `json:"category" validate:"notblank"`
	Date        models.Date     `json:"date" validate:"required,notfuture"`
	Description string          `json:"description" validate:"max=500"`
}

// FormFrom prefills a form with an existing purchase.
func FormFrom(p models.Purchase) Form {
	f := Form{
		Name:     p.Name,
		Amount:   p.Amount,
		Category: p.Category,
		Date:     p.Date,
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	return f
}

// Validate checks the form and returns a VALIDATION_FAILED AppError listing
// every failing field.
func (f Form) Validate() error {
	return validator.Struct(f)
}

// Input holds raw text for the form fields. Nil fields are left unchanged
// by Apply.
type Input struct {
	Name        *string
	Amount      *string
	Category    *string
	Date        *string
	Description *string
}

// Apply parses the present inputs into f and validates the result. Text that
// cannot be parsed is reported on its field alongside any rule failures.
func (in Input) Apply(f Form) (Form, error) {
	fields := map[string][]string{}

	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		f.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		f.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(*in.Amount), ",", ""))
		if err != nil {
			fields["amount"] = []string{"is not a number"}
		}
		f.Amount = amount
	}
	if in.Date != nil {
		d, err := models.ParseDate(strings.TrimSpace(*in.Date))
		if err != nil {
			fields["date"] = []string{"is not a valid date (YYYY-MM-DD)"}
		}
		f.Date = d
	}

	if err := f.Validate(); err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			return f, err
		}
		for field, msgs := range appErr.Fields {
			if _, parsed := fields[field]; !parsed {
				fields[field] = msgs
			}
		}
	}

	if len(fields) > 0 {
		return f, apperrors.WithFields(apperrors.ErrValidation, fields)
	}
	return f, nil
}
