package services

import (
	"bytes"
	"encoding/json"
	"maps"
	"strings"

	"github.com/shopspring/decimal"

	"kakeibo/internal/models"
)

const (
	msgNotANumber  = "is not a number"
	msgInvalidDate = "is not a valid date"
)

type purchaseParamsJSON struct {
	Name        *string         `json:"name"`
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	Date        json.RawMessage `json:"date"`
	Description *string         `json:"description"`
}

// UnmarshalJSON decodes the request fields. Only malformed JSON is an error:
// an amount or date that does not parse is recorded against its field and
// reported by the service together with the other validation failures.
// null or "" for amount or date sets the zero value, which then fails
// validation as blank.
func (p *PurchaseParams) UnmarshalJSON(data []byte) error {
	var raw purchaseParamsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = PurchaseParams{
		Name:        raw.Name,
		Category:    raw.Category,
		Description: raw.Description,
	}

	if raw.Amount != nil {
		if amount, ok := parseAmount(raw.Amount); ok {
			p.Amount = &amount
		} else {
			p.addFieldError("amount", msgNotANumber)
		}
	}
	if raw.Date != nil {
		if date, ok := parseDate(raw.Date); ok {
			p.Date = &date
		} else {
			p.addFieldError("date", msgInvalidDate)
		}
	}
	return nil
}

// FieldErrors returns the fields whose JSON value could not be parsed.
func (p PurchaseParams) FieldErrors() map[string][]string {
	return maps.Clone(p.invalid)
}

func (p *PurchaseParams) addFieldError(field, msg string) {
	if p.invalid == nil {
		p.invalid = map[string][]string{}
	}
	p.invalid[field] = append(p.invalid[field], msg)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseAmount accepts a JSON number or a decimal string.
func parseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	if isNull(raw) {
		return decimal.Zero, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n.String())
	return d, err == nil
}

func parseDate(raw json.RawMessage) (models.Date, bool) {
	if isNull(raw) {
		return models.Date{}, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.Date{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}, true
	}
	d, err := models.ParseDate(s)
	return d, err == nil
}
