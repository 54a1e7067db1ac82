package models

import "github.com/shopspring/decimal"

// SuggestedCategories is the default category list offered to users. The
// store does not restrict categories to this list.
var SuggestedCategories = []string{
	"食費", "交通費", "家電", "衣類", "医療費", "娯楽", "書籍", "光熱費", "通信費", "その他",
}

// Purchase is a single logged household expense.
type Purchase struct {
	Base
	Name        string          `gorm:"size:100;not null" json:"name" validate:"notblank,max=100"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount" validate:"dgt=0" swaggertype:"string" example:"1500"`
	Category    string          `gorm:"not null;index" json:"category" validate:"notblank"`
	Date        Date            `gorm:"not null;index" json:"date" validate:"required" swaggertype:"string" example:"2024-03-15"`
	Description *string         `json:"description"`
}
