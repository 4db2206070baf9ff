package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single imported bank transaction.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Category    Category
	Amount      decimal.Decimal
	ID          int64
}
