package transaction

import (
	"time"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction represents a single income or expense record. OwnerID is a
// weak reference: it is never validated against the account collection and
// may point at a deleted account.
type Transaction struct {
	ID          int64
	OwnerID     int64
	Amount      float64
	Category    string
	Date        time.Time
	Description string
	Type        Type
}
