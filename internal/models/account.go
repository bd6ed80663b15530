package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies an account for display and reporting.
type AccountKind string

const (
	Checking   AccountKind = "CHECKING"
	Savings    AccountKind = "SAVINGS"
	CreditCard AccountKind = "CREDIT_CARD"
	Cash       AccountKind = "CASH"
)

// Account represents a financial account row.
type Account struct {
	AccountID      string          `db:"account_id"`
	OwnerID        string          `db:"owner_id"`
	BankID         string          `db:"bank_id"`
	Name           string          `db:"name"`
	Kind           AccountKind     `db:"kind"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AuditFields
}
