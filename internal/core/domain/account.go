package domain

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

// ValidAccountKind reports whether k is one of the known account kinds.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case Checking, Savings, CreditCard, Cash:
		return true
	}
	return false
}

// Account represents a financial account owned by a single user. Movements
// always reference exactly one account of the same owner.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (e.g., UUID)
	OwnerID        string          `json:"ownerID"`   // FK -> users.user_id (NON-NULL)
	BankID         string          `json:"bankID"`    // FK -> banks.bank_id (NON-NULL)
	Name           string          `json:"name"`      // User-defined display name
	Kind           AccountKind     `json:"kind"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}
