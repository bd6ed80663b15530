package dto

import (
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	BankID         string              `json:"bankID" binding:"required"`
	Name           string              `json:"name" binding:"required"`
	Kind           domain.AccountKind  `json:"kind" binding:"required,oneof=CHECKING SAVINGS CREDIT_CARD CASH"`
	OpeningBalance decimal.NullDecimal `json:"openingBalance"` // Defaults to zero when absent
}

// UpdateAccountRequest defines the fields allowed when updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	BankID *string             `json:"bankID"`
	Name   *string             `json:"name"`
	Kind   *domain.AccountKind `json:"kind" binding:"omitempty,oneof=CHECKING SAVINGS CREDIT_CARD CASH"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	BankID         string             `json:"bankID"`
	Name           string             `json:"name"`
	Kind           domain.AccountKind `json:"kind"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		BankID:         a.BankID,
		Name:           a.Name,
		Kind:           a.Kind,
		OpeningBalance: a.OpeningBalance,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
