package dto

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CreateBankRequest defines the data needed to register a bank.
type CreateBankRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// UpdateBankRequest defines the fields allowed when updating a bank.
type UpdateBankRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID string `json:"bankID"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
}

// ToBankResponse converts a domain.Bank to BankResponse DTO
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID: b.BankID,
		Name:   b.Name,
		Code:   b.Code,
	}
}

// ToListBankResponse converts a slice of domain.Bank to response DTOs
func ToListBankResponse(banks []domain.Bank) []BankResponse {
	res := make([]BankResponse, len(banks))
	for i := range banks {
		res[i] = ToBankResponse(&banks[i])
	}
	return res
}
