package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// BankSvcFacade defines operations on the global bank registry.
type BankSvcFacade interface {
	CreateBank(ctx context.Context, req dto.CreateBankRequest, userID string) (*domain.Bank, error)
	GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
	UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest, userID string) (*domain.Bank, error)
	DeleteBank(ctx context.Context, bankID string) error
}
