package repositories

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// BankReader defines read operations for the bank registry
type BankReader interface {
	// FindBankByID retrieves a specific bank by its unique identifier.
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)

	// ListBanks retrieves all registered banks ordered by name.
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}

// BankWriter defines write operations for the bank registry
type BankWriter interface {
	// SaveBank persists a new bank.
	SaveBank(ctx context.Context, bank domain.Bank) error

	// UpdateBank updates an existing bank's details.
	UpdateBank(ctx context.Context, bank domain.Bank) error

	// DeleteBank removes a bank. Fails while accounts reference it.
	DeleteBank(ctx context.Context, bankID string) error
}

// BankRepositoryFacade combines all bank-related repository interfaces.
type BankRepositoryFacade interface {
	BankReader
	BankWriter
}
