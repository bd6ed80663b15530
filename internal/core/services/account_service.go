package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService manages an owner's accounts.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	bankRepo    portsrepo.BankRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo, bankRepo: bankRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount persists a new account for the owner.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if _, err := s.bankRepo.FindBankByID(ctx, req.BankID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown bank", apperrors.ErrValidation)
		}
		return nil, err
	}

	openingBalance := decimal.Zero
	if req.OpeningBalance.Valid {
		openingBalance = req.OpeningBalance.Decimal
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OwnerID:        ownerID,
		BankID:         req.BankID,
		Name:           req.Name,
		Kind:           req.Kind,
		OpeningBalance: openingBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", "account_id", account.AccountID)
		return nil, err
	}
	s.LogInfo(ctx, "Account created", "account_id", account.AccountID)
	return &account, nil
}

// GetAccountByID retrieves an account, verifying ownership. Another owner's
// account is reported as not found.
func (s *AccountService) GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", "account_id", accountID)
		}
		return nil, err
	}
	if account.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves all of the owner's accounts.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", "owner_id", ownerID)
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's details.
func (s *AccountService) UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	if req.BankID != nil {
		if _, err := s.bankRepo.FindBankByID(ctx, *req.BankID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown bank", apperrors.ErrValidation)
			}
			return nil, err
		}
		account.BankID = *req.BankID
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Kind != nil {
		account.Kind = *req.Kind
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = ownerID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", "account_id", accountID)
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account. The storage layer rejects the delete
// with ErrConflict while movements still reference the account.
func (s *AccountService) DeleteAccount(ctx context.Context, ownerID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, ownerID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete account", "account_id", accountID)
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", "account_id", accountID)
	return nil
}
