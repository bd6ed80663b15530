package services

import (
	"context"
	"errors"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
)

// BankService manages the global bank registry. Banks are shared reference
// data, not owned by any single user.
type BankService struct {
	BaseService
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new bank service.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade) *BankService {
	return &BankService{bankRepo: bankRepo}
}

var _ portssvc.BankSvcFacade = (*BankService)(nil)

// CreateBank registers a new bank.
func (s *BankService) CreateBank(ctx context.Context, req dto.CreateBankRequest, userID string) (*domain.Bank, error) {
	now := time.Now()
	bank := domain.Bank{
		BankID: uuid.NewString(),
		Name:   req.Name,
		Code:   req.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		s.LogError(ctx, err, "Failed to save bank", "bank_id", bank.BankID)
		return nil, err
	}
	s.LogInfo(ctx, "Bank registered", "bank_id", bank.BankID, "name", bank.Name)
	return &bank, nil
}

// GetBankByID retrieves a bank by its unique identifier.
func (s *BankService) GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank", "bank_id", bankID)
		}
		return nil, err
	}
	return bank, nil
}

// ListBanks retrieves all registered banks.
func (s *BankService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	banks, err := s.bankRepo.ListBanks(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks")
		return nil, err
	}
	return banks, nil
}

// UpdateBank updates an existing bank's details.
func (s *BankService) UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest, userID string) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bank.Name = *req.Name
	}
	if req.Code != nil {
		bank.Code = *req.Code
	}
	bank.LastUpdatedAt = time.Now()
	bank.LastUpdatedBy = userID

	if err := s.bankRepo.UpdateBank(ctx, *bank); err != nil {
		s.LogError(ctx, err, "Failed to update bank", "bank_id", bankID)
		return nil, err
	}
	return bank, nil
}

// DeleteBank removes a bank. Fails with ErrConflict while accounts still
// reference it.
func (s *BankService) DeleteBank(ctx context.Context, bankID string) error {
	if err := s.bankRepo.DeleteBank(ctx, bankID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete bank", "bank_id", bankID)
		}
		return err
	}
	s.LogInfo(ctx, "Bank deleted", "bank_id", bankID)
	return nil
}
