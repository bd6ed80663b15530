package services_test

import (
	"context"
	"testing"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockBankRepo    *MockBankRepository
	service         *services.AccountService
	ownerID         string
	bankID          string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockBankRepo = new(MockBankRepository)
	s.service = services.NewAccountService(s.mockAccountRepo, s.mockBankRepo)
	s.ownerID = uuid.NewString()
	s.bankID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestCreateAccount() {
	ctx := context.Background()
	s.mockBankRepo.On("FindBankByID", ctx, s.bankID).
		Return(&domain.Bank{BankID: s.bankID, Name: "Nubank"}, nil).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, s.ownerID, dto.CreateAccountRequest{
		BankID: s.bankID,
		Name:   "Main checking",
		Kind:   domain.Checking,
	})

	s.Require().NoError(err)
	s.Equal(s.ownerID, account.OwnerID)
	s.True(account.OpeningBalance.IsZero())

	saved := s.mockAccountRepo.Calls[0].Arguments.Get(1).(domain.Account)
	s.Equal(account.AccountID, saved.AccountID)
	s.Equal(s.ownerID, saved.CreatedBy)
}

func (s *AccountServiceTestSuite) TestCreateAccount_UnknownBank() {
	ctx := context.Background()
	s.mockBankRepo.On("FindBankByID", ctx, s.bankID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(ctx, s.ownerID, dto.CreateAccountRequest{
		BankID: s.bankID,
		Name:   "Main checking",
		Kind:   domain.Checking,
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount")
}

func (s *AccountServiceTestSuite) TestCreateAccount_ExplicitOpeningBalance() {
	ctx := context.Background()
	s.mockBankRepo.On("FindBankByID", ctx, s.bankID).
		Return(&domain.Bank{BankID: s.bankID}, nil).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, s.ownerID, dto.CreateAccountRequest{
		BankID:         s.bankID,
		Name:           "Savings",
		Kind:           domain.Savings,
		OpeningBalance: decimal.NewNullDecimal(decimal.NewFromFloat(1500.75)),
	})

	s.Require().NoError(err)
	s.True(account.OpeningBalance.Equal(decimal.NewFromFloat(1500.75)))
}

func (s *AccountServiceTestSuite) TestGetAccountByID_OtherOwner() {
	ctx := context.Background()
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, OwnerID: uuid.NewString()}, nil).Once()

	_, err := s.service.GetAccountByID(ctx, s.ownerID, accountID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_MergesProvidedFields() {
	ctx := context.Background()
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{
			AccountID: accountID,
			OwnerID:   s.ownerID,
			BankID:    s.bankID,
			Name:      "Old name",
			Kind:      domain.Checking,
		}, nil).Once()
	s.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	newName := "New name"
	account, err := s.service.UpdateAccount(ctx, s.ownerID, accountID, dto.UpdateAccountRequest{Name: &newName})

	s.Require().NoError(err)
	s.Equal("New name", account.Name)
	s.Equal(domain.Checking, account.Kind)
	s.Equal(s.bankID, account.BankID)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_StillReferenced() {
	ctx := context.Background()
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, OwnerID: s.ownerID}, nil).Once()
	s.mockAccountRepo.On("DeleteAccount", ctx, accountID).Return(apperrors.ErrConflict).Once()

	err := s.service.DeleteAccount(ctx, s.ownerID, accountID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
