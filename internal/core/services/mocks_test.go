package services_test

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock MovementRepository ---

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	var movement *domain.Movement
	if args.Get(0) != nil {
		movement = args.Get(0).(*domain.Movement)
	}
	return movement, args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, ownerID string, filter portsrepo.MovementFilter, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	var movements []domain.Movement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.Movement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockMovementRepository) ListRecurringTemplates(ctx context.Context) ([]domain.Movement, error) {
	args := m.Called(ctx)
	var movements []domain.Movement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.Movement)
	}
	return movements, args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) UpdateMovement(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	args := m.Called(ctx, movementID)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock BankRepository ---

type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	var bank *domain.Bank
	if args.Get(0) != nil {
		bank = args.Get(0).(*domain.Bank)
	}
	return bank, args.Error(1)
}

func (m *MockBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	var banks []domain.Bank
	if args.Get(0) != nil {
		banks = args.Get(0).([]domain.Bank)
	}
	return banks, args.Error(1)
}

func (m *MockBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	args := m.Called(ctx, bankID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByOwner(ctx context.Context, ownerID string) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock CategoryRuleRepository ---

type MockCategoryRuleRepository struct {
	mock.Mock
}

func (m *MockCategoryRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategoryRule, error) {
	args := m.Called(ctx, ruleID)
	var rule *domain.CategoryRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.CategoryRule)
	}
	return rule, args.Error(1)
}

func (m *MockCategoryRuleRepository) ListRulesByOwner(ctx context.Context, ownerID string) ([]domain.CategoryRule, error) {
	args := m.Called(ctx, ownerID)
	var rules []domain.CategoryRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.CategoryRule)
	}
	return rules, args.Error(1)
}

func (m *MockCategoryRuleRepository) SaveRule(ctx context.Context, rule domain.CategoryRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockCategoryRuleRepository) UpdateRule(ctx context.Context, rule domain.CategoryRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockCategoryRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

// --- Mock DashboardRepository ---

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) GetPeriodTotals(ctx context.Context, ownerID string, competence string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, competence)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockDashboardRepository) GetExpensesByCategory(ctx context.Context, ownerID string, competence string) ([]domain.CategoryExpense, error) {
	args := m.Called(ctx, ownerID, competence)
	var rows []domain.CategoryExpense
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.CategoryExpense)
	}
	return rows, args.Error(1)
}

func (m *MockDashboardRepository) ListRecentMovements(ctx context.Context, ownerID string, limit int) ([]domain.RecentMovement, error) {
	args := m.Called(ctx, ownerID, limit)
	var rows []domain.RecentMovement
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.RecentMovement)
	}
	return rows, args.Error(1)
}

// audit returns audit fields pinned to a fixed creation time, for tests
// that depend on creation order tie-breaks.
func audit(createdAt time.Time, by string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     createdAt,
		CreatedBy:     by,
		LastUpdatedAt: createdAt,
		LastUpdatedBy: by,
	}
}
