package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryRuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo     *MockCategoryRuleRepository
	mockCategoryRepo *MockCategoryRepository
	service          *services.CategoryRuleService
	ownerID          string
}

func (s *CategoryRuleServiceTestSuite) SetupTest() {
	s.mockRuleRepo = new(MockCategoryRuleRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.service = services.NewCategoryRuleService(s.mockRuleRepo, s.mockCategoryRepo)
	s.ownerID = uuid.NewString()
}

func (s *CategoryRuleServiceTestSuite) rule(keyword, categoryID string, priority int, createdAt time.Time) domain.CategoryRule {
	return domain.CategoryRule{
		RuleID:      uuid.NewString(),
		OwnerID:     s.ownerID,
		Keyword:     keyword,
		CategoryID:  categoryID,
		Priority:    priority,
		AuditFields: audit(createdAt, s.ownerID),
	}
}

// --- MatchRule ---

func (s *CategoryRuleServiceTestSuite) TestMatchRule_KeywordSubstring() {
	ctx := context.Background()
	foodID := uuid.NewString()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rules := []domain.CategoryRule{
		s.rule("uber", uuid.NewString(), 10, base),
		s.rule("market", foodID, 5, base),
	}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()

	match, err := s.service.MatchRule(ctx, s.ownerID, "Supermarket Pão de Açúcar")

	s.Require().NoError(err)
	s.Require().NotNil(match)
	s.Equal(foodID, match.CategoryID)
	s.InDelta(float64(len("market"))/float64(len("supermarket pão de açúcar")), match.Confidence, 1e-9)
}

func (s *CategoryRuleServiceTestSuite) TestMatchRule_LowestPriorityWins() {
	ctx := context.Background()
	transportID := uuid.NewString()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rules := []domain.CategoryRule{
		s.rule("uber", transportID, 1, base),
		s.rule("uber eats", uuid.NewString(), 999, base),
	}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()

	match, err := s.service.MatchRule(ctx, s.ownerID, "Uber Eats delivery")

	s.Require().NoError(err)
	s.Require().NotNil(match)
	s.Equal(transportID, match.CategoryID)
}

func (s *CategoryRuleServiceTestSuite) TestMatchRule_TieBrokenByKeywordLength() {
	ctx := context.Background()
	foodID := uuid.NewString()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Same priority: the longer, more specific keyword must win even
	// though the shorter rule is older.
	rules := []domain.CategoryRule{
		s.rule("uber", uuid.NewString(), 10, base),
		s.rule("uber eats", foodID, 10, base.Add(time.Hour)),
	}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()

	match, err := s.service.MatchRule(ctx, s.ownerID, "UBER EATS order 1234")

	s.Require().NoError(err)
	s.Require().NotNil(match)
	s.Equal(foodID, match.CategoryID)
}

func (s *CategoryRuleServiceTestSuite) TestMatchRule_TieBrokenByCreationTime() {
	ctx := context.Background()
	olderID := uuid.NewString()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rules := []domain.CategoryRule{
		s.rule("taxi", olderID, 10, base),
		s.rule("cabs", uuid.NewString(), 10, base.Add(time.Hour)),
	}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()

	match, err := s.service.MatchRule(ctx, s.ownerID, "taxi and cabs downtown")

	s.Require().NoError(err)
	s.Require().NotNil(match)
	s.Equal(olderID, match.CategoryID)
}

func (s *CategoryRuleServiceTestSuite) TestMatchRule_ExactMatchFullConfidence() {
	ctx := context.Background()
	rules := []domain.CategoryRule{
		s.rule("netflix", uuid.NewString(), 10, time.Now()),
	}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()

	match, err := s.service.MatchRule(ctx, s.ownerID, "  Netflix ")

	s.Require().NoError(err)
	s.Require().NotNil(match)
	s.Equal(1.0, match.Confidence)
}

func (s *CategoryRuleServiceTestSuite) TestMatchRule_NoMatch() {
	ctx := context.Background()
	rules := []domain.CategoryRule{
		s.rule("netflix", uuid.NewString(), 10, time.Now()),
	}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()

	match, err := s.service.MatchRule(ctx, s.ownerID, "pharmacy")

	s.Require().NoError(err)
	s.Nil(match)
}

func (s *CategoryRuleServiceTestSuite) TestMatchRule_BlankDescription() {
	ctx := context.Background()

	match, err := s.service.MatchRule(ctx, s.ownerID, "   ")

	s.Require().NoError(err)
	s.Nil(match)
	s.mockRuleRepo.AssertNotCalled(s.T(), "ListRulesByOwner")
}

// --- CreateRule ---

func (s *CategoryRuleServiceTestSuite) TestCreateRule_NormalizesKeyword() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	category := &domain.Category{CategoryID: categoryID, OwnerID: s.ownerID, Kind: domain.Expense}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(category, nil).Once()
	s.mockRuleRepo.On("SaveRule", ctx, mock.MatchedBy(func(rule domain.CategoryRule) bool {
		return rule.Keyword == "uber eats" && rule.Priority == domain.DefaultRulePriority
	})).Return(nil).Once()

	rule, err := s.service.CreateRule(ctx, s.ownerID, dto.CreateCategoryRuleRequest{
		Keyword:    "  Uber Eats ",
		CategoryID: categoryID,
	})

	s.Require().NoError(err)
	s.Equal("uber eats", rule.Keyword)
	s.Equal(domain.DefaultRulePriority, rule.Priority)
	s.mockRuleRepo.AssertExpectations(s.T())
}

func (s *CategoryRuleServiceTestSuite) TestCreateRule_BlankKeyword() {
	ctx := context.Background()

	_, err := s.service.CreateRule(ctx, s.ownerID, dto.CreateCategoryRuleRequest{
		Keyword:    "   ",
		CategoryID: uuid.NewString(),
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *CategoryRuleServiceTestSuite) TestCreateRule_ForeignCategory() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	category := &domain.Category{CategoryID: categoryID, OwnerID: uuid.NewString(), Kind: domain.Expense}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(category, nil).Once()

	_, err := s.service.CreateRule(ctx, s.ownerID, dto.CreateCategoryRuleRequest{
		Keyword:    "uber",
		CategoryID: categoryID,
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

// --- GetRuleByID ---

func (s *CategoryRuleServiceTestSuite) TestGetRuleByID_ForeignOwnerLooksMissing() {
	ctx := context.Background()
	rule := s.rule("uber", uuid.NewString(), 10, time.Now())
	rule.OwnerID = uuid.NewString()

	s.mockRuleRepo.On("FindRuleByID", ctx, rule.RuleID).Return(&rule, nil).Once()

	_, err := s.service.GetRuleByID(ctx, s.ownerID, rule.RuleID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestCategoryRuleService(t *testing.T) {
	suite.Run(t, new(CategoryRuleServiceTestSuite))
}
