package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
)

// CategoryRuleService manages an owner's keyword rules and resolves
// movement descriptions against them.
type CategoryRuleService struct {
	BaseService
	ruleRepo     portsrepo.CategoryRuleRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryRuleService creates a new category rule service.
func NewCategoryRuleService(ruleRepo portsrepo.CategoryRuleRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryRuleService {
	return &CategoryRuleService{ruleRepo: ruleRepo, categoryRepo: categoryRepo}
}

var _ portssvc.CategoryRuleSvcFacade = (*CategoryRuleService)(nil)

// normalizeKeyword lower-cases and trims matching text. Keywords are stored
// normalized so matching is a plain substring check.
func normalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchRule returns the best-matching rule for the description, or
// (nil, nil) when no rule keyword occurs in it. The winner is the rule with
// the lowest priority number; ties go to the longest keyword, then the
// earliest created rule.
func (s *CategoryRuleService) MatchRule(ctx context.Context, ownerID string, description string) (*domain.RuleMatch, error) {
	normalized := normalizeKeyword(description)
	if normalized == "" {
		return nil, nil
	}

	rules, err := s.ruleRepo.ListRulesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules for matching", "owner_id", ownerID)
		return nil, err
	}

	var best *domain.CategoryRule
	for i := range rules {
		rule := &rules[i]
		if rule.Keyword == "" || !strings.Contains(normalized, rule.Keyword) {
			continue
		}
		if best == nil || betterMatch(rule, best) {
			best = rule
		}
	}
	if best == nil {
		return nil, nil
	}

	confidence := 1.0
	if normalized != best.Keyword {
		confidence = float64(len(best.Keyword)) / float64(len(normalized))
	}

	return &domain.RuleMatch{
		RuleID:     best.RuleID,
		CategoryID: best.CategoryID,
		Confidence: confidence,
	}, nil
}

// betterMatch reports whether a beats b under the deterministic ordering:
// lowest priority, then longest keyword, then earliest creation.
func betterMatch(a, b *domain.CategoryRule) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if len(a.Keyword) != len(b.Keyword) {
		return len(a.Keyword) > len(b.Keyword)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// CreateRule persists a new rule with a normalized keyword.
func (s *CategoryRuleService) CreateRule(ctx context.Context, ownerID string, req dto.CreateCategoryRuleRequest) (*domain.CategoryRule, error) {
	keyword := normalizeKeyword(req.Keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword must not be blank", apperrors.ErrValidation)
	}

	// A rule may only target the owner's own category
	if err := s.checkCategoryOwnership(ctx, ownerID, req.CategoryID); err != nil {
		return nil, err
	}

	priority := domain.DefaultRulePriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	now := time.Now()
	rule := domain.CategoryRule{
		RuleID:     uuid.NewString(),
		OwnerID:    ownerID,
		Keyword:    keyword,
		CategoryID: req.CategoryID,
		Priority:   priority,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save rule", "rule_id", rule.RuleID)
		return nil, err
	}
	s.LogInfo(ctx, "Rule created", "rule_id", rule.RuleID, "keyword", rule.Keyword)
	return &rule, nil
}

// GetRuleByID retrieves a rule, verifying ownership.
func (s *CategoryRuleService) GetRuleByID(ctx context.Context, ownerID string, ruleID string) (*domain.CategoryRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find rule", "rule_id", ruleID)
		}
		return nil, err
	}
	if rule.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return rule, nil
}

// ListRules retrieves all of the owner's rules in matching order.
func (s *CategoryRuleService) ListRules(ctx context.Context, ownerID string) ([]domain.CategoryRule, error) {
	rules, err := s.ruleRepo.ListRulesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules", "owner_id", ownerID)
		return nil, err
	}
	return rules, nil
}

// UpdateRule updates an existing rule's details.
func (s *CategoryRuleService) UpdateRule(ctx context.Context, ownerID string, ruleID string, req dto.UpdateCategoryRuleRequest) (*domain.CategoryRule, error) {
	rule, err := s.GetRuleByID(ctx, ownerID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Keyword != nil {
		keyword := normalizeKeyword(*req.Keyword)
		if keyword == "" {
			return nil, fmt.Errorf("%w: keyword must not be blank", apperrors.ErrValidation)
		}
		rule.Keyword = keyword
	}
	if req.CategoryID != nil {
		if err := s.checkCategoryOwnership(ctx, ownerID, *req.CategoryID); err != nil {
			return nil, err
		}
		rule.CategoryID = *req.CategoryID
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = ownerID

	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update rule", "rule_id", ruleID)
		return nil, err
	}
	return rule, nil
}

// DeleteRule removes a rule.
func (s *CategoryRuleService) DeleteRule(ctx context.Context, ownerID string, ruleID string) error {
	if _, err := s.GetRuleByID(ctx, ownerID, ruleID); err != nil {
		return err
	}
	if err := s.ruleRepo.DeleteRule(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete rule", "rule_id", ruleID)
		return err
	}
	s.LogInfo(ctx, "Rule deleted", "rule_id", ruleID)
	return nil
}

// checkCategoryOwnership rejects rules that target a category the owner
// does not hold.
func (s *CategoryRuleService) checkCategoryOwnership(ctx context.Context, ownerID string, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown category", apperrors.ErrValidation)
		}
		return err
	}
	if category.OwnerID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}
