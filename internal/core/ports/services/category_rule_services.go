package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// RuleMatcherSvc resolves a movement description against an owner's rules.
// Matching is a pure read: the movement create/update flow applies the
// result, the matcher itself never writes.
type RuleMatcherSvc interface {
	// MatchRule returns the best-matching rule for the description, or
	// (nil, nil) when no rule keyword occurs in it. Matching is
	// deterministic: lowest priority wins, then longest keyword, then
	// earliest creation.
	MatchRule(ctx context.Context, ownerID string, description string) (*domain.RuleMatch, error)
}

// CategoryRuleCrudSvc defines CRUD operations on an owner's rules.
type CategoryRuleCrudSvc interface {
	CreateRule(ctx context.Context, ownerID string, req dto.CreateCategoryRuleRequest) (*domain.CategoryRule, error)
	GetRuleByID(ctx context.Context, ownerID string, ruleID string) (*domain.CategoryRule, error)
	ListRules(ctx context.Context, ownerID string) ([]domain.CategoryRule, error)
	UpdateRule(ctx context.Context, ownerID string, ruleID string, req dto.UpdateCategoryRuleRequest) (*domain.CategoryRule, error)
	DeleteRule(ctx context.Context, ownerID string, ruleID string) error
}

// CategoryRuleSvcFacade combines matching and rule management.
type CategoryRuleSvcFacade interface {
	RuleMatcherSvc
	CategoryRuleCrudSvc
}
