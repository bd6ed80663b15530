package repositories

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CategoryRuleReader defines read operations for categorization rules
type CategoryRuleReader interface {
	// FindRuleByID retrieves a specific rule by its unique identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.CategoryRule, error)

	// ListRulesByOwner retrieves all rules of an owner ordered by priority
	// ascending, then creation time ascending. The matcher relies on this
	// ordering being stable.
	ListRulesByOwner(ctx context.Context, ownerID string) ([]domain.CategoryRule, error)
}

// CategoryRuleWriter defines write operations for categorization rules
type CategoryRuleWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.CategoryRule) error

	// UpdateRule updates an existing rule's details.
	UpdateRule(ctx context.Context, rule domain.CategoryRule) error

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, ruleID string) error
}

// CategoryRuleRepositoryFacade combines all rule-related repository interfaces.
type CategoryRuleRepositoryFacade interface {
	CategoryRuleReader
	CategoryRuleWriter
}
