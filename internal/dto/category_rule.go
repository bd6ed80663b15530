package dto

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CreateCategoryRuleRequest defines the data needed to create a rule.
// Keyword is normalized (lower-cased, trimmed) by the service before save.
type CreateCategoryRuleRequest struct {
	Keyword    string `json:"keyword" binding:"required"`
	CategoryID string `json:"categoryID" binding:"required,uuid"`
	Priority   *int   `json:"priority" binding:"omitempty,min=1,max=999"`
}

// UpdateCategoryRuleRequest defines the fields allowed when updating a rule.
type UpdateCategoryRuleRequest struct {
	Keyword    *string `json:"keyword"`
	CategoryID *string `json:"categoryID" binding:"omitempty,uuid"`
	Priority   *int    `json:"priority" binding:"omitempty,min=1,max=999"`
}

// CategoryRuleResponse defines the data returned for a rule.
type CategoryRuleResponse struct {
	RuleID     string `json:"ruleID"`
	Keyword    string `json:"keyword"`
	CategoryID string `json:"categoryID"`
	Priority   int    `json:"priority"`
}

// ToCategoryRuleResponse converts a domain.CategoryRule to its DTO
func ToCategoryRuleResponse(r *domain.CategoryRule) CategoryRuleResponse {
	return CategoryRuleResponse{
		RuleID:     r.RuleID,
		Keyword:    r.Keyword,
		CategoryID: r.CategoryID,
		Priority:   r.Priority,
	}
}

// ToListCategoryRuleResponse converts a slice of rules to response DTOs
func ToListCategoryRuleResponse(rules []domain.CategoryRule) []CategoryRuleResponse {
	res := make([]CategoryRuleResponse, len(rules))
	for i := range rules {
		res[i] = ToCategoryRuleResponse(&rules[i])
	}
	return res
}

// RuleMatchResponse is returned by the dry-run match endpoint.
type RuleMatchResponse struct {
	RuleID     string  `json:"ruleID"`
	CategoryID string  `json:"categoryID"`
	Confidence float64 `json:"confidence"`
}

// MatchRuleRequest carries a description to resolve against the rule set.
type MatchRuleRequest struct {
	Description string `json:"description" binding:"required"`
}
