package mapping

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/models"
)

// ToModelCategoryRule converts a domain CategoryRule to a model CategoryRule
func ToModelCategoryRule(d domain.CategoryRule) models.CategoryRule {
	return models.CategoryRule{
		RuleID:      d.RuleID,
		OwnerID:     d.OwnerID,
		Keyword:     d.Keyword,
		CategoryID:  d.CategoryID,
		Priority:    d.Priority,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategoryRule converts a model CategoryRule to a domain CategoryRule
func ToDomainCategoryRule(m models.CategoryRule) domain.CategoryRule {
	return domain.CategoryRule{
		RuleID:      m.RuleID,
		OwnerID:     m.OwnerID,
		Keyword:     m.Keyword,
		CategoryID:  m.CategoryID,
		Priority:    m.Priority,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategoryRuleSlice converts a slice of model CategoryRules to domain CategoryRules
func ToDomainCategoryRuleSlice(ms []models.CategoryRule) []domain.CategoryRule {
	ds := make([]domain.CategoryRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategoryRule(m)
	}
	return ds
}
