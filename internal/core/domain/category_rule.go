package domain

// DefaultRulePriority is the lowest precedence; rules created without an
// explicit priority sort after every explicitly prioritized rule.
const DefaultRulePriority = 999

// CategoryRule maps a keyword found in a movement description to a category
// of the same owner. Lower priority values are matched first.
type CategoryRule struct {
	RuleID     string `json:"ruleID"`     // Primary Key (e.g., UUID)
	OwnerID    string `json:"ownerID"`    // FK -> users.user_id (NON-NULL)
	Keyword    string `json:"keyword"`    // Lower-cased, trimmed, non-empty
	CategoryID string `json:"categoryID"` // FK -> categories.category_id, same owner
	Priority   int    `json:"priority"`   // Lower value = higher precedence
	AuditFields
}

// RuleMatch is the result of resolving a description against an owner's
// rule set.
type RuleMatch struct {
	RuleID     string  `json:"ruleID"`
	CategoryID string  `json:"categoryID"`
	Confidence float64 `json:"confidence"` // 1.0 exact match, else keyword/description length ratio
}
