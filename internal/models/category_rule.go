package models

// CategoryRule represents a keyword categorization rule row.
type CategoryRule struct {
	RuleID     string `db:"rule_id"`
	OwnerID    string `db:"owner_id"`
	Keyword    string `db:"keyword"`
	CategoryID string `db:"category_id"`
	Priority   int    `db:"priority"`
	AuditFields
}
