package domain

// User represents a registered owner of ledger data. Every other entity in
// the domain belongs to exactly one user.
type User struct {
	UserID string `json:"userID"` // Primary Key (e.g., UUID)
	Name   string `json:"name"`
	Email  string `json:"email"` // Unique login identifier
	AuditFields
}
