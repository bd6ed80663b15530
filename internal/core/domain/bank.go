package domain

// Bank is a global registry entry for a financial institution. Banks are not
// owner-scoped; accounts reference them for display only.
type Bank struct {
	BankID string `json:"bankID"` // Primary Key (e.g., UUID)
	Name   string `json:"name"`
	Code   string `json:"code"` // Clearing/network code, optional
	AuditFields
}
