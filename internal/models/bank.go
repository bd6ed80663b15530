package models

// Bank represents a bank registry row.
type Bank struct {
	BankID string `db:"bank_id"`
	Name   string `db:"name"`
	Code   string `db:"code"` // Nullable
	AuditFields
}
