package models

// MovementKind partitions movements and categories into income and expense.
type MovementKind string

const (
	Income  MovementKind = "INCOME"
	Expense MovementKind = "EXPENSE"
)

// Category represents a category row.
type Category struct {
	CategoryID string       `db:"category_id"`
	OwnerID    string       `db:"owner_id"`
	Name       string       `db:"name"`
	Kind       MovementKind `db:"kind"`
	Color      string       `db:"color"` // Nullable
	AuditFields
}
