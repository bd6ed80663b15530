package domain

// MovementKind partitions movements (and the categories that classify them)
// into money coming in and money going out.
type MovementKind string

const (
	Income  MovementKind = "INCOME"
	Expense MovementKind = "EXPENSE"
)

// ValidMovementKind reports whether k is one of the known movement kinds.
func ValidMovementKind(k MovementKind) bool {
	return k == Income || k == Expense
}

// Category classifies movements of a matching kind for a single owner.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (e.g., UUID)
	OwnerID    string       `json:"ownerID"`    // FK -> users.user_id (NON-NULL)
	Name       string       `json:"name"`
	Kind       MovementKind `json:"kind"`  // INCOME or EXPENSE
	Color      string       `json:"color"` // Display color, optional
	AuditFields
}
