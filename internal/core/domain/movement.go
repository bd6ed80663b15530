package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// MovementOrigin records how a movement entered the ledger. It informs
// trust defaults for auto-categorization but carries no behavior itself.
type MovementOrigin string

const (
	OriginManual          MovementOrigin = "MANUAL"
	OriginStatementImport MovementOrigin = "STATEMENT_IMPORT"
	OriginExternalMessage MovementOrigin = "EXTERNAL_MESSAGE"
)

// ValidMovementOrigin reports whether o is one of the known origins.
func ValidMovementOrigin(o MovementOrigin) bool {
	switch o {
	case OriginManual, OriginStatementImport, OriginExternalMessage:
		return true
	}
	return false
}

// RecurrenceKind is the unit a recurring movement repeats in.
type RecurrenceKind string

const (
	Weekly  RecurrenceKind = "WEEKLY"
	Monthly RecurrenceKind = "MONTHLY"
	Yearly  RecurrenceKind = "YEARLY"
)

// ValidRecurrenceKind reports whether k is one of the known recurrence kinds.
func ValidRecurrenceKind(k RecurrenceKind) bool {
	switch k {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// competencePattern matches the YYYY-MM reporting bucket format.
var competencePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidCompetence reports whether s is a well-formed YYYY-MM competence.
func ValidCompetence(s string) bool {
	return competencePattern.MatchString(s)
}

// CompetenceFromDate derives the YYYY-MM competence bucket of a date.
func CompetenceFromDate(t time.Time) string {
	return t.Format("2006-01")
}

// Movement is a single monetary entry (income or expense) in the ledger.
// Amount is always strictly positive; Kind carries the direction.
type Movement struct {
	MovementID  string          `json:"movementID"` // Primary Key (e.g., UUID)
	OwnerID     string          `json:"ownerID"`    // FK -> users.user_id (NON-NULL)
	AccountID   string          `json:"accountID"`  // FK -> accounts.account_id; immutable after create
	CategoryID  string          `json:"categoryID"` // Nullable FK -> categories.category_id
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Strictly positive
	Date        time.Time       `json:"date"`   // Occurrence date
	Kind        MovementKind    `json:"kind"`   // INCOME or EXPENSE
	Origin      MovementOrigin  `json:"origin"`

	AutoCategorized bool    `json:"autoCategorized"`
	Confidence      float64 `json:"confidence,omitempty"` // [0,1], meaningful only when AutoCategorized

	ExternalID string `json:"externalID,omitempty"` // Unique per account; immutable after create
	Competence string `json:"competence"`           // YYYY-MM, derived from Date when not supplied
	Notes      string `json:"notes,omitempty"`

	// Recurrence template fields. All are cleared when IsRecurring is false.
	IsRecurring        bool           `json:"isRecurring"`
	RecurrenceKind     RecurrenceKind `json:"recurrenceKind,omitempty"`
	RecurrenceInterval int            `json:"recurrenceInterval,omitempty"` // Every N periods, >= 1
	RecurrenceEndDate  *time.Time     `json:"recurrenceEndDate,omitempty"`

	AuditFields
}

// ClearRecurrence nulls all recurrence fields. Invariant: a non-recurring
// movement never carries recurrence data, regardless of what was submitted.
func (m *Movement) ClearRecurrence() {
	m.IsRecurring = false
	m.RecurrenceKind = ""
	m.RecurrenceInterval = 0
	m.RecurrenceEndDate = nil
}
