package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementOrigin records how a movement entered the ledger.
type MovementOrigin string

const (
	OriginManual          MovementOrigin = "MANUAL"
	OriginStatementImport MovementOrigin = "STATEMENT_IMPORT"
	OriginExternalMessage MovementOrigin = "EXTERNAL_MESSAGE"
)

// Movement represents a ledger movement row. Nullable columns are handled
// with sql.Null* wrappers at scan time in the repository.
type Movement struct {
	MovementID  string          `db:"movement_id"`
	OwnerID     string          `db:"owner_id"`
	AccountID   string          `db:"account_id"`
	CategoryID  string          `db:"category_id"` // Nullable
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"occurrence_date"`
	Kind        MovementKind    `db:"kind"`
	Origin      MovementOrigin  `db:"origin"`

	AutoCategorized bool    `db:"auto_categorized"`
	Confidence      float64 `db:"confidence"` // Nullable

	ExternalID string `db:"external_id"` // Nullable, unique per account
	Competence string `db:"competence"`
	Notes      string `db:"notes"` // Nullable

	IsRecurring        bool       `db:"is_recurring"`
	RecurrenceKind     string     `db:"recurrence_kind"`     // Nullable
	RecurrenceInterval int        `db:"recurrence_interval"` // Nullable
	RecurrenceEndDate  *time.Time `db:"recurrence_end_date"` // Nullable

	AuditFields
}
