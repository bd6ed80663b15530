package services

import (
	"context"
	"time"
)

// ExpansionResult reports what one expansion run produced. Skipped counts
// occurrences that were already materialized by a previous run.
type ExpansionResult struct {
	Generated int
	Skipped   int
}

// RecurrenceSvcFacade materializes future occurrences of recurrence
// templates. The generation horizon is the caller's policy; the service is
// horizon-agnostic and idempotent, so overlapping or retried runs converge
// on the same set of movements.
type RecurrenceSvcFacade interface {
	// ExpandMovement expands one template owned by ownerID up to horizon
	// (exclusive). A non-recurring movement is caller misuse and fails
	// with ErrValidation.
	ExpandMovement(ctx context.Context, ownerID string, movementID string, horizon time.Time) (ExpansionResult, error)

	// ExpandDue expands every recurring template across all owners up to
	// horizon. Per-template failures are logged and skipped; the run
	// continues.
	ExpandDue(ctx context.Context, horizon time.Time) (ExpansionResult, error)
}
