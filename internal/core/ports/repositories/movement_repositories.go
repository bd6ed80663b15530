package repositories

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// MovementFilter narrows a movement listing. Zero-valued fields are ignored.
type MovementFilter struct {
	Competence string
	AccountID  string
	CategoryID string
	Kind       domain.MovementKind
}

// MovementReader defines read operations for movement data
type MovementReader interface {
	// FindMovementByID retrieves a specific movement by its unique identifier.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovements retrieves a page of an owner's movements ordered by
	// occurrence date descending using token-based pagination. It returns
	// the page, a token for the next page (nil when exhausted), and an error.
	ListMovements(ctx context.Context, ownerID string, filter MovementFilter, limit int, nextToken *string) ([]domain.Movement, *string, error)

	// ListRecurringTemplates retrieves every recurring template across all
	// owners, for batch expansion by the worker.
	ListRecurringTemplates(ctx context.Context) ([]domain.Movement, error)
}

// MovementWriter defines write operations for movement data
type MovementWriter interface {
	// SaveMovement persists a new movement. A duplicate
	// (account_id, external_id) pair is rejected with ErrConflict by the
	// storage uniqueness constraint; this is the concurrency guard for
	// de-duplication of imports and recurrence expansion.
	SaveMovement(ctx context.Context, movement domain.Movement) error

	// UpdateMovement updates an existing movement. Account and external id
	// are immutable and never written.
	UpdateMovement(ctx context.Context, movement domain.Movement) error

	// DeleteMovement removes a movement permanently.
	DeleteMovement(ctx context.Context, movementID string) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
