package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// MovementReaderSvc defines read operations for movement data
type MovementReaderSvc interface {
	// GetMovementByID retrieves a movement, verifying it belongs to
	// ownerID. Another owner's movement is indistinguishable from a
	// missing one.
	GetMovementByID(ctx context.Context, ownerID string, movementID string) (*domain.Movement, error)

	// ListMovements retrieves a filtered page of the owner's movements,
	// most recent occurrence date first.
	ListMovements(ctx context.Context, ownerID string, params dto.ListMovementsParams) ([]domain.Movement, *string, error)
}

// MovementWriterSvc defines write operations for movement data
type MovementWriterSvc interface {
	// CreateMovement validates a draft against the ledger invariants and
	// persists it. When the draft opts into auto-categorization and has no
	// category, the rule matcher is consulted.
	CreateMovement(ctx context.Context, ownerID string, req dto.CreateMovementRequest) (*domain.Movement, error)

	// UpdateMovement applies a partial patch, re-validating every
	// invariant on the merged movement.
	UpdateMovement(ctx context.Context, ownerID string, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error)

	// DeleteMovement removes a movement permanently.
	DeleteMovement(ctx context.Context, ownerID string, movementID string) error
}

// MovementSvcFacade combines all movement-related service interfaces.
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
}
