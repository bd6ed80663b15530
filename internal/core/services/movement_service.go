package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
)

// MovementService is the ledger store: it owns every movement write path
// and enforces the ledger invariants before any commit.
type MovementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	matcher      portssvc.RuleMatcherSvc
}

// NewMovementService creates a new movement service.
func NewMovementService(
	movementRepo portsrepo.MovementRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	matcher portssvc.RuleMatcherSvc,
) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		matcher:      matcher,
	}
}

var _ portssvc.MovementSvcFacade = (*MovementService)(nil)

// CreateMovement validates a draft against the ledger invariants and
// persists it. When the draft opts into auto-categorization and carries no
// category, the rule matcher is consulted first.
func (s *MovementService) CreateMovement(ctx context.Context, ownerID string, req dto.CreateMovementRequest) (*domain.Movement, error) {
	now := time.Now()

	origin := req.Origin
	if origin == "" {
		origin = domain.OriginManual
	}

	movement := domain.Movement{
		MovementID:  uuid.NewString(),
		OwnerID:     ownerID,
		AccountID:   req.AccountID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Kind:        req.Kind,
		Origin:      origin,
		Notes:       req.Notes,
		IsRecurring: req.IsRecurring,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
	if req.CategoryID != nil {
		movement.CategoryID = *req.CategoryID
	}
	if req.ExternalID != nil {
		movement.ExternalID = *req.ExternalID
	}
	if req.Competence != nil {
		movement.Competence = *req.Competence
	}
	if req.IsRecurring {
		if req.RecurrenceKind != nil {
			movement.RecurrenceKind = *req.RecurrenceKind
		}
		movement.RecurrenceInterval = 1
		if req.RecurrenceInterval != nil {
			movement.RecurrenceInterval = *req.RecurrenceInterval
		}
		movement.RecurrenceEndDate = req.RecurrenceEndDate
	}

	// Auto-categorization is opt-in and only fills an absent category
	if req.AutoCategorize && movement.CategoryID == "" {
		match, err := s.matcher.MatchRule(ctx, ownerID, movement.Description)
		if err != nil {
			return nil, err
		}
		if match != nil {
			movement.CategoryID = match.CategoryID
			movement.AutoCategorized = true
			movement.Confidence = match.Confidence
		}
	}

	if err := s.validateMovement(ctx, &movement); err != nil {
		return nil, err
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save movement", "movement_id", movement.MovementID)
		}
		return nil, err
	}
	s.LogInfo(ctx, "Movement created", "movement_id", movement.MovementID, "origin", string(movement.Origin))
	return &movement, nil
}

// GetMovementByID retrieves a movement, verifying ownership. Another
// owner's movement is reported as not found.
func (s *MovementService) GetMovementByID(ctx context.Context, ownerID string, movementID string) (*domain.Movement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find movement", "movement_id", movementID)
		}
		return nil, err
	}
	if movement.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return movement, nil
}

// ListMovements retrieves a filtered page of the owner's movements, most
// recent occurrence date first.
func (s *MovementService) ListMovements(ctx context.Context, ownerID string, params dto.ListMovementsParams) ([]domain.Movement, *string, error) {
	if params.Competence != "" && !domain.ValidCompetence(params.Competence) {
		return nil, nil, fmt.Errorf("%w: competence must be YYYY-MM", apperrors.ErrValidation)
	}

	filter := portsrepo.MovementFilter{
		Competence: params.Competence,
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		Kind:       domain.MovementKind(params.Kind),
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	movements, nextToken, err := s.movementRepo.ListMovements(ctx, ownerID, filter, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list movements", "owner_id", ownerID)
		}
		return nil, nil, err
	}
	return movements, nextToken, nil
}

// UpdateMovement applies a partial patch, re-validating every invariant on
// the merged movement. Account and external id are immutable.
func (s *MovementService) UpdateMovement(ctx context.Context, ownerID string, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error) {
	movement, err := s.GetMovementByID(ctx, ownerID, movementID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		movement.CategoryID = *req.CategoryID
		// A manually chosen (or cleared) category is no longer an
		// automatic classification
		movement.AutoCategorized = false
		movement.Confidence = 0
	}
	if req.Description != nil {
		movement.Description = *req.Description
	}
	if req.Amount != nil {
		movement.Amount = *req.Amount
	}
	if req.Date != nil {
		movement.Date = *req.Date
		// Competence follows the date unless the patch pins it explicitly
		if req.Competence == nil {
			movement.Competence = domain.CompetenceFromDate(*req.Date)
		}
	}
	if req.Kind != nil {
		movement.Kind = *req.Kind
	}
	if req.Competence != nil {
		movement.Competence = *req.Competence
	}
	if req.Notes != nil {
		movement.Notes = *req.Notes
	}
	if req.IsRecurring != nil {
		movement.IsRecurring = *req.IsRecurring
	}
	if movement.IsRecurring {
		if req.RecurrenceKind != nil {
			movement.RecurrenceKind = *req.RecurrenceKind
		}
		if req.RecurrenceInterval != nil {
			movement.RecurrenceInterval = *req.RecurrenceInterval
		}
		if movement.RecurrenceInterval == 0 {
			movement.RecurrenceInterval = 1
		}
		if req.RecurrenceEndDate != nil {
			movement.RecurrenceEndDate = req.RecurrenceEndDate
		}
	}

	if err := s.validateMovement(ctx, movement); err != nil {
		return nil, err
	}

	movement.LastUpdatedAt = time.Now()
	movement.LastUpdatedBy = ownerID

	if err := s.movementRepo.UpdateMovement(ctx, *movement); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update movement", "movement_id", movementID)
		}
		return nil, err
	}
	return movement, nil
}

// DeleteMovement removes a movement permanently.
func (s *MovementService) DeleteMovement(ctx context.Context, ownerID string, movementID string) error {
	if _, err := s.GetMovementByID(ctx, ownerID, movementID); err != nil {
		return err
	}
	if err := s.movementRepo.DeleteMovement(ctx, movementID); err != nil {
		s.LogError(ctx, err, "Failed to delete movement", "movement_id", movementID)
		return err
	}
	s.LogInfo(ctx, "Movement deleted", "movement_id", movementID)
	return nil
}

// validateMovement enforces the ledger invariants on a fully merged
// movement. Every write path runs through here before commit.
func (s *MovementService) validateMovement(ctx context.Context, m *domain.Movement) error {
	if m.Description == "" {
		return fmt.Errorf("%w: description must not be blank", apperrors.ErrValidation)
	}
	if !m.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be strictly positive", apperrors.ErrValidation)
	}
	if !domain.ValidMovementKind(m.Kind) {
		return fmt.Errorf("%w: invalid movement kind %q", apperrors.ErrValidation, m.Kind)
	}
	if !domain.ValidMovementOrigin(m.Origin) {
		return fmt.Errorf("%w: invalid movement origin %q", apperrors.ErrValidation, m.Origin)
	}

	// Account must exist and belong to the movement's owner
	account, err := s.accountRepo.FindAccountByID(ctx, m.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown account", apperrors.ErrValidation)
		}
		return err
	}
	if account.OwnerID != m.OwnerID {
		return apperrors.ErrForbidden
	}

	// Category, when set, must belong to the owner and agree on kind
	if m.CategoryID != "" {
		category, err := s.categoryRepo.FindCategoryByID(ctx, m.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown category", apperrors.ErrValidation)
			}
			return err
		}
		if category.OwnerID != m.OwnerID {
			return apperrors.ErrForbidden
		}
		if category.Kind != m.Kind {
			return fmt.Errorf("%w: category kind %s does not match movement kind %s", apperrors.ErrValidation, category.Kind, m.Kind)
		}
	} else {
		// No category means no automatic classification either
		m.AutoCategorized = false
		m.Confidence = 0
	}

	if m.AutoCategorized && (m.Confidence < 0 || m.Confidence > 1) {
		return fmt.Errorf("%w: confidence must be within [0,1]", apperrors.ErrValidation)
	}

	// Competence follows the occurrence date when absent
	if m.Competence == "" {
		m.Competence = domain.CompetenceFromDate(m.Date)
	}
	if !domain.ValidCompetence(m.Competence) {
		return fmt.Errorf("%w: competence must be YYYY-MM", apperrors.ErrValidation)
	}

	if m.IsRecurring {
		if !domain.ValidRecurrenceKind(m.RecurrenceKind) {
			return fmt.Errorf("%w: recurrence kind is required for recurring movements", apperrors.ErrValidation)
		}
		if m.RecurrenceInterval < 1 {
			return fmt.Errorf("%w: recurrence interval must be at least 1", apperrors.ErrValidation)
		}
		if m.RecurrenceEndDate != nil && !m.RecurrenceEndDate.After(m.Date) {
			return fmt.Errorf("%w: recurrence end date must be after the occurrence date", apperrors.ErrValidation)
		}
	} else {
		// A non-recurring movement never carries recurrence data
		m.ClearRecurrence()
	}

	return nil
}
