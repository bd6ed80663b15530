package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecurrenceService materializes future occurrences of recurrence
// templates. Idempotency rests on the derived external id of each
// occurrence and the ledger's per-account uniqueness constraint: re-running
// an expansion simply skips what already exists.
type RecurrenceService struct {
	BaseService
	movementRepo   portsrepo.MovementRepositoryFacade
	maxConcurrency int
}

// NewRecurrenceService creates a new recurrence service. maxConcurrency
// bounds how many templates an ExpandDue sweep works on at once.
func NewRecurrenceService(movementRepo portsrepo.MovementRepositoryFacade, maxConcurrency int) *RecurrenceService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &RecurrenceService{movementRepo: movementRepo, maxConcurrency: maxConcurrency}
}

var _ portssvc.RecurrenceSvcFacade = (*RecurrenceService)(nil)

// ExpandMovement expands one template owned by ownerID up to horizon
// (exclusive).
func (s *RecurrenceService) ExpandMovement(ctx context.Context, ownerID string, movementID string, horizon time.Time) (portssvc.ExpansionResult, error) {
	template, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return portssvc.ExpansionResult{}, err
	}
	if template.OwnerID != ownerID {
		return portssvc.ExpansionResult{}, apperrors.ErrNotFound
	}
	return s.expandTemplate(ctx, template, horizon)
}

// ExpandDue expands every recurring template across all owners up to
// horizon. Per-template failures are logged and skipped so one broken
// template cannot stall the sweep.
func (s *RecurrenceService) ExpandDue(ctx context.Context, horizon time.Time) (portssvc.ExpansionResult, error) {
	templates, err := s.movementRepo.ListRecurringTemplates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring templates")
		return portssvc.ExpansionResult{}, err
	}

	var (
		mu    sync.Mutex
		total portssvc.ExpansionResult
		g     errgroup.Group
	)
	g.SetLimit(s.maxConcurrency)
	for i := range templates {
		template := &templates[i]
		g.Go(func() error {
			result, err := s.expandTemplate(ctx, template, horizon)
			if err != nil {
				s.LogError(ctx, err, "Failed to expand template", "movement_id", template.MovementID)
				return nil
			}
			mu.Lock()
			total.Generated += result.Generated
			total.Skipped += result.Skipped
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	s.LogInfo(ctx, "Expansion sweep finished",
		"templates", len(templates),
		"generated", total.Generated,
		"skipped", total.Skipped,
	)
	return total, nil
}

// expandTemplate walks the template's occurrence schedule and materializes
// every date in [template date, horizon) that is not the template itself.
func (s *RecurrenceService) expandTemplate(ctx context.Context, template *domain.Movement, horizon time.Time) (portssvc.ExpansionResult, error) {
	if !template.IsRecurring || !domain.ValidRecurrenceKind(template.RecurrenceKind) {
		return portssvc.ExpansionResult{}, fmt.Errorf("%w: movement %s is not a recurrence template", apperrors.ErrValidation, template.MovementID)
	}

	schedule, err := domain.NewOccurrenceSchedule(template.Date, template.RecurrenceKind, template.RecurrenceInterval, template.RecurrenceEndDate)
	if err != nil {
		return portssvc.ExpansionResult{}, err
	}

	var result portssvc.ExpansionResult
	for seq := 0; ; seq++ {
		date, ok := schedule.Next()
		if !ok || !date.Before(horizon) {
			break
		}
		if seq == 0 {
			// Sequence zero is the template's own occurrence date; the
			// template already represents it.
			continue
		}

		occurrence := s.buildOccurrence(template, date, seq)
		if err := s.movementRepo.SaveMovement(ctx, occurrence); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				// Already materialized by a previous or concurrent run
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Generated++
	}
	return result, nil
}

// buildOccurrence copies the template into an independent movement for one
// generated date. Generated instances are not templates themselves, and
// their external id is derived so re-runs collide instead of duplicating.
func (s *RecurrenceService) buildOccurrence(template *domain.Movement, date time.Time, seq int) domain.Movement {
	now := time.Now()
	occurrence := *template
	occurrence.MovementID = uuid.NewString()
	occurrence.Date = date
	occurrence.Competence = domain.CompetenceFromDate(date)
	occurrence.ExternalID = domain.OccurrenceExternalID(template.MovementID, seq)
	occurrence.ClearRecurrence()
	occurrence.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     template.OwnerID,
		LastUpdatedAt: now,
		LastUpdatedBy: template.OwnerID,
	}
	return occurrence
}
