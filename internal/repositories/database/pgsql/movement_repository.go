package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/granaapp/grana_backend/internal/models"
	"github.com/granaapp/grana_backend/internal/utils/mapping"
	"github.com/granaapp/grana_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movementColumns = `movement_id, owner_id, account_id, category_id, description, amount, occurrence_date, kind, origin, auto_categorized, confidence, external_id, competence, notes, is_recurring, recurrence_kind, recurrence_interval, recurrence_end_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxMovementRepository struct {
	pool *pgxpool.Pool
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{pool: pool}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// SaveMovement inserts a new movement. The partial unique index on
// (account_id, external_id) turns duplicate imports and concurrent
// expansion races into ErrConflict.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)

	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.pool.Exec(ctx, query,
		m.MovementID,
		m.OwnerID,
		m.AccountID,
		sql.NullString{String: m.CategoryID, Valid: m.CategoryID != ""},
		m.Description,
		m.Amount,
		m.Date,
		m.Kind,
		m.Origin,
		m.AutoCategorized,
		sql.NullFloat64{Float64: m.Confidence, Valid: m.AutoCategorized},
		sql.NullString{String: m.ExternalID, Valid: m.ExternalID != ""},
		m.Competence,
		sql.NullString{String: m.Notes, Valid: m.Notes != ""},
		m.IsRecurring,
		sql.NullString{String: m.RecurrenceKind, Valid: m.RecurrenceKind != ""},
		sql.NullInt32{Int32: int32(m.RecurrenceInterval), Valid: m.RecurrenceInterval > 0},
		m.RecurrenceEndDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation on (account_id, external_id)
				return fmt.Errorf("%w: movement with external id %q already exists on this account", apperrors.ErrConflict, m.ExternalID)
			case "23503": // FK violation (unknown account or category)
				return fmt.Errorf("%w: movement references a missing account or category", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save movement %s: %w", m.MovementID, err)
	}
	return nil
}

// FindMovementByID retrieves a movement by its ID.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`

	m, err := scanMovement(r.pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement by ID %s: %w", movementID, err)
	}
	mov := mapping.ToDomainMovement(m)
	return &mov, nil
}

// ListMovements retrieves a page of an owner's movements ordered by
// occurrence date descending, then creation time descending, using
// keyset pagination.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, ownerID string, filter portsrepo.MovementFilter, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM movements WHERE owner_id = $1`)
	args := []any{ownerID}

	addCond := func(cond string, val any) {
		args = append(args, val)
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", cond, len(args)))
	}
	if filter.Competence != "" {
		addCond("competence", filter.Competence)
	}
	if filter.AccountID != "" {
		addCond("account_id", filter.AccountID)
	}
	if filter.CategoryID != "" {
		addCond("category_id", filter.CategoryID)
	}
	if filter.Kind != "" {
		addCond("kind", string(filter.Kind))
	}

	if nextToken != nil && *nextToken != "" {
		occurrenceDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, occurrenceDate, createdAt)
		sb.WriteString(fmt.Sprintf(" AND (occurrence_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, limit+1) // fetch one extra row to detect the next page
	sb.WriteString(fmt.Sprintf(" ORDER BY occurrence_date DESC, created_at DESC LIMIT $%d;", len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	movements := make([]models.Movement, 0, limit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows: %w", err)
	}

	var token *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return mapping.ToDomainMovementSlice(movements), token, nil
}

// ListRecurringTemplates retrieves every recurring template across all
// owners for batch expansion.
func (r *PgxMovementRepository) ListRecurringTemplates(ctx context.Context) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE is_recurring = TRUE ORDER BY created_at ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring templates: %w", err)
	}
	defer rows.Close()

	templates := make([]models.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring template row: %w", err)
		}
		templates = append(templates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring template rows: %w", err)
	}
	return mapping.ToDomainMovementSlice(templates), nil
}

// UpdateMovement updates an existing movement. Account, external id and
// origin are immutable and deliberately absent from the SET list.
func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)

	query := `
		UPDATE movements
		SET category_id = $2, description = $3, amount = $4, occurrence_date = $5, kind = $6,
		    auto_categorized = $7, confidence = $8, competence = $9, notes = $10,
		    is_recurring = $11, recurrence_kind = $12, recurrence_interval = $13, recurrence_end_date = $14,
		    last_updated_at = $15, last_updated_by = $16
		WHERE movement_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.MovementID,
		sql.NullString{String: m.CategoryID, Valid: m.CategoryID != ""},
		m.Description,
		m.Amount,
		m.Date,
		m.Kind,
		m.AutoCategorized,
		sql.NullFloat64{Float64: m.Confidence, Valid: m.AutoCategorized},
		m.Competence,
		sql.NullString{String: m.Notes, Valid: m.Notes != ""},
		m.IsRecurring,
		sql.NullString{String: m.RecurrenceKind, Valid: m.RecurrenceKind != ""},
		sql.NullInt32{Int32: int32(m.RecurrenceInterval), Valid: m.RecurrenceInterval > 0},
		m.RecurrenceEndDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: movement references a missing category", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to update movement %s: %w", m.MovementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMovement removes a movement permanently.
func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return fmt.Errorf("failed to delete movement %s: %w", movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanMovement(row pgx.Row) (models.Movement, error) {
	var m models.Movement
	var categoryID, externalID, notes, recurrenceKind sql.NullString
	var confidence sql.NullFloat64
	var recurrenceInterval sql.NullInt32
	var recurrenceEnd sql.NullTime

	err := row.Scan(
		&m.MovementID,
		&m.OwnerID,
		&m.AccountID,
		&categoryID,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.Kind,
		&m.Origin,
		&m.AutoCategorized,
		&confidence,
		&externalID,
		&m.Competence,
		&notes,
		&m.IsRecurring,
		&recurrenceKind,
		&recurrenceInterval,
		&recurrenceEnd,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Movement{}, err
	}

	m.CategoryID = categoryID.String
	m.ExternalID = externalID.String
	m.Notes = notes.String
	m.RecurrenceKind = recurrenceKind.String
	m.Confidence = confidence.Float64
	m.RecurrenceInterval = int(recurrenceInterval.Int32)
	if recurrenceEnd.Valid {
		end := recurrenceEnd.Time
		m.RecurrenceEndDate = &end
	}
	return m, nil
}
