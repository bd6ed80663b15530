package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/granaapp/grana_backend/internal/models"
	"github.com/granaapp/grana_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// dashboardRepository implements the DashboardRepository interface
type dashboardRepository struct {
	BaseRepository
}

// newPgxDashboardRepository creates a new dashboard repository
func newPgxDashboardRepository(db *pgxpool.Pool) portsrepo.DashboardRepository {
	return &dashboardRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetPeriodTotals sums movement amounts of one competence period,
// partitioned by kind. Empty periods yield zero totals.
func (r *dashboardRepository) GetPeriodTotals(ctx context.Context, ownerID string, competence string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'INCOME' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense
		FROM movements
		WHERE owner_id = $1 AND competence = $2;
	`
	var income, expense decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, ownerID, competence).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying period totals: %w", err)
	}
	return income, expense, nil
}

// GetExpensesByCategory groups one period's expenses by category, ordered
// by total descending then category name ascending. Movements without a
// category land in the synthetic uncategorized bucket.
func (r *dashboardRepository) GetExpensesByCategory(ctx context.Context, ownerID string, competence string) ([]domain.CategoryExpense, error) {
	query := `
		SELECT
			m.category_id,
			COALESCE(c.name, $3) AS category_name,
			SUM(m.amount) AS total
		FROM movements m
		LEFT JOIN categories c ON m.category_id = c.category_id
		WHERE m.owner_id = $1 AND m.competence = $2 AND m.kind = 'EXPENSE'
		GROUP BY m.category_id, c.name
		ORDER BY total DESC, category_name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, competence, domain.UncategorizedBucket)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses by category: %w", err)
	}
	defer rows.Close()

	result := make([]domain.CategoryExpense, 0)
	for rows.Next() {
		var row domain.CategoryExpense
		var categoryID sql.NullString
		if err := rows.Scan(&categoryID, &row.CategoryName, &row.Total); err != nil {
			return nil, fmt.Errorf("error scanning category expense row: %w", err)
		}
		row.CategoryID = categoryID.String
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category expense rows: %w", err)
	}
	return result, nil
}

// ListRecentMovements retrieves the owner's most recent movements by
// occurrence date descending, with account and category names resolved.
func (r *dashboardRepository) ListRecentMovements(ctx context.Context, ownerID string, limit int) ([]domain.RecentMovement, error) {
	query := `
		SELECT m.movement_id, m.owner_id, m.account_id, m.category_id, m.description, m.amount,
			m.occurrence_date, m.kind, m.origin, m.auto_categorized, m.confidence, m.external_id,
			m.competence, m.notes, m.is_recurring, m.recurrence_kind, m.recurrence_interval,
			m.recurrence_end_date, m.created_at, m.created_by, m.last_updated_at, m.last_updated_by,
			a.name AS account_name,
			COALESCE(c.name, '') AS category_name
		FROM movements m
		JOIN accounts a ON m.account_id = a.account_id
		LEFT JOIN categories c ON m.category_id = c.category_id
		WHERE m.owner_id = $1
		ORDER BY m.occurrence_date DESC, m.created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent movements: %w", err)
	}
	defer rows.Close()

	result := make([]domain.RecentMovement, 0, limit)
	for rows.Next() {
		var m models.Movement
		var categoryID, externalID, notes, recurrenceKind sql.NullString
		var confidence sql.NullFloat64
		var recurrenceInterval sql.NullInt32
		var recurrenceEnd sql.NullTime
		var accountName, categoryName string

		err := rows.Scan(
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
			&accountName,
			&categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning recent movement row: %w", err)
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

		result = append(result, domain.RecentMovement{
			Movement:     mapping.ToDomainMovement(m),
			AccountName:  accountName,
			CategoryName: categoryName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent movement rows: %w", err)
	}
	return result, nil
}
