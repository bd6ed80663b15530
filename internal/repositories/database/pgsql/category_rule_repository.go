package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/granaapp/grana_backend/internal/models"
	"github.com/granaapp/grana_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRuleRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRuleRepository creates a new repository for categorization rules.
func newPgxCategoryRuleRepository(pool *pgxpool.Pool) portsrepo.CategoryRuleRepositoryFacade {
	return &PgxCategoryRuleRepository{pool: pool}
}

var _ portsrepo.CategoryRuleRepositoryFacade = (*PgxCategoryRuleRepository)(nil)

// SaveRule inserts a new rule.
func (r *PgxCategoryRuleRepository) SaveRule(ctx context.Context, rule domain.CategoryRule) error {
	m := mapping.ToModelCategoryRule(rule)

	query := `
		INSERT INTO category_rules (rule_id, owner_id, keyword, category_id, priority, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RuleID,
		m.OwnerID,
		m.Keyword,
		m.CategoryID,
		m.Priority,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation on (owner_id, keyword)
				return fmt.Errorf("%w: rule for keyword %q already exists", apperrors.ErrConflict, m.Keyword)
			case "23503": // FK violation (unknown category)
				return fmt.Errorf("%w: rule references a missing category", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save rule %s: %w", m.RuleID, err)
	}
	return nil
}

// FindRuleByID retrieves a rule by its ID.
func (r *PgxCategoryRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategoryRule, error) {
	query := `
		SELECT rule_id, owner_id, keyword, category_id, priority, created_at, created_by, last_updated_at, last_updated_by
		FROM category_rules
		WHERE rule_id = $1;
	`
	m, err := scanRule(r.pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule by ID %s: %w", ruleID, err)
	}
	rule := mapping.ToDomainCategoryRule(m)
	return &rule, nil
}

// ListRulesByOwner retrieves all rules of an owner ordered by priority
// ascending, then creation time ascending. The matcher depends on this
// ordering being stable.
func (r *PgxCategoryRuleRepository) ListRulesByOwner(ctx context.Context, ownerID string) ([]domain.CategoryRule, error) {
	query := `
		SELECT rule_id, owner_id, keyword, category_id, priority, created_at, created_by, last_updated_at, last_updated_by
		FROM category_rules
		WHERE owner_id = $1
		ORDER BY priority ASC, created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	rules := make([]models.CategoryRule, 0)
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		rules = append(rules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule rows: %w", err)
	}
	return mapping.ToDomainCategoryRuleSlice(rules), nil
}

// UpdateRule updates an existing rule's details.
func (r *PgxCategoryRuleRepository) UpdateRule(ctx context.Context, rule domain.CategoryRule) error {
	m := mapping.ToModelCategoryRule(rule)

	query := `
		UPDATE category_rules
		SET keyword = $2, category_id = $3, priority = $4, last_updated_at = $5, last_updated_by = $6
		WHERE rule_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.RuleID,
		m.Keyword,
		m.CategoryID,
		m.Priority,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: rule for keyword %q already exists", apperrors.ErrConflict, m.Keyword)
			case "23503":
				return fmt.Errorf("%w: rule references a missing category", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to update rule %s: %w", m.RuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRule removes a rule.
func (r *PgxCategoryRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM category_rules WHERE rule_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanRule(row pgx.Row) (models.CategoryRule, error) {
	var m models.CategoryRule
	err := row.Scan(
		&m.RuleID,
		&m.OwnerID,
		&m.Keyword,
		&m.CategoryID,
		&m.Priority,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.CategoryRule{}, err
	}
	return m, nil
}
