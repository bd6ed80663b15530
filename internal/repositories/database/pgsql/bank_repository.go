package pgsql

import (
	"context"
	"database/sql"
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

type PgxBankRepository struct {
	pool *pgxpool.Pool
}

// newPgxBankRepository creates a new repository for the bank registry.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{pool: pool}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// SaveBank inserts a new bank.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	query := `
		INSERT INTO banks (bank_id, name, code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		bank.BankID,
		bank.Name,
		sql.NullString{String: bank.Code, Valid: bank.Code != ""},
		bank.CreatedAt,
		bank.CreatedBy,
		bank.LastUpdatedAt,
		bank.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: bank %s already exists", apperrors.ErrConflict, bank.Name)
		}
		return fmt.Errorf("failed to save bank %s: %w", bank.BankID, err)
	}
	return nil
}

// FindBankByID retrieves a bank by its ID.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `
		SELECT bank_id, name, code, created_at, created_by, last_updated_at, last_updated_by
		FROM banks
		WHERE bank_id = $1;
	`
	m, err := scanBank(r.pool.QueryRow(ctx, query, bankID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank by ID %s: %w", bankID, err)
	}
	b := mapping.ToDomainBank(m)
	return &b, nil
}

// ListBanks retrieves all registered banks ordered by name.
func (r *PgxBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	query := `
		SELECT bank_id, name, code, created_at, created_by, last_updated_at, last_updated_by
		FROM banks
		ORDER BY name ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	banks := make([]models.Bank, 0)
	for rows.Next() {
		m, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", err)
	}
	return mapping.ToDomainBankSlice(banks), nil
}

// UpdateBank updates an existing bank's details.
func (r *PgxBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	query := `
		UPDATE banks
		SET name = $2, code = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bank_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		bank.BankID,
		bank.Name,
		sql.NullString{String: bank.Code, Valid: bank.Code != ""},
		bank.LastUpdatedAt,
		bank.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: bank %s already exists", apperrors.ErrConflict, bank.Name)
		}
		return fmt.Errorf("failed to update bank %s: %w", bank.BankID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBank removes a bank. The accounts FK restricts the delete while any
// account still references the bank.
func (r *PgxBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banks WHERE bank_id = $1;`, bankID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: bank %s is still referenced by accounts", apperrors.ErrConflict, bankID)
		}
		return fmt.Errorf("failed to delete bank %s: %w", bankID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanBank reads one bank row, normalizing the nullable code column.
func scanBank(row pgx.Row) (models.Bank, error) {
	var m models.Bank
	var code sql.NullString
	err := row.Scan(
		&m.BankID,
		&m.Name,
		&code,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Bank{}, err
	}
	if code.Valid {
		m.Code = code.String
	}
	return m, nil
}
