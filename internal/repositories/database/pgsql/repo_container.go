package pgsql

import (
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		BankRepo:      newPgxBankRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		CategoryRepo:  newPgxCategoryRepository(dbPool),
		RuleRepo:      newPgxCategoryRuleRepository(dbPool),
		MovementRepo:  newPgxMovementRepository(dbPool),
		DashboardRepo: newPgxDashboardRepository(dbPool),
	}
}
