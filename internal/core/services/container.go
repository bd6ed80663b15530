package services

import (
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	ruleService := NewCategoryRuleService(repos.RuleRepo, repos.CategoryRepo)

	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo),
		Auth:       NewAuthService(repos.UserRepo, cfg),
		Bank:       NewBankService(repos.BankRepo),
		Account:    NewAccountService(repos.AccountRepo, repos.BankRepo),
		Category:   NewCategoryService(repos.CategoryRepo),
		Rule:       ruleService,
		Movement:   NewMovementService(repos.MovementRepo, repos.AccountRepo, repos.CategoryRepo, ruleService),
		Recurrence: NewRecurrenceService(repos.MovementRepo, cfg.RecurrenceMaxConcurrency),
		Dashboard:  NewDashboardService(repos.DashboardRepo),
	}
}
