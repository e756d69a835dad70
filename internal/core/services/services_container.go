package services

import (
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/events"
	"github.com/mkamgno/ohada_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since the engine and the period workflow record to it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.EntryRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, repos.EntryRepo, container.Audit)
	container.Template = NewTemplateService(repos.TemplateRepo, container.Account, container.Journal)
	container.Source = NewSourceService(repos.SourceRepo)

	container.Posting = NewPostingService(
		repos.EntryRepo,
		container.Account,
		container.Journal,
		container.Period,
		container.Source,
		container.Template,
		container.Audit,
		publisher,
		GenerationDefaults{
			ReceivableAccount: cfg.ReceivableAccount,
			PayableAccount:    cfg.PayableAccount,
			VATAccount:        cfg.VATAccount,
		},
	)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.PostingSvcFacade  = (*postingService)(nil)
	_ portssvc.TemplateSvcFacade = (*templateService)(nil)
)
