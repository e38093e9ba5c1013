package services

import (
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/platform/config"
)

// NewServiceContainer wires all application services. The daily ledger and
// settlement services share one per-labourer lock set so their writes
// serialize against each other.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	locks := NewLockSet()

	reportSvc := NewLabourReportService(repos)

	return &portssvc.ServiceContainer{
		Labourer:     NewLabourerService(repos.LabourerRepo),
		DailyLedger:  NewDailyLedgerService(repos, cfg.FrozenWritePolicy, locks),
		LabourReport: reportSvc,
		Settlement:   NewSettlementService(repos, reportSvc, locks),
		User:         NewUserService(repos.UserRepo),
	}
}
