package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
	"github.com/shopkhata/shopkhata-backend/internal/platform/metrics"
	"github.com/shopkhata/shopkhata-backend/internal/utils/export"
)

type settlementService struct {
	BaseService
	labourerRepo   portsrepo.LabourerRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	reportSvc      portssvc.LabourReportSvcFacade
	locks          *LockSet
}

// NewSettlementService creates the settlement engine service.
func NewSettlementService(
	repos portsrepo.RepositoryProvider,
	reportSvc portssvc.LabourReportSvcFacade,
	locks *LockSet,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		labourerRepo:   repos.LabourerRepo,
		settlementRepo: repos.SettlementRepo,
		reportSvc:      reportSvc,
		locks:          locks,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// CreateSettlement closes the labourer's current period at the cut-off date
// into an immutable snapshot. Settlement dates are strictly increasing per
// labourer; a cut-off at or before the latest settlement is rejected.
func (s *settlementService) CreateSettlement(ctx context.Context, editorUserID string, labourerID string, req dto.CreateSettlementRequest) (*domain.SettlementSnapshot, error) {
	day, err := domain.ParseCalendarDay(req.SettlementDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	labourer, err := s.labourerRepo.FindLabourerByID(ctx, labourerID)
	if err != nil {
		return nil, err
	}
	if labourer.IsDeleted {
		return nil, apperrors.ErrNotFound
	}

	// Serialize against concurrent settlements and daily writes for this
	// labourer, so the closed window cannot shift under us.
	held := s.locks.lock(labourerID)
	defer held.Unlock()

	latest, err := s.settlementRepo.FindLatestSettlement(ctx, labourerID)
	if err != nil {
		return nil, err
	}
	if latest != nil && !day.After(latest.SettlementDate) {
		return nil, fmt.Errorf("%w: settlement date %s is not after latest settlement %s",
			apperrors.ErrConflict, day, latest.SettlementDate)
	}

	reports, err := s.reportSvc.GetReport(ctx, dto.ReportParams{
		LabourerID: &labourerID,
		To:         &day,
	})
	if err != nil {
		return nil, err
	}
	report := &reports[0]
	if len(report.Records) == 0 && report.OpeningBalance.IsZero() {
		return nil, fmt.Errorf("%w: nothing to settle on or before %s", apperrors.ErrPreconditionFailed, day)
	}

	now := time.Now().UTC()
	snapshot := domain.SettlementSnapshot{
		SettlementID:    uuid.NewString(),
		LabourerID:      labourerID,
		SettlementDate:  day,
		TotalAttendance: report.TotalDays,
		TotalPayable:    report.TotalSalary,
		TotalPaid:       report.TotalPaid,
		OpeningBalance:  report.OpeningBalance,
		NetBalance:      report.Balance,
		WageSnapshot:    labourer.DefaultDailyWage,
		IsCarryForward:  req.IsCarryForward,
		Note:            req.Note,
		AuditFields:     domain.NewAuditFields(editorUserID, now),
	}

	if err := s.settlementRepo.SaveSettlement(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "failed to save settlement",
			slog.String("labourer_id", labourerID),
			slog.String("settlement_date", day.String()))
		return nil, err
	}

	metrics.SettlementCreated()
	s.LogInfo(ctx, "settlement created",
		slog.String("settlement_id", snapshot.SettlementID),
		slog.String("labourer_id", labourerID),
		slog.String("settlement_date", day.String()),
		slog.String("net_balance", snapshot.NetBalance.String()),
		slog.Bool("carry_forward", snapshot.IsCarryForward))
	return &snapshot, nil
}

// ListSettlements returns the labourer's settlement history, newest first.
// Soft-deleted labourers keep their history readable.
func (s *settlementService) ListSettlements(ctx context.Context, labourerID string) ([]domain.SettlementSnapshot, error) {
	if _, err := s.labourerRepo.FindLabourerByID(ctx, labourerID); err != nil {
		return nil, err
	}
	return s.settlementRepo.ListSettlements(ctx, labourerID)
}

// BuildStatement renders a settlement's frozen window as a downloadable PDF or
// XLSX statement.
func (s *settlementService) BuildStatement(ctx context.Context, labourerID string, settlementID string, format string) ([]byte, string, error) {
	snap, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, "", err
	}
	if snap.LabourerID != labourerID {
		return nil, "", apperrors.ErrNotFound
	}
	labourer, err := s.labourerRepo.FindLabourerByID(ctx, labourerID)
	if err != nil {
		return nil, "", err
	}

	reports, err := s.reportSvc.GetReport(ctx, dto.ReportParams{SettlementID: &settlementID})
	if err != nil {
		return nil, "", err
	}
	report := &reports[0]

	var data []byte
	var contentType string
	switch format {
	case portssvc.StatementFormatPDF:
		data, err = export.BuildSettlementPDF(labourer, snap, report)
		contentType = "application/pdf"
	case portssvc.StatementFormatXLSX:
		data, err = export.BuildSettlementXLSX(labourer, snap, report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, "", fmt.Errorf("%w: unsupported statement format %q", apperrors.ErrValidation, format)
	}
	if err != nil {
		s.LogError(ctx, err, "failed to build statement",
			slog.String("settlement_id", settlementID),
			slog.String("format", format))
		return nil, "", err
	}

	metrics.StatementExported(format)
	return data, contentType, nil
}
