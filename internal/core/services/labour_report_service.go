package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
	"github.com/shopkhata/shopkhata-backend/internal/platform/metrics"
)

type labourReportService struct {
	BaseService
	labourerRepo   portsrepo.LabourerRepositoryFacade
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
}

// NewLabourReportService creates the report reconstruction service.
func NewLabourReportService(repos portsrepo.RepositoryProvider) portssvc.LabourReportSvcFacade {
	return &labourReportService{
		labourerRepo:   repos.LabourerRepo,
		ledgerRepo:     repos.LedgerRepo,
		settlementRepo: repos.SettlementRepo,
	}
}

var _ portssvc.LabourReportSvcFacade = (*labourReportService)(nil)

func (s *labourReportService) GetReport(ctx context.Context, params dto.ReportParams) ([]domain.LabourReport, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveReport(time.Since(start))
	}()

	if params.SettlementID != nil {
		report, err := s.frozenReport(ctx, *params.SettlementID, params.LabourerID)
		if err != nil {
			return nil, err
		}
		return []domain.LabourReport{*report}, nil
	}

	var labourers []domain.Labourer
	if params.LabourerID != nil {
		labourer, err := s.labourerRepo.FindLabourerByID(ctx, *params.LabourerID)
		if err != nil {
			return nil, err
		}
		if labourer.IsDeleted {
			return nil, apperrors.ErrNotFound
		}
		labourers = []domain.Labourer{*labourer}
	} else {
		all, err := s.labourerRepo.ListLabourers(ctx)
		if err != nil {
			return nil, err
		}
		labourers = all
	}

	reports := make([]domain.LabourReport, 0, len(labourers))
	for i := range labourers {
		report, err := s.liveReport(ctx, &labourers[i], params.From, params.To)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

// liveReport reconstructs the labourer's current unsettled period with the
// current wage. The window opens the day after the latest settlement unless
// the caller passed an explicit From bound, which takes precedence.
func (s *labourReportService) liveReport(ctx context.Context, labourer *domain.Labourer, from, to *domain.CalendarDay) (*domain.LabourReport, error) {
	latest, err := s.settlementRepo.FindLatestSettlement(ctx, labourer.LabourerID)
	if err != nil {
		return nil, err
	}

	effectiveFrom := from
	var lastSettlementDate *domain.CalendarDay
	openingBalance := decimal.Zero
	if latest != nil {
		d := latest.SettlementDate
		lastSettlementDate = &d
		openingBalance = latest.OpeningBalanceForNext()
		if effectiveFrom == nil {
			floor := latest.SettlementDate.AddDays(1)
			effectiveFrom = &floor
		}
	}

	report := &domain.LabourReport{
		LabourerID:         labourer.LabourerID,
		Name:               labourer.Name,
		WageRate:           labourer.DefaultDailyWage,
		Mode:               domain.ReportLive,
		OpeningBalance:     openingBalance,
		LastSettlementDate: lastSettlementDate,
	}
	if err := s.fillWindow(ctx, report, effectiveFrom, to); err != nil {
		return nil, err
	}
	return report, nil
}

// frozenReport replays the exact window a settlement closed, using the wage
// frozen in the snapshot. The recomputed balance equals the snapshot's net
// balance as long as the frozen rows were left untouched.
func (s *labourReportService) frozenReport(ctx context.Context, settlementID string, labourerID *string) (*domain.LabourReport, error) {
	snap, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if labourerID != nil && *labourerID != snap.LabourerID {
		return nil, apperrors.ErrNotFound
	}

	// Deleted labourers keep their settlement history readable.
	labourer, err := s.labourerRepo.FindLabourerByID(ctx, snap.LabourerID)
	if err != nil {
		return nil, err
	}

	prev, err := s.settlementRepo.FindPreviousSettlement(ctx, snap.LabourerID, snap.SettlementDate)
	if err != nil {
		return nil, err
	}

	var from *domain.CalendarDay
	var lastSettlementDate *domain.CalendarDay
	if prev != nil {
		floor := prev.SettlementDate.AddDays(1)
		from = &floor
		d := prev.SettlementDate
		lastSettlementDate = &d
	}
	to := snap.SettlementDate

	report := &domain.LabourReport{
		LabourerID:         labourer.LabourerID,
		Name:               labourer.Name,
		WageRate:           snap.WageSnapshot,
		Mode:               domain.ReportFrozen,
		OpeningBalance:     snap.OpeningBalance,
		LastSettlementDate: lastSettlementDate,
	}
	if err := s.fillWindow(ctx, report, from, &to); err != nil {
		return nil, err
	}
	return report, nil
}

// fillWindow loads the window's ledger rows, groups them into ascending
// per-day records and derives the report totals.
func (s *labourReportService) fillWindow(ctx context.Context, report *domain.LabourReport, from, to *domain.CalendarDay) error {
	attendance, err := s.ledgerRepo.FindAttendanceInRange(ctx, report.LabourerID, from, to)
	if err != nil {
		return err
	}
	payments, err := s.ledgerRepo.FindPaymentsInRange(ctx, report.LabourerID, from, to)
	if err != nil {
		return err
	}

	byDay := map[string]*domain.DayRecord{}
	dayOf := func(d domain.CalendarDay) *domain.DayRecord {
		key := d.String()
		rec, ok := byDay[key]
		if !ok {
			rec = &domain.DayRecord{Day: d}
			byDay[key] = rec
		}
		return rec
	}
	for _, e := range attendance {
		dayOf(e.Day).Attendance = e.Value
	}
	for _, e := range payments {
		rec := dayOf(e.Day)
		rec.Amount = rec.Amount.Add(e.Amount)
	}

	records := make([]domain.DayRecord, 0, len(byDay))
	for _, rec := range byDay {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Day.Before(records[j].Day)
	})

	totalDays := decimal.Zero
	totalPaid := decimal.Zero
	for _, rec := range records {
		totalDays = totalDays.Add(rec.Attendance)
		totalPaid = totalPaid.Add(rec.Amount)
	}

	report.Records = records
	report.TotalDays = totalDays
	report.TotalSalary = totalDays.Mul(report.WageRate)
	report.TotalPaid = totalPaid
	report.Balance = report.OpeningBalance.Add(report.TotalSalary).Sub(totalPaid)
	return nil
}
