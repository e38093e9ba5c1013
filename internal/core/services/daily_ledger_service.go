package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
	"github.com/shopkhata/shopkhata-backend/internal/platform/config"
	"github.com/shopkhata/shopkhata-backend/internal/platform/metrics"
)

type dailyLedgerService struct {
	BaseService
	labourerRepo   portsrepo.LabourerRepositoryFacade
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	categoryRepo   portsrepo.CategoryRepositoryFacade

	frozenWritePolicy string
	locks             *LockSet
}

// NewDailyLedgerService creates the daily attendance/payment service.
func NewDailyLedgerService(
	repos portsrepo.RepositoryProvider,
	frozenWritePolicy string,
	locks *LockSet,
) portssvc.DailyLedgerSvcFacade {
	return &dailyLedgerService{
		labourerRepo:      repos.LabourerRepo,
		ledgerRepo:        repos.LedgerRepo,
		settlementRepo:    repos.SettlementRepo,
		categoryRepo:      repos.CategoryRepo,
		frozenWritePolicy: frozenWritePolicy,
		locks:             locks,
	}
}

var _ portssvc.DailyLedgerSvcFacade = (*dailyLedgerService)(nil)

// GetDailyView merges the labourer roster with the day's attendance and
// payment rows. Every non-deleted labourer appears exactly once, with zeroes
// where the ledger holds no row.
func (s *dailyLedgerService) GetDailyView(ctx context.Context, day domain.CalendarDay) ([]domain.DailyLabourRow, error) {
	labourers, err := s.labourerRepo.ListLabourers(ctx)
	if err != nil {
		return nil, err
	}

	attendance, err := s.ledgerRepo.FindAttendanceForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	payments, err := s.ledgerRepo.FindPaymentsForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	latestSettlements, err := s.settlementRepo.FindLatestSettlements(ctx)
	if err != nil {
		return nil, err
	}

	attendanceByID := make(map[string]decimal.Decimal, len(attendance))
	for _, e := range attendance {
		attendanceByID[e.LabourerID] = e.Value
	}
	paidByID := make(map[string]decimal.Decimal, len(payments))
	for _, e := range payments {
		paidByID[e.LabourerID] = paidByID[e.LabourerID].Add(e.Amount)
	}

	rows := make([]domain.DailyLabourRow, 0, len(labourers))
	for i := range labourers {
		l := &labourers[i]
		row := domain.DailyLabourRow{
			LabourerID:       l.LabourerID,
			Name:             l.Name,
			DefaultDailyWage: l.DefaultDailyWage,
			Attendance:       attendanceByID[l.LabourerID],
			AmountPaid:       paidByID[l.LabourerID],
		}
		if snap, ok := latestSettlements[l.LabourerID]; ok {
			d := snap.SettlementDate
			row.LastSettlementDate = &d
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UpdateDailyView validates and applies a batch of per-labourer rows for one
// day. The whole batch is validated before anything is written; applied rows
// are persisted in a single store transaction; rows inside a frozen period are
// skipped or rejected per the configured policy.
func (s *dailyLedgerService) UpdateDailyView(ctx context.Context, editorUserID string, day domain.CalendarDay, updates []dto.DailyUpdateItem) ([]dto.DailyUpdateResult, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: updates must not be empty", apperrors.ErrValidation)
	}

	labourers, err := s.labourerRepo.ListLabourers(ctx)
	if err != nil {
		return nil, err
	}
	roster := make(map[string]*domain.Labourer, len(labourers))
	for i := range labourers {
		roster[labourers[i].LabourerID] = &labourers[i]
	}

	// Validate everything before touching the store.
	seen := make(map[string]bool, len(updates))
	for _, item := range updates {
		if _, ok := roster[item.ContactID]; !ok {
			return nil, fmt.Errorf("%w: unknown labourer %s", apperrors.ErrValidation, item.ContactID)
		}
		if seen[item.ContactID] {
			return nil, fmt.Errorf("%w: duplicate row for labourer %s", apperrors.ErrValidation, item.ContactID)
		}
		seen[item.ContactID] = true
		if !domain.IsValidAttendance(item.Attendance) {
			return nil, fmt.Errorf("%w: attendance for labourer %s must be 0, 0.5 or 1", apperrors.ErrValidation, item.ContactID)
		}
		if item.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount for labourer %s must not be negative", apperrors.ErrValidation, item.ContactID)
		}
	}

	// Lock the touched labourers in ID order so concurrent batches and
	// settlement creation interleave deterministically.
	ids := make([]string, 0, len(updates))
	for _, item := range updates {
		ids = append(ids, item.ContactID)
	}
	sort.Strings(ids)
	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		held = append(held, s.locks.lock(id))
	}
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}()

	now := time.Now().UTC()
	results := make([]dto.DailyUpdateResult, 0, len(updates))
	changes := make([]domain.DailyChange, 0, len(updates)*2)
	var labourCategory *domain.ExpenseCategory

	for _, item := range updates {
		latest, err := s.settlementRepo.FindLatestSettlement(ctx, item.ContactID)
		if err != nil {
			return nil, err
		}
		if latest != nil && !day.After(latest.SettlementDate) {
			if s.frozenWritePolicy == config.FrozenWriteReject {
				return nil, fmt.Errorf("%w: %s is settled through %s",
					apperrors.ErrImmutablePeriod, item.ContactID, latest.SettlementDate)
			}
			s.LogInfo(ctx, "daily row skipped: frozen period",
				slog.String("labourer_id", item.ContactID),
				slog.String("day", day.String()),
				slog.String("settled_through", latest.SettlementDate.String()))
			metrics.DailyRowProcessed(dto.DailyRowSkipped)
			results = append(results, dto.DailyUpdateResult{
				ContactID: item.ContactID,
				Status:    dto.DailyRowSkipped,
				Reason:    fmt.Sprintf("period settled through %s", latest.SettlementDate),
			})
			continue
		}

		rowChanges, err := s.planRowChanges(ctx, editorUserID, day, item, now, &labourCategory)
		if err != nil {
			return nil, err
		}
		changes = append(changes, rowChanges...)
		metrics.DailyRowProcessed(dto.DailyRowApplied)
		results = append(results, dto.DailyUpdateResult{
			ContactID: item.ContactID,
			Status:    dto.DailyRowApplied,
		})
	}

	if err := s.ledgerRepo.ApplyDailyChanges(ctx, changes); err != nil {
		s.LogError(ctx, err, "failed to apply daily changes", slog.String("day", day.String()))
		return nil, err
	}

	s.LogInfo(ctx, "daily batch applied",
		slog.String("day", day.String()),
		slog.Int("rows", len(updates)),
		slog.Int("changes", len(changes)))
	return results, nil
}

// planRowChanges diffs one submitted row against the stored state and emits
// the minimal set of changes. Equal values produce no write, so resubmitting
// an unchanged day is a no-op.
func (s *dailyLedgerService) planRowChanges(
	ctx context.Context,
	editorUserID string,
	day domain.CalendarDay,
	item dto.DailyUpdateItem,
	now time.Time,
	labourCategory **domain.ExpenseCategory,
) ([]domain.DailyChange, error) {
	changes := make([]domain.DailyChange, 0, 2)

	existing, err := s.ledgerRepo.FindAttendanceByLabourerAndDay(ctx, item.ContactID, day)
	if err != nil {
		return nil, err
	}
	switch {
	case item.Attendance.IsZero():
		// Zero attendance is represented by the absence of a row.
		if existing != nil {
			changes = append(changes, domain.DailyChange{
				Kind:       domain.ChangeAttendance,
				LabourerID: item.ContactID,
				Day:        day,
			})
		}
	case existing != nil && existing.Value.Equal(item.Attendance):
		// Unchanged, nothing to write.
	default:
		entry := domain.AttendanceEntry{
			AttendanceID: uuid.NewString(),
			LabourerID:   item.ContactID,
			Day:          day,
			Value:        item.Attendance,
			AuditFields:  domain.NewAuditFields(editorUserID, now),
		}
		if existing != nil {
			entry.AttendanceID = existing.AttendanceID
			entry.AuditFields = existing.AuditFields
			entry.Touch(editorUserID, now)
		}
		changes = append(changes, domain.DailyChange{
			Kind:       domain.ChangeAttendance,
			Upsert:     true,
			LabourerID: item.ContactID,
			Day:        day,
			Attendance: &entry,
		})
	}

	payments, err := s.ledgerRepo.FindPaymentsByLabourerAndDay(ctx, item.ContactID, day)
	if err != nil {
		return nil, err
	}
	currentPaid := decimal.Zero
	for _, p := range payments {
		currentPaid = currentPaid.Add(p.Amount)
	}
	switch {
	case item.Amount.IsZero():
		if len(payments) > 0 {
			changes = append(changes, domain.DailyChange{
				Kind:       domain.ChangePayment,
				LabourerID: item.ContactID,
				Day:        day,
			})
		}
	case currentPaid.Equal(item.Amount):
		// Unchanged, nothing to write.
	default:
		if *labourCategory == nil {
			cat, err := s.categoryRepo.GetOrCreateCategory(ctx, domain.LabourCategoryName, editorUserID)
			if err != nil {
				return nil, err
			}
			*labourCategory = cat
		}
		entry := domain.PaymentEntry{
			PaymentID:   uuid.NewString(),
			LabourerID:  item.ContactID,
			Day:         day,
			Amount:      item.Amount,
			Description: domain.DefaultPaymentDescription,
			CategoryID:  (*labourCategory).CategoryID,
			AuditFields: domain.NewAuditFields(editorUserID, now),
		}
		if len(payments) == 1 {
			entry.PaymentID = payments[0].PaymentID
			entry.Description = payments[0].Description
			entry.AuditFields = payments[0].AuditFields
			entry.Touch(editorUserID, now)
		} else if len(payments) > 1 {
			// Collapse multiple rows into one; the delete runs before the
			// insert inside the same transaction.
			changes = append(changes, domain.DailyChange{
				Kind:       domain.ChangePayment,
				LabourerID: item.ContactID,
				Day:        day,
			})
		}
		changes = append(changes, domain.DailyChange{
			Kind:       domain.ChangePayment,
			Upsert:     true,
			LabourerID: item.ContactID,
			Day:        day,
			Payment:    &entry,
		})
	}

	return changes, nil
}
