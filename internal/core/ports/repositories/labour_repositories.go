package repositories

import (
	"context"
	"time"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// LabourerRepositoryFacade persists labourer profiles. Deletion is always soft.
type LabourerRepositoryFacade interface {
	SaveLabourer(ctx context.Context, labourer domain.Labourer) error
	// FindLabourerByID returns apperrors.ErrNotFound when no such labourer exists.
	FindLabourerByID(ctx context.Context, labourerID string) (*domain.Labourer, error)
	// ListLabourers returns non-deleted labourers ordered by name ascending.
	ListLabourers(ctx context.Context) ([]domain.Labourer, error)
	UpdateLabourer(ctx context.Context, labourer domain.Labourer) error
	MarkLabourerDeleted(ctx context.Context, labourerID string, deletedBy string, deletedAt time.Time) error
}

// LedgerRepositoryFacade persists the two per-day ledger row kinds.
//
// Point lookups return (nil, nil) when no row exists for the key: an absent row
// is the ledger's representation of zero, not an error.
type LedgerRepositoryFacade interface {
	// FindAttendanceForDay returns every labourer's attendance row inside the day's UTC window.
	FindAttendanceForDay(ctx context.Context, day domain.CalendarDay) ([]domain.AttendanceEntry, error)
	// FindPaymentsForDay returns every labourer's payment rows inside the day's UTC window.
	FindPaymentsForDay(ctx context.Context, day domain.CalendarDay) ([]domain.PaymentEntry, error)

	FindAttendanceByLabourerAndDay(ctx context.Context, labourerID string, day domain.CalendarDay) (*domain.AttendanceEntry, error)
	FindPaymentsByLabourerAndDay(ctx context.Context, labourerID string, day domain.CalendarDay) ([]domain.PaymentEntry, error)

	// Range queries; a nil bound leaves that side of the window open.
	FindAttendanceInRange(ctx context.Context, labourerID string, from, to *domain.CalendarDay) ([]domain.AttendanceEntry, error)
	FindPaymentsInRange(ctx context.Context, labourerID string, from, to *domain.CalendarDay) ([]domain.PaymentEntry, error)

	// ApplyDailyChanges applies the whole batch inside a single database
	// transaction: either every change commits or none do.
	ApplyDailyChanges(ctx context.Context, changes []domain.DailyChange) error
}

// SettlementRepositoryFacade persists immutable settlement snapshots.
type SettlementRepositoryFacade interface {
	// SaveSettlement inserts the snapshot, re-checking inside its transaction
	// that no settlement at or after the new cut-off already exists for the
	// labourer; it returns apperrors.ErrConflict when one does.
	SaveSettlement(ctx context.Context, snapshot domain.SettlementSnapshot) error
	// FindSettlementByID returns apperrors.ErrNotFound when no such settlement exists.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.SettlementSnapshot, error)
	// FindLatestSettlement returns (nil, nil) for a labourer with no settlements.
	FindLatestSettlement(ctx context.Context, labourerID string) (*domain.SettlementSnapshot, error)
	// FindLatestSettlements returns the newest settlement per labourer, keyed by labourer ID.
	FindLatestSettlements(ctx context.Context) (map[string]domain.SettlementSnapshot, error)
	// FindPreviousSettlement returns the newest settlement strictly before the
	// given day, or (nil, nil) when the day's settlement is the labourer's first.
	FindPreviousSettlement(ctx context.Context, labourerID string, before domain.CalendarDay) (*domain.SettlementSnapshot, error)
	// ListSettlements returns the labourer's settlements ordered newest first.
	ListSettlements(ctx context.Context, labourerID string) ([]domain.SettlementSnapshot, error)
}

// CategoryRepositoryFacade resolves expense buckets by name.
type CategoryRepositoryFacade interface {
	// GetOrCreateCategory is idempotent behind the store's unique name
	// constraint; concurrent first-use creators converge on one row.
	GetOrCreateCategory(ctx context.Context, name string, creatorUserID string) (*domain.ExpenseCategory, error)
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	LabourerRepo   LabourerRepositoryFacade
	LedgerRepo     LedgerRepositoryFacade
	SettlementRepo SettlementRepositoryFacade
	CategoryRepo   CategoryRepositoryFacade
	UserRepo       UserRepositoryFacade
}
