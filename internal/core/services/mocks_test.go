package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
)

// --- Mock LabourerRepository ---
type MockLabourerRepository struct {
	mock.Mock
}

var _ portsrepo.LabourerRepositoryFacade = (*MockLabourerRepository)(nil)

func (m *MockLabourerRepository) SaveLabourer(ctx context.Context, labourer domain.Labourer) error {
	args := m.Called(ctx, labourer)
	return args.Error(0)
}

func (m *MockLabourerRepository) FindLabourerByID(ctx context.Context, labourerID string) (*domain.Labourer, error) {
	args := m.Called(ctx, labourerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Labourer), args.Error(1)
}

func (m *MockLabourerRepository) ListLabourers(ctx context.Context) ([]domain.Labourer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Labourer), args.Error(1)
}

func (m *MockLabourerRepository) UpdateLabourer(ctx context.Context, labourer domain.Labourer) error {
	args := m.Called(ctx, labourer)
	return args.Error(0)
}

func (m *MockLabourerRepository) MarkLabourerDeleted(ctx context.Context, labourerID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, labourerID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindAttendanceForDay(ctx context.Context, day domain.CalendarDay) ([]domain.AttendanceEntry, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindPaymentsForDay(ctx context.Context, day domain.CalendarDay) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindAttendanceByLabourerAndDay(ctx context.Context, labourerID string, day domain.CalendarDay) (*domain.AttendanceEntry, error) {
	args := m.Called(ctx, labourerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindPaymentsByLabourerAndDay(ctx context.Context, labourerID string, day domain.CalendarDay) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, labourerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindAttendanceInRange(ctx context.Context, labourerID string, from, to *domain.CalendarDay) ([]domain.AttendanceEntry, error) {
	args := m.Called(ctx, labourerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindPaymentsInRange(ctx context.Context, labourerID string, from, to *domain.CalendarDay) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, labourerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

func (m *MockLedgerRepository) ApplyDailyChanges(ctx context.Context, changes []domain.DailyChange) error {
	args := m.Called(ctx, changes)
	return args.Error(0)
}

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, snapshot domain.SettlementSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.SettlementSnapshot, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSnapshot), args.Error(1)
}

func (m *MockSettlementRepository) FindLatestSettlement(ctx context.Context, labourerID string) (*domain.SettlementSnapshot, error) {
	args := m.Called(ctx, labourerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSnapshot), args.Error(1)
}

func (m *MockSettlementRepository) FindLatestSettlements(ctx context.Context) (map[string]domain.SettlementSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.SettlementSnapshot), args.Error(1)
}

func (m *MockSettlementRepository) FindPreviousSettlement(ctx context.Context, labourerID string, before domain.CalendarDay) (*domain.SettlementSnapshot, error) {
	args := m.Called(ctx, labourerID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSnapshot), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlements(ctx context.Context, labourerID string) ([]domain.SettlementSnapshot, error) {
	args := m.Called(ctx, labourerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementSnapshot), args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) GetOrCreateCategory(ctx context.Context, name string, creatorUserID string) (*domain.ExpenseCategory, error) {
	args := m.Called(ctx, name, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseCategory), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock LabourReportService (as used by SettlementService) ---
type MockLabourReportService struct {
	mock.Mock
}

var _ portssvc.LabourReportSvcFacade = (*MockLabourReportService)(nil)

func (m *MockLabourReportService) GetReport(ctx context.Context, params dto.ReportParams) ([]domain.LabourReport, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LabourReport), args.Error(1)
}
