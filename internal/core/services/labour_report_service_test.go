package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/core/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
)

type LabourReportServiceTestSuite struct {
	suite.Suite
	mockLabourerRepo   *MockLabourerRepository
	mockLedgerRepo     *MockLedgerRepository
	mockSettlementRepo *MockSettlementRepository
	service            portssvc.LabourReportSvcFacade

	ravi domain.Labourer
}

func (s *LabourReportServiceTestSuite) SetupTest() {
	s.mockLabourerRepo = new(MockLabourerRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockSettlementRepo = new(MockSettlementRepository)
	s.service = services.NewLabourReportService(portsrepo.RepositoryProvider{
		LabourerRepo:   s.mockLabourerRepo,
		LedgerRepo:     s.mockLedgerRepo,
		SettlementRepo: s.mockSettlementRepo,
	})

	s.ravi = domain.Labourer{
		LabourerID:       uuid.NewString(),
		Name:             "Ravi",
		DefaultDailyWage: decimal.NewFromInt(500),
	}
}

func day(s string) domain.CalendarDay {
	d, err := domain.ParseCalendarDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (s *LabourReportServiceTestSuite) TestGetReport_LiveNoSettlement() {
	ctx := context.Background()
	s.mockLabourerRepo.On("FindLabourerByID", ctx, s.ravi.LabourerID).Return(&s.ravi, nil).Once()
	s.mockSettlementRepo.On("FindLatestSettlement", ctx, s.ravi.LabourerID).Return(nil, nil).Once()

	// Two full days, one half day, two payments across the window.
	s.mockLedgerRepo.On("FindAttendanceInRange", ctx, s.ravi.LabourerID, (*domain.CalendarDay)(nil), (*domain.CalendarDay)(nil)).
		Return([]domain.AttendanceEntry{
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-01"), Value: decimal.NewFromInt(1)},
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-02"), Value: decimal.NewFromInt(1)},
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-03"), Value: decimal.NewFromFloat(0.5)},
		}, nil).Once()
	s.mockLedgerRepo.On("FindPaymentsInRange", ctx, s.ravi.LabourerID, (*domain.CalendarDay)(nil), (*domain.CalendarDay)(nil)).
		Return([]domain.PaymentEntry{
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-02"), Amount: decimal.NewFromInt(300)},
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-03"), Amount: decimal.NewFromInt(200)},
		}, nil).Once()

	reports, err := s.service.GetReport(ctx, dto.ReportParams{LabourerID: &s.ravi.LabourerID})

	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	r := reports[0]

	s.Equal(domain.ReportLive, r.Mode)
	s.True(r.WageRate.Equal(decimal.NewFromInt(500)))
	s.True(r.TotalDays.Equal(decimal.NewFromFloat(2.5)))
	s.True(r.TotalSalary.Equal(decimal.NewFromInt(1250)))
	s.True(r.TotalPaid.Equal(decimal.NewFromInt(500)))
	s.True(r.OpeningBalance.IsZero())
	s.True(r.Balance.Equal(decimal.NewFromInt(750)))
	s.Nil(r.LastSettlementDate)

	s.Require().Len(r.Records, 3)
	s.Equal("2025-03-01", r.Records[0].Day.String())
	s.Equal("2025-03-03", r.Records[2].Day.String())
	s.True(r.Records[2].Attendance.Equal(decimal.NewFromFloat(0.5)))
	s.True(r.Records[2].Amount.Equal(decimal.NewFromInt(200)))
}

func (s *LabourReportServiceTestSuite) TestGetReport_LiveWindowStartsAfterLatestSettlement() {
	ctx := context.Background()
	latest := &domain.SettlementSnapshot{
		LabourerID:     s.ravi.LabourerID,
		SettlementDate: day("2025-03-05"),
		NetBalance:     decimal.NewFromInt(750),
		IsCarryForward: true,
	}
	s.mockLabourerRepo.On("FindLabourerByID", ctx, s.ravi.LabourerID).Return(&s.ravi, nil).Once()
	s.mockSettlementRepo.On("FindLatestSettlement", ctx, s.ravi.LabourerID).Return(latest, nil).Once()

	expectedFrom := day("2025-03-06")
	s.mockLedgerRepo.On("FindAttendanceInRange", ctx, s.ravi.LabourerID, &expectedFrom, (*domain.CalendarDay)(nil)).
		Return([]domain.AttendanceEntry{
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-06"), Value: decimal.NewFromInt(1)},
		}, nil).Once()
	s.mockLedgerRepo.On("FindPaymentsInRange", ctx, s.ravi.LabourerID, &expectedFrom, (*domain.CalendarDay)(nil)).
		Return([]domain.PaymentEntry{}, nil).Once()

	reports, err := s.service.GetReport(ctx, dto.ReportParams{LabourerID: &s.ravi.LabourerID})

	s.Require().NoError(err)
	r := reports[0]
	s.True(r.OpeningBalance.Equal(decimal.NewFromInt(750)), "carry-forward settlement seeds the opening balance")
	s.True(r.Balance.Equal(decimal.NewFromInt(1250)), "opening 750 + one day at 500")
	s.Require().NotNil(r.LastSettlementDate)
	s.Equal("2025-03-05", r.LastSettlementDate.String())
}

func (s *LabourReportServiceTestSuite) TestGetReport_LiveExplicitFromOverridesSettlementBound() {
	ctx := context.Background()
	latest := &domain.SettlementSnapshot{
		LabourerID:     s.ravi.LabourerID,
		SettlementDate: day("2025-03-05"),
		NetBalance:     decimal.NewFromInt(750),
		IsCarryForward: true,
	}
	s.mockLabourerRepo.On("FindLabourerByID", ctx, s.ravi.LabourerID).Return(&s.ravi, nil).Once()
	s.mockSettlementRepo.On("FindLatestSettlement", ctx, s.ravi.LabourerID).Return(latest, nil).Once()

	requestedFrom := day("2025-03-01")
	s.mockLedgerRepo.On("FindAttendanceInRange", ctx, s.ravi.LabourerID, &requestedFrom, (*domain.CalendarDay)(nil)).
		Return([]domain.AttendanceEntry{}, nil).Once()
	s.mockLedgerRepo.On("FindPaymentsInRange", ctx, s.ravi.LabourerID, &requestedFrom, (*domain.CalendarDay)(nil)).
		Return([]domain.PaymentEntry{}, nil).Once()

	_, err := s.service.GetReport(ctx, dto.ReportParams{LabourerID: &s.ravi.LabourerID, From: &requestedFrom})

	s.Require().NoError(err)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LabourReportServiceTestSuite) TestGetReport_LiveClearedSettlementZeroOpening() {
	ctx := context.Background()
	latest := &domain.SettlementSnapshot{
		LabourerID:     s.ravi.LabourerID,
		SettlementDate: day("2025-03-05"),
		NetBalance:     decimal.NewFromInt(750),
		IsCarryForward: false,
	}
	s.mockLabourerRepo.On("FindLabourerByID", ctx, s.ravi.LabourerID).Return(&s.ravi, nil).Once()
	s.mockSettlementRepo.On("FindLatestSettlement", ctx, s.ravi.LabourerID).Return(latest, nil).Once()
	s.mockLedgerRepo.On("FindAttendanceInRange", ctx, s.ravi.LabourerID, mock.Anything, mock.Anything).
		Return([]domain.AttendanceEntry{}, nil).Once()
	s.mockLedgerRepo.On("FindPaymentsInRange", ctx, s.ravi.LabourerID, mock.Anything, mock.Anything).
		Return([]domain.PaymentEntry{}, nil).Once()

	reports, err := s.service.GetReport(ctx, dto.ReportParams{LabourerID: &s.ravi.LabourerID})

	s.Require().NoError(err)
	r := reports[0]
	s.True(r.OpeningBalance.IsZero(), "cleared settlement hands zero forward")
	s.True(r.Balance.IsZero())
	s.True(r.TotalDays.IsZero())
	s.Empty(r.Records)
}

func (s *LabourReportServiceTestSuite) TestGetReport_FrozenReplaysSettlementWindow() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	snap := &domain.SettlementSnapshot{
		SettlementID:    settlementID,
		LabourerID:      s.ravi.LabourerID,
		SettlementDate:  day("2025-03-10"),
		OpeningBalance:  decimal.NewFromInt(100),
		WageSnapshot:    decimal.NewFromInt(450), // wage at settlement time, not current
		NetBalance:      decimal.NewFromInt(650),
		TotalAttendance: decimal.NewFromInt(2),
	}
	prev := &domain.SettlementSnapshot{
		LabourerID:     s.ravi.LabourerID,
		SettlementDate: day("2025-03-05"),
	}
	s.mockSettlementRepo.On("FindSettlementByID", ctx, settlementID).Return(snap, nil).Once()
	s.mockLabourerRepo.On("FindLabourerByID", ctx, s.ravi.LabourerID).Return(&s.ravi, nil).Once()
	s.mockSettlementRepo.On("FindPreviousSettlement", ctx, s.ravi.LabourerID, snap.SettlementDate).Return(prev, nil).Once()

	expectedFrom := day("2025-03-06")
	expectedTo := day("2025-03-10")
	s.mockLedgerRepo.On("FindAttendanceInRange", ctx, s.ravi.LabourerID, &expectedFrom, &expectedTo).
		Return([]domain.AttendanceEntry{
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-07"), Value: decimal.NewFromInt(1)},
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-08"), Value: decimal.NewFromInt(1)},
		}, nil).Once()
	s.mockLedgerRepo.On("FindPaymentsInRange", ctx, s.ravi.LabourerID, &expectedFrom, &expectedTo).
		Return([]domain.PaymentEntry{
			{LabourerID: s.ravi.LabourerID, Day: day("2025-03-08"), Amount: decimal.NewFromInt(350)},
		}, nil).Once()

	reports, err := s.service.GetReport(ctx, dto.ReportParams{SettlementID: &settlementID})

	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	r := reports[0]

	s.Equal(domain.ReportFrozen, r.Mode)
	s.True(r.WageRate.Equal(decimal.NewFromInt(450)), "frozen report uses the snapshotted wage")
	s.True(r.TotalDays.Equal(decimal.NewFromInt(2)))
	s.True(r.TotalSalary.Equal(decimal.NewFromInt(900)))
	s.True(r.TotalPaid.Equal(decimal.NewFromInt(350)))
	s.True(r.OpeningBalance.Equal(decimal.NewFromInt(100)))
	// 100 + 900 - 350 reproduces the snapshot's net balance exactly.
	s.True(r.Balance.Equal(snap.NetBalance))
	s.Require().NotNil(r.LastSettlementDate)
	s.Equal("2025-03-05", r.LastSettlementDate.String())
}

func (s *LabourReportServiceTestSuite) TestGetReport_FrozenLabourerMismatch() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	otherID := uuid.NewString()
	snap := &domain.SettlementSnapshot{
		SettlementID:   settlementID,
		LabourerID:     s.ravi.LabourerID,
		SettlementDate: day("2025-03-10"),
	}
	s.mockSettlementRepo.On("FindSettlementByID", ctx, settlementID).Return(snap, nil).Once()

	_, err := s.service.GetReport(ctx, dto.ReportParams{SettlementID: &settlementID, LabourerID: &otherID})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LabourReportServiceTestSuite) TestGetReport_AllLabourersWhenNoFilter() {
	ctx := context.Background()
	shyam := domain.Labourer{
		LabourerID:       uuid.NewString(),
		Name:             "Shyam",
		DefaultDailyWage: decimal.NewFromInt(400),
	}
	s.mockLabourerRepo.On("ListLabourers", ctx).Return([]domain.Labourer{s.ravi, shyam}, nil).Once()
	s.mockSettlementRepo.On("FindLatestSettlement", ctx, mock.Anything).Return(nil, nil).Twice()
	s.mockLedgerRepo.On("FindAttendanceInRange", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.AttendanceEntry{}, nil).Twice()
	s.mockLedgerRepo.On("FindPaymentsInRange", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PaymentEntry{}, nil).Twice()

	reports, err := s.service.GetReport(ctx, dto.ReportParams{})

	s.Require().NoError(err)
	s.Require().Len(reports, 2)
	s.Equal("Ravi", reports[0].Name)
	s.Equal("Shyam", reports[1].Name)
	s.True(reports[0].Balance.IsZero())
	s.Empty(reports[0].Records)
}

func TestLabourReportService(t *testing.T) {
	suite.Run(t, new(LabourReportServiceTestSuite))
}
