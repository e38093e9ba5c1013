package services

import (
	"context"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
)

// LabourerSvcFacade is the thin CRUD surface over labourer profiles.
type LabourerSvcFacade interface {
	CreateLabourer(ctx context.Context, creatorUserID string, req dto.CreateLabourerRequest) (*domain.Labourer, error)
	GetLabourerByID(ctx context.Context, labourerID string) (*domain.Labourer, error)
	ListLabourers(ctx context.Context) ([]domain.Labourer, error)
	UpdateLabourer(ctx context.Context, editorUserID string, labourerID string, req dto.UpdateLabourerRequest) (*domain.Labourer, error)
	// DeleteLabourer soft-deletes; ledger rows stay attributable.
	DeleteLabourer(ctx context.Context, editorUserID string, labourerID string) error
}

// DailyLedgerSvcFacade is the daily-entry surface: merged per-day views and
// gated batch writes of attendance and payments.
type DailyLedgerSvcFacade interface {
	GetDailyView(ctx context.Context, day domain.CalendarDay) ([]domain.DailyLabourRow, error)
	// UpdateDailyView applies a batch of per-labourer rows for one day and
	// reports the outcome of every row. Rows dated inside a labourer's frozen
	// period are skipped or rejected per the configured policy, never written.
	UpdateDailyView(ctx context.Context, editorUserID string, day domain.CalendarDay, updates []dto.DailyUpdateItem) ([]dto.DailyUpdateResult, error)
}

// LabourReportSvcFacade reconstructs ledger windows: the current unsettled
// period (live) or the exact slice behind a historical settlement (frozen).
type LabourReportSvcFacade interface {
	GetReport(ctx context.Context, params dto.ReportParams) ([]domain.LabourReport, error)
}

// Statement export formats.
const (
	StatementFormatPDF  = "pdf"
	StatementFormatXLSX = "xlsx"
)

// SettlementSvcFacade closes periods into immutable snapshots and exposes the
// per-labourer settlement history.
type SettlementSvcFacade interface {
	CreateSettlement(ctx context.Context, editorUserID string, labourerID string, req dto.CreateSettlementRequest) (*domain.SettlementSnapshot, error)
	ListSettlements(ctx context.Context, labourerID string) ([]domain.SettlementSnapshot, error)
	// BuildStatement renders a settlement's frozen window as a downloadable
	// document; it returns the bytes and their content type.
	BuildStatement(ctx context.Context, labourerID string, settlementID string, format string) ([]byte, string, error)
}
