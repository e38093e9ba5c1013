package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// CreateLabourerRequest is the payload for POST /labour.
type CreateLabourerRequest struct {
	Name             string          `json:"name" binding:"required"`
	DefaultDailyWage decimal.Decimal `json:"defaultDailyWage" binding:"required"`
}

// UpdateLabourerRequest is the payload for PUT /labour/:id. Nil fields are left unchanged.
type UpdateLabourerRequest struct {
	Name             *string          `json:"name"`
	DefaultDailyWage *decimal.Decimal `json:"defaultDailyWage"`
}

// LabourerResponse is the wire shape of a labourer profile.
type LabourerResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	DefaultDailyWage decimal.Decimal `json:"defaultDailyWage"`
}

// ToLabourerResponse converts a domain.Labourer to its wire shape.
func ToLabourerResponse(l *domain.Labourer) LabourerResponse {
	return LabourerResponse{
		ID:               l.LabourerID,
		Name:             l.Name,
		DefaultDailyWage: l.DefaultDailyWage,
	}
}

// DailyViewRow is one row of GET /labour/daily.
type DailyViewRow struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	DefaultDailyWage   decimal.Decimal `json:"defaultDailyWage"`
	Attendance         decimal.Decimal `json:"attendance"`
	Amount             decimal.Decimal `json:"amount"`
	LastSettlementDate *string         `json:"lastSettlementDate"`
}

// ToDailyViewRow converts a merged domain row to its wire shape.
func ToDailyViewRow(r *domain.DailyLabourRow) DailyViewRow {
	row := DailyViewRow{
		ID:               r.LabourerID,
		Name:             r.Name,
		DefaultDailyWage: r.DefaultDailyWage,
		Attendance:       r.Attendance,
		Amount:           r.AmountPaid,
	}
	if r.LastSettlementDate != nil {
		s := r.LastSettlementDate.String()
		row.LastSettlementDate = &s
	}
	return row
}

// DailyUpdateItem is one labourer's submitted attendance/payment for a day.
// The contactId field name is a wire holdover; it carries the labourer ID.
type DailyUpdateItem struct {
	ContactID  string          `json:"contactId" binding:"required"`
	Attendance decimal.Decimal `json:"attendance"`
	Amount     decimal.Decimal `json:"amount"`
}

// UpdateDailyRequest is the payload for POST /labour/daily.
type UpdateDailyRequest struct {
	Date    string            `json:"date" binding:"required,calday"`
	Updates []DailyUpdateItem `json:"updates" binding:"required,min=1,dive"`
}

// Daily update row outcomes.
const (
	DailyRowApplied = "applied"
	DailyRowSkipped = "skipped"
)

// DailyUpdateResult reports the outcome of one submitted row, so callers can
// detect frozen-period conflicts the source system swallowed.
type DailyUpdateResult struct {
	ContactID string `json:"contactId"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// UpdateDailyResponse is the response of POST /labour/daily.
type UpdateDailyResponse struct {
	Success bool                `json:"success"`
	Results []DailyUpdateResult `json:"results"`
}
