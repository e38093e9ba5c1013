package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// CreateSettlementRequest is the payload for POST /labour/:id/settle.
type CreateSettlementRequest struct {
	SettlementDate string `json:"settlementDate" binding:"required,calday"`
	Note           string `json:"note"`
	IsCarryForward bool   `json:"isCarryForward"`
}

// SettlementResponse is the wire shape of a settlement snapshot.
type SettlementResponse struct {
	ID              string          `json:"id"`
	LabourerID      string          `json:"labourerId"`
	SettlementDate  string          `json:"settlementDate"`
	TotalAttendance decimal.Decimal `json:"totalAttendance"`
	TotalPayable    decimal.Decimal `json:"totalPayable"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	NetBalance      decimal.Decimal `json:"netBalance"`
	WageSnapshot    decimal.Decimal `json:"wageSnapshot"`
	IsCarryForward  bool            `json:"isCarryForward"`
	Note            string          `json:"note,omitempty"`
}

// ToSettlementResponse converts a domain snapshot to its wire shape.
func ToSettlementResponse(s *domain.SettlementSnapshot) SettlementResponse {
	return SettlementResponse{
		ID:              s.SettlementID,
		LabourerID:      s.LabourerID,
		SettlementDate:  s.SettlementDate.String(),
		TotalAttendance: s.TotalAttendance,
		TotalPayable:    s.TotalPayable,
		TotalPaid:       s.TotalPaid,
		OpeningBalance:  s.OpeningBalance,
		NetBalance:      s.NetBalance,
		WageSnapshot:    s.WageSnapshot,
		IsCarryForward:  s.IsCarryForward,
		Note:            s.Note,
	}
}

// ToSettlementResponses converts a slice of snapshots, preserving order.
func ToSettlementResponses(snaps []domain.SettlementSnapshot) []SettlementResponse {
	responses := make([]SettlementResponse, len(snaps))
	for i := range snaps {
		responses[i] = ToSettlementResponse(&snaps[i])
	}
	return responses
}
