package domain

import "github.com/shopspring/decimal"

// SettlementSnapshot closes out a labourer's period of attendance and payments
// into a single net balance as of a cut-off date (inclusive). Once persisted it
// is never mutated or deleted through the engine's public contract; ledger rows
// dated on or before the latest snapshot are frozen.
type SettlementSnapshot struct {
	SettlementID    string          `json:"settlementID"`
	LabourerID      string          `json:"labourerID"`
	SettlementDate  CalendarDay     `json:"settlementDate"`
	TotalAttendance decimal.Decimal `json:"totalAttendance"`
	TotalPayable    decimal.Decimal `json:"totalPayable"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	NetBalance      decimal.Decimal `json:"netBalance"`
	WageSnapshot    decimal.Decimal `json:"wageSnapshot"` // daily wage frozen at settlement time
	IsCarryForward  bool            `json:"isCarryForward"`
	Note            string          `json:"note,omitempty"`
	AuditFields
}

// OpeningBalanceForNext returns the opening balance the snapshot hands to the
// period it bounds: its net balance when carried forward, zero when cleared.
func (s *SettlementSnapshot) OpeningBalanceForNext() decimal.Decimal {
	if s == nil || !s.IsCarryForward {
		return decimal.Zero
	}
	return s.NetBalance
}
