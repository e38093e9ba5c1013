package domain

import "github.com/shopspring/decimal"

// ReportMode names which wage-rate policy produced a report. Live reports
// recompute with the labourer's current wage; frozen reports replay a
// settlement's window with the wage snapshotted at settlement time.
type ReportMode string

const (
	ReportLive   ReportMode = "LIVE"
	ReportFrozen ReportMode = "FROZEN"
)

// DayRecord is one calendar day inside a report window: the day's attendance
// value and its summed payment amount.
type DayRecord struct {
	Day        CalendarDay     `json:"day"`
	Attendance decimal.Decimal `json:"attendance"`
	Amount     decimal.Decimal `json:"amount"`
}

// LabourReport is the reconstructed ledger slice for one labourer, either the
// current unsettled period (live) or a historical settlement window (frozen).
type LabourReport struct {
	LabourerID         string          `json:"labourerID"`
	Name               string          `json:"name"`
	WageRate           decimal.Decimal `json:"wageRate"`
	Mode               ReportMode      `json:"mode"`
	TotalDays          decimal.Decimal `json:"totalDays"`
	TotalSalary        decimal.Decimal `json:"totalSalary"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	Balance            decimal.Decimal `json:"balance"`
	LastSettlementDate *CalendarDay    `json:"lastSettlementDate"`
	Records            []DayRecord     `json:"records"`
}
