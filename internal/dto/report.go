package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// ReportParams are the resolved query parameters of GET /labour/report.
// SettlementID selects history mode; otherwise the report is live.
type ReportParams struct {
	From         *domain.CalendarDay
	To           *domain.CalendarDay
	LabourerID   *string
	SettlementID *string
}

// ReportDayRecord is one calendar day in a report response.
type ReportDayRecord struct {
	Date       string          `json:"date"`
	Attendance decimal.Decimal `json:"attendance"`
	Amount     decimal.Decimal `json:"amount"`
}

// LabourReportResponse is one labourer's report in GET /labour/report.
type LabourReportResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Salary             decimal.Decimal   `json:"salary"`
	Mode               string            `json:"mode"`
	TotalDays          decimal.Decimal   `json:"totalDays"`
	TotalSalary        decimal.Decimal   `json:"totalSalary"`
	TotalPaid          decimal.Decimal   `json:"totalPaid"`
	Balance            decimal.Decimal   `json:"balance"`
	OpeningBalance     decimal.Decimal   `json:"openingBalance"`
	LastSettlementDate *string           `json:"lastSettlementDate"`
	Records            []ReportDayRecord `json:"records"`
}

// ToLabourReportResponse converts a domain report to its wire shape.
func ToLabourReportResponse(r *domain.LabourReport) LabourReportResponse {
	resp := LabourReportResponse{
		ID:             r.LabourerID,
		Name:           r.Name,
		Salary:         r.WageRate,
		Mode:           string(r.Mode),
		TotalDays:      r.TotalDays,
		TotalSalary:    r.TotalSalary,
		TotalPaid:      r.TotalPaid,
		Balance:        r.Balance,
		OpeningBalance: r.OpeningBalance,
		Records:        make([]ReportDayRecord, len(r.Records)),
	}
	if r.LastSettlementDate != nil {
		s := r.LastSettlementDate.String()
		resp.LastSettlementDate = &s
	}
	for i, rec := range r.Records {
		resp.Records[i] = ReportDayRecord{
			Date:       rec.Day.String(),
			Attendance: rec.Attendance,
			Amount:     rec.Amount,
		}
	}
	return resp
}
