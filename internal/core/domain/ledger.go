package domain

import "github.com/shopspring/decimal"

// LabourCategoryName is the expense bucket all labour payments are tagged with.
const LabourCategoryName = "Labour"

// DefaultPaymentDescription is used when a daily payment is written without one.
const DefaultPaymentDescription = "Labour payment"

// AttendanceValues are the only presence fractions the ledger accepts.
var AttendanceValues = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.5),
	decimal.NewFromInt(1),
}

// IsValidAttendance reports whether v is one of 0, 0.5 or 1.
func IsValidAttendance(v decimal.Decimal) bool {
	for _, allowed := range AttendanceValues {
		if v.Equal(allowed) {
			return true
		}
	}
	return false
}

// AttendanceEntry records the fraction of a workday a labourer was present.
// The store never holds explicit zero rows; writing 0 deletes the day's row.
type AttendanceEntry struct {
	AttendanceID string          `json:"attendanceID"`
	LabourerID   string          `json:"labourerID"`
	Day          CalendarDay     `json:"day"`
	Value        decimal.Decimal `json:"value"` // 0.5 or 1
	AuditFields
}

// PaymentEntry records a wage amount paid to a labourer on a day, modelled as a
// category-tagged expense. The store permits multiple rows per day; the daily
// aggregator works on the sum.
type PaymentEntry struct {
	PaymentID   string          `json:"paymentID"`
	LabourerID  string          `json:"labourerID"`
	Day         CalendarDay     `json:"day"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryID"`
	AuditFields
}

// ExpenseCategory is a named expense bucket; the "Labour" bucket is created on
// first use behind a unique name constraint.
type ExpenseCategory struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	AuditFields
}

// DailyLabourRow is one labourer's merged view for a single calendar day.
type DailyLabourRow struct {
	LabourerID         string          `json:"labourerID"`
	Name               string          `json:"name"`
	DefaultDailyWage   decimal.Decimal `json:"defaultDailyWage"`
	Attendance         decimal.Decimal `json:"attendance"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	LastSettlementDate *CalendarDay    `json:"lastSettlementDate"`
}

// ChangeKind discriminates the two ledger row kinds a daily change touches.
type ChangeKind string

const (
	ChangeAttendance ChangeKind = "ATTENDANCE"
	ChangePayment    ChangeKind = "PAYMENT"
)

// DailyChange is a single row mutation computed by the daily aggregator.
// A change either upserts one row or deletes the (labourer, day) rows of its kind.
// The whole slice produced for a batch is applied in one store transaction.
type DailyChange struct {
	Kind       ChangeKind
	Upsert     bool
	LabourerID string
	Day        CalendarDay
	Attendance *AttendanceEntry // set when Kind == ChangeAttendance && Upsert
	Payment    *PaymentEntry    // set when Kind == ChangePayment && Upsert
}
