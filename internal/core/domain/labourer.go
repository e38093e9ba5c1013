package domain

import "github.com/shopspring/decimal"

// Labourer is a day-worker whose attendance and wage payments the ledger tracks.
// Labourers are soft-deleted only, so historical ledger rows stay attributable.
type Labourer struct {
	LabourerID       string          `json:"labourerID"`
	Name             string          `json:"name"`
	DefaultDailyWage decimal.Decimal `json:"defaultDailyWage"`
	IsDeleted        bool            `json:"isDeleted"`
	AuditFields
}
