package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus classifies how much of a budget has been used.
type BudgetStatus string

const (
	BudgetStatusNominal  BudgetStatus = "nominal"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusCritical BudgetStatus = "critical"
)

// Budget is a named spending limit over a date range. EndDate is expected to
// be on or after StartDate but this is not enforced.
type Budget struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Limit     decimal.Decimal `json:"limit" swaggertype:"string" example:"500.00"`
	CreatedAt time.Time       `json:"created_at"`
}

// BudgetFields carries the caller-supplied fields of a new budget.
type BudgetFields struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Limit     decimal.Decimal
}

// BudgetPatch is a partial update. Nil fields are left untouched.
type BudgetPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     *decimal.Decimal
}

// Apply returns b with the supplied fields replaced. ID and CreatedAt are
// never changed.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.StartDate != nil {
		b.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		b.EndDate = *p.EndDate
	}
	if p.Limit != nil {
		b.Limit = *p.Limit
	}
	return b
}

// IsEmpty reports whether the patch changes nothing.
func (p BudgetPatch) IsEmpty() bool {
	return p.Name == nil && p.StartDate == nil && p.EndDate == nil && p.Limit == nil
}
