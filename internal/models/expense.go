package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spend recorded against a budget.
type Expense struct {
	ID          string          `json:"id"`
	BudgetID    string          `json:"budget_id"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"85.50"`
	Description string          `json:"description"`
	Category    Category        `json:"category,omitempty"`
	SpentAt     time.Time       `json:"spent_at"`
	Receipt     string          `json:"receipt,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseFields carries the caller-supplied fields of a new expense.
type ExpenseFields struct {
	BudgetID    string
	Amount      decimal.Decimal
	Description string
	Category    Category
	SpentAt     time.Time
	Receipt     string
}

// ExpensePatch is a partial update. Nil fields are left untouched.
type ExpensePatch struct {
	BudgetID    *string
	Amount      *decimal.Decimal
	Description *string
	Category    *Category
	SpentAt     *time.Time
	Receipt     *string
}

// Apply returns e with the supplied fields replaced.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.BudgetID != nil {
		e.BudgetID = *p.BudgetID
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.SpentAt != nil {
		e.SpentAt = *p.SpentAt
	}
	if p.Receipt != nil {
		e.Receipt = *p.Receipt
	}
	return e
}
