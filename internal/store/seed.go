package store

import (
	"time"

	"github.com/shopspring/decimal"

	"pocketbudget/internal/models"
)

// SeedDemo fills s with a small example month: a groceries budget with two
// expenses and an entertainment budget with one subscription.
func SeedDemo(s *Store) {
	day := func(d int) time.Time { return time.Date(2024, time.November, d, 0, 0, 0, 0, time.UTC) }

	groceries := s.AddBudget(models.BudgetFields{
		Name:      "Groceries - November 2024",
		StartDate: day(1),
		EndDate:   day(30),
		Limit:     decimal.NewFromInt(500),
	})
	entertainment := s.AddBudget(models.BudgetFields{
		Name:      "Entertainment",
		StartDate: day(1),
		EndDate:   day(30),
		Limit:     decimal.NewFromInt(200),
	})

	s.AddExpense(models.ExpenseFields{
		BudgetID:    groceries.ID,
		Amount:      decimal.RequireFromString("85.50"),
		Description: "Weekly grocery shopping",
		Category:    models.CategoryFood,
		SpentAt:     day(5),
	})
	s.AddExpense(models.ExpenseFields{
		BudgetID:    groceries.ID,
		Amount:      decimal.RequireFromString("42.30"),
		Description: "Fruits and vegetables",
		Category:    models.CategoryFood,
		SpentAt:     day(8),
	})
	s.AddExpense(models.ExpenseFields{
		BudgetID:    entertainment.ID,
		Amount:      decimal.RequireFromString("15.99"),
		Description: "Netflix subscription",
		Category:    models.CategorySubscription,
		SpentAt:     day(1),
	})
}
