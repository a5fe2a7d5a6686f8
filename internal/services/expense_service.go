package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "pocketbudget/internal/errors"
	"pocketbudget/internal/models"
	"pocketbudget/internal/pagination"
	"pocketbudget/internal/store"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	stores StoreProvider
	now    func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(stores StoreProvider) ExpenseServicer {
	return &expenseService{stores: stores, now: time.Now}
}

// CreateExpense records an expense against an existing budget. A zero
// spentAt defaults to now.
func (s *expenseService) CreateExpense(sessionID, budgetID string, amount decimal.Decimal, description string, category models.Category, spentAt time.Time, receipt string) (*models.Expense, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := st.Budget(budgetID); !ok {
		return nil, apperrors.ErrBudgetNotFound
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if spentAt.IsZero() {
		spentAt = s.now()
	}
	if spentAt.After(s.now()) {
		return nil, apperrors.ErrSpentAtInFuture
	}

	expense, ok := st.AddExpenseTo(models.ExpenseFields{
		BudgetID:    budgetID,
		Amount:      amount,
		Description: description,
		Category:    category,
		SpentAt:     spentAt,
		Receipt:     strings.TrimSpace(receipt),
	})
	if !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	return &expense, nil
}

// GetBudgetExpenses lists a budget's expenses in insertion order with optional filters.
func (s *expenseService) GetBudgetExpenses(sessionID, budgetID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := st.Budget(budgetID); !ok {
		return nil, apperrors.ErrBudgetNotFound
	}

	resp := pagination.Slice(applyExpenseFilters(st.GetBudgetExpenses(budgetID), filter), page)
	return &resp, nil
}

// GetExpenseByID retrieves an expense by ID
func (s *expenseService) GetExpenseByID(sessionID, expenseID string) (*models.Expense, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	expense, ok := st.Expense(expenseID)
	if !ok {
		return nil, apperrors.ErrExpenseNotFound
	}
	return &expense, nil
}

// UpdateExpense applies a partial update. Moving an expense to another
// budget requires that budget to exist.
func (s *expenseService) UpdateExpense(sessionID, expenseID string, patch models.ExpensePatch) (*models.Expense, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.validatePatch(st, &patch); err != nil {
		return nil, err
	}

	expense, err := st.UpdateLinkedExpense(expenseID, patch)
	switch {
	case errors.Is(err, store.ErrExpenseNotFound):
		return nil, apperrors.ErrExpenseNotFound
	case errors.Is(err, store.ErrBudgetNotFound):
		return nil, apperrors.ErrBudgetNotFound
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// DeleteExpense removes a single expense.
func (s *expenseService) DeleteExpense(sessionID, expenseID string) error {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return err
	}

	if !st.DeleteExpense(expenseID) {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

func (s *expenseService) validatePatch(st *store.Store, patch *models.ExpensePatch) error {
	if *patch == (models.ExpensePatch{}) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}
	if patch.BudgetID != nil {
		if _, ok := st.Budget(*patch.BudgetID); !ok {
			return apperrors.ErrBudgetNotFound
		}
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if desc == "" {
			return apperrors.ErrInvalidInput
		}
		patch.Description = &desc
	}
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if patch.Category != nil && !patch.Category.IsValid() {
		return apperrors.ErrInvalidCategory
	}
	if patch.SpentAt != nil && patch.SpentAt.After(s.now()) {
		return apperrors.ErrSpentAtInFuture
	}
	return nil
}

// applyExpenseFilters keeps the expenses matching every supplied filter.
func applyExpenseFilters(expenses []models.Expense, filter ExpenseFilter) []models.Expense {
	out := expenses[:0:0]
	for _, e := range expenses {
		if filter.FromDate != nil && e.SpentAt.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && e.SpentAt.After(*filter.ToDate) {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.MinAmount != nil && e.Amount.LessThan(*filter.MinAmount) {
			continue
		}
		if filter.MaxAmount != nil && e.Amount.GreaterThan(*filter.MaxAmount) {
			continue
		}
		out = append(out, e)
	}
	return out
}
