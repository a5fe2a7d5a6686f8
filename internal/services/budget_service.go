package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "pocketbudget/internal/errors"
	"pocketbudget/internal/models"
	"pocketbudget/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	stores StoreProvider
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(stores StoreProvider) BudgetServicer {
	return &budgetService{stores: stores}
}

// CreateBudget creates a new budget. A missing end date defaults to one
// month after the start date.
func (s *budgetService) CreateBudget(sessionID, name string, limit decimal.Decimal, startDate time.Time, endDate *time.Time) (*models.Budget, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || startDate.IsZero() {
		return nil, apperrors.ErrInvalidInput
	}
	if !limit.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	end := startDate.AddDate(0, 1, 0)
	if endDate != nil && !endDate.IsZero() {
		end = *endDate
	}

	budget := st.AddBudget(models.BudgetFields{
		Name:      name,
		StartDate: startDate,
		EndDate:   end,
		Limit:     limit,
	})
	return &budget, nil
}

// GetBudgets lists the session's budgets with their progress, in creation order.
func (s *budgetService) GetBudgets(sessionID string, page pagination.PageRequest) (*pagination.PageResponse[BudgetWithProgress], error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	totals := totalsByBudget(snap.Expenses)

	rows := make([]BudgetWithProgress, 0, len(snap.Budgets))
	for _, b := range snap.Budgets {
		rows = append(rows, BudgetWithProgress{
			Budget:   b,
			Progress: computeProgress(b, totals[b.ID]),
		})
	}

	resp := pagination.Slice(rows, page)
	return &resp, nil
}

// GetBudgetByID retrieves a budget by ID
func (s *budgetService) GetBudgetByID(sessionID, budgetID string) (*models.Budget, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	budget, ok := st.Budget(budgetID)
	if !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	return &budget, nil
}

// UpdateBudget applies a partial update. Only the supplied fields change.
func (s *budgetService) UpdateBudget(sessionID, budgetID string, patch models.BudgetPatch) (*models.Budget, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.ErrInvalidInput
		}
		patch.Name = &name
	}
	if patch.Limit != nil && !patch.Limit.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	budget, ok := st.UpdateBudget(budgetID, patch)
	if !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	return &budget, nil
}

// DeleteBudget deletes a budget together with its expenses and returns the
// number of expenses removed.
func (s *budgetService) DeleteBudget(sessionID, budgetID string) (int, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return 0, err
	}

	removed, ok := st.DeleteBudget(budgetID)
	if !ok {
		return 0, apperrors.ErrBudgetNotFound
	}
	return removed, nil
}

// GetBudgetProgress calculates spending against a budget's limit.
func (s *budgetService) GetBudgetProgress(sessionID, budgetID string) (*BudgetProgress, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	for _, b := range snap.Budgets {
		if b.ID == budgetID {
			progress := computeProgress(b, totalsByBudget(snap.Expenses)[b.ID])
			return &progress, nil
		}
	}
	return nil, apperrors.ErrBudgetNotFound
}

// GetSummary totals limits and spend across every budget in the session.
func (s *budgetService) GetSummary(sessionID string) (*BudgetSummary, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	totals := totalsByBudget(snap.Expenses)

	summary := &BudgetSummary{
		TotalBudgets: len(snap.Budgets),
		TotalLimit:   decimal.Zero,
		TotalSpent:   decimal.Zero,
		ByStatus: map[models.BudgetStatus]int{
			models.BudgetStatusNominal:  0,
			models.BudgetStatusWarning:  0,
			models.BudgetStatusCritical: 0,
		},
	}
	for _, b := range snap.Budgets {
		spent := totals[b.ID]
		summary.TotalLimit = summary.TotalLimit.Add(b.Limit)
		summary.TotalSpent = summary.TotalSpent.Add(spent)
		summary.ByStatus[StatusFor(percentOf(spent, b.Limit))]++
	}
	summary.Remaining = summary.TotalLimit.Sub(summary.TotalSpent)
	summary.Percentage = percentOf(summary.TotalSpent, summary.TotalLimit).Round(2).InexactFloat64()

	return summary, nil
}

// GetCategoryBreakdown groups a budget's expenses by category.
func (s *budgetService) GetCategoryBreakdown(sessionID, budgetID string) ([]CategorySpend, error) {
	st, err := sessionStore(s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := st.Budget(budgetID); !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	return breakdown(st.GetBudgetExpenses(budgetID)), nil
}
