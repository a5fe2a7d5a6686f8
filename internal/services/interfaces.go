package services

import (
	"time"

	"github.com/shopspring/decimal"

	"pocketbudget/internal/models"
	"pocketbudget/internal/pagination"
	"pocketbudget/internal/store"
)

// StoreProvider resolves the budget store that belongs to a session.
type StoreProvider interface {
	Store(sessionID string) (*store.Store, bool)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
	GetUserAuditLogs(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

// BudgetProgress contains the derived spending figures for one budget.
type BudgetProgress struct {
	BudgetID   string              `json:"budget_id"`
	Limit      decimal.Decimal     `json:"limit" swaggertype:"string"`
	Spent      decimal.Decimal     `json:"spent" swaggertype:"string"`
	Remaining  decimal.Decimal     `json:"remaining" swaggertype:"string"`
	Percentage float64             `json:"percentage"`
	Progress   float64             `json:"progress"`
	Status     models.BudgetStatus `json:"status"`
	OverBudget bool                `json:"over_budget"`
}

// BudgetWithProgress is a budget row as shown on the budgets page.
type BudgetWithProgress struct {
	models.Budget
	Progress BudgetProgress `json:"progress"`
}

// BudgetSummary aggregates every budget in a session.
type BudgetSummary struct {
	TotalBudgets int                         `json:"total_budgets"`
	TotalLimit   decimal.Decimal             `json:"total_limit" swaggertype:"string"`
	TotalSpent   decimal.Decimal             `json:"total_spent" swaggertype:"string"`
	Remaining    decimal.Decimal             `json:"remaining" swaggertype:"string"`
	Percentage   float64                     `json:"percentage"`
	ByStatus     map[models.BudgetStatus]int `json:"by_status"`
}

// CategorySpend is the amount spent in one category of a budget.
type CategorySpend struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Tone     string          `json:"tone"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
	Count    int             `json:"count"`
	Share    float64         `json:"share"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(sessionID, name string, limit decimal.Decimal, startDate time.Time, endDate *time.Time) (*models.Budget, error)
	GetBudgets(sessionID string, page pagination.PageRequest) (*pagination.PageResponse[BudgetWithProgress], error)
	GetBudgetByID(sessionID, budgetID string) (*models.Budget, error)
	UpdateBudget(sessionID, budgetID string, patch models.BudgetPatch) (*models.Budget, error)
	DeleteBudget(sessionID, budgetID string) (int, error)
	GetBudgetProgress(sessionID, budgetID string) (*BudgetProgress, error)
	GetSummary(sessionID string) (*BudgetSummary, error)
	GetCategoryBreakdown(sessionID, budgetID string) ([]CategorySpend, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Category  *models.Category
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(sessionID, budgetID string, amount decimal.Decimal, description string, category models.Category, spentAt time.Time, receipt string) (*models.Expense, error)
	GetBudgetExpenses(sessionID, budgetID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(sessionID, expenseID string) (*models.Expense, error)
	UpdateExpense(sessionID, expenseID string, patch models.ExpensePatch) (*models.Expense, error)
	DeleteExpense(sessionID, expenseID string) error
}
