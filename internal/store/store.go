// Package store holds the budgets and expenses of a single session in memory.
//
// Every mutation builds fresh collections and swaps them in under the write
// lock, so a reader holding the read lock always sees a consistent pair of
// budgets and expenses. Deleting a budget removes its expenses in the same
// swap; no reader can observe an expense whose budget is already gone.
//
// The store performs no validation. Callers are expected to check presence
// and positivity before writing. AddExpenseTo and UpdateLinkedExpense check
// the budget reference under the write lock.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pocketbudget/internal/models"
	"pocketbudget/internal/uuid"
)

var (
	ErrBudgetNotFound  = errors.New("store: budget not found")
	ErrExpenseNotFound = errors.New("store: expense not found")
)

// Store is a session-scoped, concurrency-safe budget and expense store.
type Store struct {
	mu       sync.RWMutex
	budgets  []models.Budget
	expenses []models.Expense

	newID func() string
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the creation-timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		newID: uuid.New,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a point-in-time copy of both collections.
type Snapshot struct {
	Budgets  []models.Budget
	Expenses []models.Expense
}

// Snapshot returns copies of both collections taken under one read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Budgets:  slices.Clone(s.budgets),
		Expenses: slices.Clone(s.expenses),
	}
}

// Budgets returns all budgets in insertion order.
func (s *Store) Budgets() []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.budgets)
}

// Expenses returns all expenses in insertion order.
func (s *Store) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenses)
}

// Budget looks up a budget by id.
func (s *Store) Budget(id string) (models.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfBudget(s.budgets, id)
	if i < 0 {
		return models.Budget{}, false
	}
	return s.budgets[i], true
}

// Expense looks up an expense by id.
func (s *Store) Expense(id string) (models.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfExpense(s.expenses, id)
	if i < 0 {
		return models.Expense{}, false
	}
	return s.expenses[i], true
}

// AddBudget appends a budget with a fresh id and creation time.
func (s *Store) AddBudget(f models.BudgetFields) models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := models.Budget{
		ID:        s.uniqueID(),
		Name:      f.Name,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Limit:     f.Limit,
		CreatedAt: s.now(),
	}
	next := make([]models.Budget, len(s.budgets), len(s.budgets)+1)
	copy(next, s.budgets)
	s.budgets = append(next, b)
	return b
}

// UpdateBudget applies patch to the budget with the given id. It reports
// false and changes nothing when the id is unknown.
func (s *Store) UpdateBudget(id string, patch models.BudgetPatch) (models.Budget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfBudget(s.budgets, id)
	if i < 0 {
		return models.Budget{}, false
	}
	next := slices.Clone(s.budgets)
	next[i] = patch.Apply(next[i])
	s.budgets = next
	return next[i], true
}

// DeleteBudget removes the budget and every expense referencing it in one
// swap. It returns the number of expenses removed, and false when the id is
// unknown. Expenses pointing at an unknown id are still removed.
func (s *Store) DeleteBudget(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := indexOfBudget(s.budgets, id) >= 0
	budgets := slices.DeleteFunc(slices.Clone(s.budgets), func(b models.Budget) bool {
		return b.ID == id
	})
	expenses := slices.DeleteFunc(slices.Clone(s.expenses), func(e models.Expense) bool {
		return e.BudgetID == id
	})
	removed := len(s.expenses) - len(expenses)

	s.budgets, s.expenses = budgets, expenses
	return removed, found
}

// AddExpense appends an expense with a fresh id and creation time.
func (s *Store) AddExpense(f models.ExpenseFields) models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendExpense(f)
}

// AddExpenseTo appends an expense only while its budget exists. It reports
// false and changes nothing when the budget is unknown.
func (s *Store) AddExpenseTo(f models.ExpenseFields) (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfBudget(s.budgets, f.BudgetID) < 0 {
		return models.Expense{}, false
	}
	return s.appendExpense(f), true
}

// UpdateExpense applies patch to the expense with the given id. It reports
// false and changes nothing when the id is unknown.
func (s *Store) UpdateExpense(id string, patch models.ExpensePatch) (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfExpense(s.expenses, id)
	if i < 0 {
		return models.Expense{}, false
	}
	next := slices.Clone(s.expenses)
	next[i] = patch.Apply(next[i])
	s.expenses = next
	return next[i], true
}

// UpdateLinkedExpense is UpdateExpense for callers that require the expense
// to keep pointing at a live budget. It returns ErrExpenseNotFound or
// ErrBudgetNotFound without changing anything.
func (s *Store) UpdateLinkedExpense(id string, patch models.ExpensePatch) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfExpense(s.expenses, id)
	if i < 0 {
		return models.Expense{}, ErrExpenseNotFound
	}
	updated := patch.Apply(s.expenses[i])
	if indexOfBudget(s.budgets, updated.BudgetID) < 0 {
		return models.Expense{}, ErrBudgetNotFound
	}
	next := slices.Clone(s.expenses)
	next[i] = updated
	s.expenses = next
	return updated, nil
}

// DeleteExpense removes a single expense.
func (s *Store) DeleteExpense(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfExpense(s.expenses, id)
	if i < 0 {
		return false
	}
	s.expenses = slices.Delete(slices.Clone(s.expenses), i, i+1)
	return true
}

// GetBudgetExpenses returns the expenses of a budget in insertion order.
// Unknown ids yield an empty slice.
func (s *Store) GetBudgetExpenses(budgetID string) []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expensesFor(s.expenses, budgetID)
}

// GetBudgetTotal sums the amounts of a budget's expenses. Unknown ids yield zero.
func (s *Store) GetBudgetTotal(budgetID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Total(expensesFor(s.expenses, budgetID))
}

// Total sums the amounts of the given expenses.
func Total(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func expensesFor(all []models.Expense, budgetID string) []models.Expense {
	out := []models.Expense{}
	for _, e := range all {
		if e.BudgetID == budgetID {
			out = append(out, e)
		}
	}
	return out
}

// appendExpense builds and appends an expense. Callers must hold the write lock.
func (s *Store) appendExpense(f models.ExpenseFields) models.Expense {
	e := models.Expense{
		ID:          s.uniqueID(),
		BudgetID:    f.BudgetID,
		Amount:      f.Amount,
		Description: f.Description,
		Category:    f.Category,
		SpentAt:     f.SpentAt,
		Receipt:     f.Receipt,
		CreatedAt:   s.now(),
	}
	next := make([]models.Expense, len(s.expenses), len(s.expenses)+1)
	copy(next, s.expenses)
	s.expenses = append(next, e)
	return e
}

// uniqueID draws ids until one is unused in either collection. Callers must
// hold the write lock.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if indexOfBudget(s.budgets, id) < 0 && indexOfExpense(s.expenses, id) < 0 {
			return id
		}
	}
}

func indexOfBudget(budgets []models.Budget, id string) int {
	return slices.IndexFunc(budgets, func(b models.Budget) bool { return b.ID == id })
}

func indexOfExpense(expenses []models.Expense, id string) int {
	return slices.IndexFunc(expenses, func(e models.Expense) bool { return e.ID == id })
}
