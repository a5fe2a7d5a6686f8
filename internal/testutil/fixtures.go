package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pocketbudget/internal/models"
	"pocketbudget/internal/store"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users created by CreateTestUser.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget adds a one-month budget with the given limit to st.
func CreateTestBudget(t *testing.T, st *store.Store, limit string) models.Budget {
	t.Helper()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	return st.AddBudget(models.BudgetFields{
		Name:      fmt.Sprintf("Test Budget %d", nextID()),
		StartDate: start,
		EndDate:   start.AddDate(0, 1, 0),
		Limit:     MustDecimal(t, limit),
	})
}

// CreateTestExpense adds a Food expense of the given amount spent an hour ago.
func CreateTestExpense(t *testing.T, st *store.Store, budgetID, amount string) models.Expense {
	t.Helper()

	return st.AddExpense(models.ExpenseFields{
		BudgetID:    budgetID,
		Amount:      MustDecimal(t, amount),
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Category:    models.CategoryFood,
		SpentAt:     time.Now().Add(-time.Hour),
	})
}

// MustDecimal parses s or fails the test.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// StoreProvider is an in-memory session lookup for service tests.
type StoreProvider map[string]*store.Store

// Store implements services.StoreProvider.
func (p StoreProvider) Store(sessionID string) (*store.Store, bool) {
	st, ok := p[sessionID]
	return st, ok
}

// NewSessionStore returns a provider holding one empty store under sessionID.
func NewSessionStore(sessionID string) (StoreProvider, *store.Store) {
	st := store.New()
	return StoreProvider{sessionID: st}, st
}
