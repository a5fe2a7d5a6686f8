package testutil_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"pocketbudget/internal/errors"
	"pocketbudget/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	a := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, a)
	b := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, b)

	testutil.CreateTestUserWithEmail(t, a, "same@test.com")
	testutil.CreateTestUserWithEmail(t, b, "same@test.com")
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	provider, st := testutil.NewSessionStore("sess")
	if got, ok := provider.Store("sess"); !ok || got != st {
		t.Fatal("provider should resolve the session store")
	}
	if _, ok := provider.Store("other"); ok {
		t.Error("unknown session should not resolve")
	}

	budget := testutil.CreateTestBudget(t, st, "100")
	testutil.CreateTestExpense(t, st, budget.ID, "12.34")
	if got := st.GetBudgetTotal(budget.ID).String(); got != "12.34" {
		t.Errorf("expected total 12.34, got %s", got)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrBudgetNotFound, "BUDGET_NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
	testutil.AssertNoError(t, nil)
	testutil.AssertAmount(t, "sum", decimal.RequireFromString("85.50").Add(decimal.RequireFromString("42.30")), "127.8")
}
