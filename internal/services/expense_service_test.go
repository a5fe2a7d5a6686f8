package services

import (
	"testing"
	"time"

	"pocketbudget/internal/models"
	"pocketbudget/internal/pagination"
	"pocketbudget/internal/store"
	"pocketbudget/internal/testutil"
)

var expenseNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestExpenseService(t *testing.T) (*expenseService, *store.Store, models.Budget) {
	t.Helper()
	stores, st := testutil.NewSessionStore(testSession)
	svc := &expenseService{stores: stores, now: func() time.Time { return expenseNow }}
	return svc, st, testutil.CreateTestBudget(t, st, "500")
}

func TestCreateExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, st, b := newTestExpenseService(t)

		e, err := svc.CreateExpense(testSession, b.ID, d("85.50"), " Weekly groceries ", models.CategoryFood, expenseNow.Add(-time.Hour), "")
		testutil.AssertNoError(t, err)

		if e.ID == "" || e.BudgetID != b.ID {
			t.Fatalf("unexpected expense: %+v", e)
		}
		if e.Description != "Weekly groceries" {
			t.Errorf("expected trimmed description, got %q", e.Description)
		}
		testutil.AssertAmount(t, "budget total", st.GetBudgetTotal(b.ID), "85.50")
	})

	t.Run("uncategorized_and_default_date", func(t *testing.T) {
		svc, _, b := newTestExpenseService(t)

		e, err := svc.CreateExpense(testSession, b.ID, d("1"), "Misc", models.CategoryUncategorized, time.Time{}, "receipt.jpg")
		testutil.AssertNoError(t, err)

		if !e.SpentAt.Equal(expenseNow) {
			t.Errorf("expected spent_at to default to now, got %s", e.SpentAt)
		}
		if e.Receipt != "receipt.jpg" {
			t.Errorf("expected receipt kept, got %q", e.Receipt)
		}
	})

	tests := []struct {
		name     string
		budgetID string
		amount   string
		desc     string
		category models.Category
		spentAt  time.Time
		code     string
	}{
		{name: "unknown_budget", budgetID: "missing", amount: "1", desc: "x", code: "BUDGET_NOT_FOUND"},
		{name: "blank_description", amount: "1", desc: "  ", code: "INVALID_INPUT"},
		{name: "zero_amount", amount: "0", desc: "x", code: "INVALID_AMOUNT"},
		{name: "negative_amount", amount: "-3.50", desc: "x", code: "INVALID_AMOUNT"},
		{name: "bad_category", amount: "1", desc: "x", category: models.Category("Groceries"), code: "INVALID_CATEGORY"},
		{name: "future_date", amount: "1", desc: "x", spentAt: expenseNow.Add(24 * time.Hour), code: "SPENT_AT_IN_FUTURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, b := newTestExpenseService(t)
			budgetID := tt.budgetID
			if budgetID == "" {
				budgetID = b.ID
			}

			_, err := svc.CreateExpense(testSession, budgetID, d(tt.amount), tt.desc, tt.category, tt.spentAt, "")
			testutil.AssertAppError(t, err, tt.code)
			if len(st.Expenses()) != 0 {
				t.Error("rejected expense must not be stored")
			}
		})
	}
}

func TestCreateExpense_BudgetDeletedMidRequest(t *testing.T) {
	svc, st, b := newTestExpenseService(t)

	deleted := false
	svc.now = func() time.Time {
		if !deleted {
			deleted = true
			st.DeleteBudget(b.ID)
		}
		return expenseNow
	}

	_, err := svc.CreateExpense(testSession, b.ID, d("10"), "Late write", models.CategoryFood, time.Time{}, "")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

	if !deleted {
		t.Fatal("expected the budget to be deleted during the request")
	}
	if n := len(st.Expenses()); n != 0 {
		t.Errorf("expected no orphan expenses, got %d", n)
	}
}

func TestGetBudgetExpenses(t *testing.T) {
	t.Run("insertion_order_and_filters", func(t *testing.T) {
		svc, st, b := newTestExpenseService(t)
		other := testutil.CreateTestBudget(t, st, "100")

		add := func(budgetID, amount string, cat models.Category, daysAgo int) models.Expense {
			e, err := svc.CreateExpense(testSession, budgetID, d(amount), "x", cat, expenseNow.AddDate(0, 0, -daysAgo), "")
			testutil.AssertNoError(t, err)
			return *e
		}
		e1 := add(b.ID, "10", models.CategoryFood, 10)
		add(other.ID, "99", models.CategoryFood, 1)
		e2 := add(b.ID, "50", models.CategoryBills, 5)
		e3 := add(b.ID, "5", models.CategoryFood, 1)

		all, err := svc.GetBudgetExpenses(testSession, b.ID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if len(all.Data) != 3 || all.Data[0].ID != e1.ID || all.Data[1].ID != e2.ID || all.Data[2].ID != e3.ID {
			t.Fatalf("expected own expenses in insertion order, got %+v", all.Data)
		}

		food := models.CategoryFood
		byCat, err := svc.GetBudgetExpenses(testSession, b.ID, pagination.PageRequest{}, ExpenseFilter{Category: &food})
		testutil.AssertNoError(t, err)
		if byCat.TotalItems != 2 {
			t.Errorf("expected 2 food expenses, got %d", byCat.TotalItems)
		}

		from := expenseNow.AddDate(0, 0, -6)
		minAmount := d("6")
		filtered, err := svc.GetBudgetExpenses(testSession, b.ID, pagination.PageRequest{}, ExpenseFilter{FromDate: &from, MinAmount: &minAmount})
		testutil.AssertNoError(t, err)
		if filtered.TotalItems != 1 || filtered.Data[0].ID != e2.ID {
			t.Errorf("expected only the bills expense, got %+v", filtered.Data)
		}

		maxAmount := d("5")
		to := expenseNow
		capped, err := svc.GetBudgetExpenses(testSession, b.ID, pagination.PageRequest{}, ExpenseFilter{ToDate: &to, MaxAmount: &maxAmount})
		testutil.AssertNoError(t, err)
		if capped.TotalItems != 1 || capped.Data[0].ID != e3.ID {
			t.Errorf("expected only the 5.00 expense, got %+v", capped.Data)
		}
	})

	t.Run("unknown_budget", func(t *testing.T) {
		svc, _, _ := newTestExpenseService(t)

		_, err := svc.GetBudgetExpenses(testSession, "missing", pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		svc, st, b := newTestExpenseService(t)
		e := testutil.CreateTestExpense(t, st, b.ID, "10")

		amount := d("12.25")
		updated, err := svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{Amount: &amount})
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(amount) || updated.Description != e.Description || updated.Category != e.Category {
			t.Errorf("unexpected update result: %+v", updated)
		}
	})

	t.Run("move_to_other_budget", func(t *testing.T) {
		svc, st, b := newTestExpenseService(t)
		other := testutil.CreateTestBudget(t, st, "100")
		e := testutil.CreateTestExpense(t, st, b.ID, "10")

		_, err := svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{BudgetID: &other.ID})
		testutil.AssertNoError(t, err)

		if !st.GetBudgetTotal(b.ID).IsZero() || !st.GetBudgetTotal(other.ID).Equal(d("10")) {
			t.Error("expected spend to follow the expense")
		}

		missing := "missing"
		_, err = svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{BudgetID: &missing})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("validation", func(t *testing.T) {
		svc, st, b := newTestExpenseService(t)
		e := testutil.CreateTestExpense(t, st, b.ID, "10")

		_, err := svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		zero := d("0")
		_, err = svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{Amount: &zero})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		bad := models.Category("nope")
		_, err = svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{Category: &bad})
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")

		future := expenseNow.Add(time.Minute)
		_, err = svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{SpentAt: &future})
		testutil.AssertAppError(t, err, "SPENT_AT_IN_FUTURE")

		desc := "ok"
		_, err = svc.UpdateExpense(testSession, "missing", models.ExpensePatch{Description: &desc})
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestUpdateExpense_TargetBudgetDeletedMidRequest(t *testing.T) {
	svc, st, b := newTestExpenseService(t)
	other := testutil.CreateTestBudget(t, st, "100")
	e := testutil.CreateTestExpense(t, st, b.ID, "10")

	deleted := false
	svc.now = func() time.Time {
		if !deleted {
			deleted = true
			st.DeleteBudget(other.ID)
		}
		return expenseNow
	}

	spentAt := expenseNow.Add(-time.Hour)
	_, err := svc.UpdateExpense(testSession, e.ID, models.ExpensePatch{BudgetID: &other.ID, SpentAt: &spentAt})
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

	got, ok := st.Expense(e.ID)
	if !ok {
		t.Fatal("expected expense to survive")
	}
	if got.BudgetID != b.ID {
		t.Errorf("expected expense to stay on budget %s, got %s", b.ID, got.BudgetID)
	}
}

func TestGetAndDeleteExpense(t *testing.T) {
	svc, st, b := newTestExpenseService(t)
	e := testutil.CreateTestExpense(t, st, b.ID, "10")

	got, err := svc.GetExpenseByID(testSession, e.ID)
	testutil.AssertNoError(t, err)
	if got.ID != e.ID {
		t.Errorf("expected %s, got %s", e.ID, got.ID)
	}

	testutil.AssertNoError(t, svc.DeleteExpense(testSession, e.ID))
	testutil.AssertAppError(t, svc.DeleteExpense(testSession, e.ID), "EXPENSE_NOT_FOUND")

	_, err = svc.GetExpenseByID(testSession, e.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	if _, ok := st.Budget(b.ID); !ok {
		t.Error("deleting an expense must not remove its budget")
	}
}
