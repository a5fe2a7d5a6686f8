package services

import (
	"sort"

	"github.com/shopspring/decimal"

	apperrors "pocketbudget/internal/errors"
	"pocketbudget/internal/models"
	"pocketbudget/internal/store"
)

var (
	hundred           = decimal.NewFromInt(100)
	warningThreshold  = decimal.NewFromInt(75)
	criticalThreshold = decimal.NewFromInt(90)
)

// sessionStore resolves the store of a live session.
func sessionStore(stores StoreProvider, sessionID string) (*store.Store, error) {
	st, ok := stores.Store(sessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return st, nil
}

// percentOf returns part/whole*100, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// StatusFor classifies a usage percentage: critical from 90, warning from 75.
func StatusFor(percentage decimal.Decimal) models.BudgetStatus {
	switch {
	case percentage.GreaterThanOrEqual(criticalThreshold):
		return models.BudgetStatusCritical
	case percentage.GreaterThanOrEqual(warningThreshold):
		return models.BudgetStatusWarning
	default:
		return models.BudgetStatusNominal
	}
}

// computeProgress derives the display values of a budget from its spend.
func computeProgress(b models.Budget, spent decimal.Decimal) BudgetProgress {
	remaining := b.Limit.Sub(spent)
	pct := percentOf(spent, b.Limit)
	rounded := pct.Round(2).InexactFloat64()

	return BudgetProgress{
		BudgetID:   b.ID,
		Limit:      b.Limit,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: rounded,
		Progress:   min(rounded, 100),
		Status:     StatusFor(pct),
		OverBudget: remaining.IsNegative(),
	}
}

// totalsByBudget sums expense amounts per budget id.
func totalsByBudget(expenses []models.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.BudgetID] = totals[e.BudgetID].Add(e.Amount)
	}
	return totals
}

// breakdown groups expenses by category, largest spend first.
func breakdown(expenses []models.Expense) []CategorySpend {
	total := store.Total(expenses)
	index := make(map[models.Category]int)
	out := []CategorySpend{}

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategorySpend{
				Category: e.Category,
				Label:    e.Category.Label(),
				Tone:     e.Category.Tone(),
				Amount:   decimal.Zero,
			})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
		out[i].Count++
	}

	for i := range out {
		out[i].Share = percentOf(out[i].Amount, total).Round(2).InexactFloat64()
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Amount.GreaterThan(out[b].Amount)
	})
	return out
}
