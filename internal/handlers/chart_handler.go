package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketbudget/internal/charts"
	apperrors "pocketbudget/internal/errors"
	"pocketbudget/internal/pagination"
	"pocketbudget/internal/services"
)

// ChartRenderer draws budget figures as images.
type ChartRenderer interface {
	CategoryPie(title string, slices []charts.Slice) ([]byte, error)
	BudgetBars(title string, bars []charts.Bar) ([]byte, error)
}

// ChartHandler serves PNG charts of the session's budgets.
type ChartHandler struct {
	budgetService services.BudgetServicer
	renderer      ChartRenderer
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(budgetService services.BudgetServicer, renderer ChartRenderer) *ChartHandler {
	return &ChartHandler{budgetService: budgetService, renderer: renderer}
}

// GetBudgetsChart renders spent against limit for every budget.
// @Summary     Budgets chart
// @Description PNG bar chart comparing spend with the limit of every budget
// @Tags        charts
// @Produce     png
// @Security    BearerAuth
// @Success     200 {file}   binary "PNG image"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No budgets to chart"
// @Router      /budgets/chart [get]
func (h *ChartHandler) GetBudgetsChart(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var bars []charts.Bar
	page := pagination.PageRequest{Page: 1, PageSize: 100}
	for {
		result, err := h.budgetService.GetBudgets(sessionID, page)
		if err != nil {
			respondWithError(c, err)
			return
		}
		for _, b := range result.Data {
			bars = append(bars, charts.Bar{
				Label:  b.Name,
				Spent:  b.Progress.Spent.InexactFloat64(),
				Limit:  b.Limit.InexactFloat64(),
				Status: string(b.Progress.Status),
			})
		}
		if page.Page >= result.TotalPages {
			break
		}
		page.Page++
	}

	img, err := h.renderer.BudgetBars("Spending by budget", bars)
	if err != nil {
		respondWithError(c, chartError(err))
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// GetBreakdownChart renders a budget's spend per category.
// @Summary     Budget category chart
// @Description PNG pie chart of a budget's spend per category
// @Tags        charts
// @Produce     png
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {file}   binary "PNG image"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found or nothing spent yet"
// @Router      /budgets/{id}/chart [get]
func (h *ChartHandler) GetBreakdownChart(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(sessionID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.budgetService.GetCategoryBreakdown(sessionID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	slices := make([]charts.Slice, 0, len(rows))
	for _, r := range rows {
		slices = append(slices, charts.Slice{
			Label: r.Label,
			Value: r.Amount.InexactFloat64(),
			Tone:  r.Tone,
		})
	}

	img, err := h.renderer.CategoryPie(budget.Name, slices)
	if err != nil {
		respondWithError(c, chartError(err))
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

func chartError(err error) error {
	if errors.Is(err, charts.ErrNoData) {
		return apperrors.ErrNoChartData
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
