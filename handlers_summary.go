package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zoincas/pkg/money"
	"zoincas/pkg/summary"
)

// query dates arrive as MM-dd-yyyy
const queryDateLayout = "01-02-2006"

type amountWithDiff struct {
	Amount     float64 `json:"amount"`
	Difference float64 `json:"difference"`
}

type summaryCategory struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type summaryChartPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type summaryResponse struct {
	Income     amountWithDiff      `json:"income"`
	Expense    amountWithDiff      `json:"expense"`
	Remaining  amountWithDiff      `json:"remaining"`
	Categories []summaryCategory   `json:"categories"`
	ChartData  []summaryChartPoint `json:"chartData"`
}

// summaryHandler serves the dashboard rollup: income, expense and net for
// the requested window with percentage differences against the immediately
// preceding window of the same length, the top spending categories with the
// rest folded into Other, and a gap-free per-day chart series.
func summaryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)

	var accountID *uuid.UUID
	if raw := c.Query("accountId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgMissingParam)
			return
		}
		accountID = &id
	}

	end := time.Now()
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgMissingParam)
			return
		}
		end = parsed
	}
	start := end.AddDate(0, 0, -30)
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgMissingParam)
			return
		}
		start = parsed
	}

	period := summary.NewPeriod(start, end)
	previous := period.Previous()

	current, err := incomeExpenseSummary(userID, &period, accountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	prior, err := incomeExpenseSummary(userID, &previous, accountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}

	breakdown, err := categoryBreakdown(userID, period, accountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	topCategories := summary.TopWithOther(breakdown, 3)

	days, err := incomeExpenseByDay(userID, period, accountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	filled := summary.FillMissingDays(days, period)

	resp := summaryResponse{
		Income: amountWithDiff{
			Amount:     money.FromMiliunits(current.Income),
			Difference: money.PercentageDifference(money.FromMiliunits(current.Income), money.FromMiliunits(prior.Income)),
		},
		Expense: amountWithDiff{
			Amount:     money.FromMiliunits(current.Expense),
			Difference: money.PercentageDifference(money.FromMiliunits(current.Expense), money.FromMiliunits(prior.Expense)),
		},
		Remaining: amountWithDiff{
			Amount:     money.FromMiliunits(current.Remaining),
			Difference: money.PercentageDifference(money.FromMiliunits(current.Remaining), money.FromMiliunits(prior.Remaining)),
		},
		Categories: make([]summaryCategory, 0, len(topCategories)),
		ChartData:  make([]summaryChartPoint, 0, len(filled)),
	}
	for _, cat := range topCategories {
		resp.Categories = append(resp.Categories, summaryCategory{
			Name:   cat.Name,
			Amount: money.FromMiliunits(cat.Amount),
		})
	}
	for _, d := range filled {
		resp.ChartData = append(resp.ChartData, summaryChartPoint{
			Date:    d.Date,
			Income:  money.FromMiliunits(d.Income),
			Expense: money.FromMiliunits(d.Expense),
		})
	}

	respondData(c, http.StatusOK, []summaryResponse{resp})
}
