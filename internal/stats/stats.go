// Package stats is the aggregation and reporting engine. Every function is a
// pure transform over a transaction snapshot: no caching, no incremental
// state, no clock access. The reference date is always passed in so results
// are reproducible.
package stats

import (
	"sort"

	"financeflow/internal/core"
)

// trendMonths is the number of calendar months in the dashboard line series,
// including the reference month.
const trendMonths = 6

// Short month labels, pt-BR, already capitalized for display.
var monthLabels = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

type (
	// PieSlice is one category's share of the reference month's expenses.
	PieSlice struct {
		Category   string  `json:"category"`
		Amount     float64 `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// TrendPoint is one month bucket of the income/expense line series.
	TrendPoint struct {
		Label   string  `json:"label"`
		Month   int     `json:"month"` // 1-12
		Year    int     `json:"year"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	// ChartData bundles the chart-ready series for the dashboard.
	ChartData struct {
		PieChartData  []PieSlice   `json:"pieChartData"`
		LineChartData []TrendPoint `json:"lineChartData"`
	}

	// DashboardStats is the dashboard view model: reference-month totals
	// plus chart series.
	DashboardStats struct {
		TotalIncome  float64   `json:"totalIncome"`
		TotalExpense float64   `json:"totalExpense"`
		Balance      float64   `json:"balance"`
		ChartData    ChartData `json:"chartData"`
	}

	// Summary holds the totals over a filtered transaction set.
	Summary struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		Balance      float64 `json:"balance"`
	}

	// ReportData is a filtered historical view with its own summary.
	ReportData struct {
		Summary      Summary            `json:"summary"`
		Transactions []core.Transaction `json:"transactions"`
	}
)

// ComputeDashboardStats derives the dashboard totals and chart series from a
// transaction snapshot. Totals and the pie series cover the calendar month
// of reference; the trend series covers the trailing six calendar months
// over the entire snapshot.
func ComputeDashboardStats(transactions []core.Transaction, reference core.CalendarDate) DashboardStats {
	var monthly []core.Transaction
	for _, tx := range transactions {
		if tx.Date.SameMonth(reference.Year, reference.Month) {
			monthly = append(monthly, tx)
		}
	}

	totalIncome := sumByType(monthly, core.Income)
	totalExpense := sumByType(monthly, core.Expense)

	return DashboardStats{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
		ChartData: ChartData{
			PieChartData:  pieSeries(monthly, totalExpense),
			LineChartData: trendSeries(transactions, reference),
		},
	}
}

// pieSeries groups the month's expenses by category, amount-descending.
// Categories without expenses this month are absent, not zero-valued.
func pieSeries(monthly []core.Transaction, totalExpense float64) []PieSlice {
	byCategory := make(map[string]float64)
	for _, tx := range monthly {
		if tx.Type == core.Expense {
			byCategory[tx.Category] += tx.Amount
		}
	}

	slices := make([]PieSlice, 0, len(byCategory))
	for category, amount := range byCategory {
		percentage := 0.0
		if totalExpense > 0 {
			percentage = amount / totalExpense * 100
		}
		slices = append(slices, PieSlice{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	// Amount descending; category name breaks ties so output is stable
	// across runs despite map iteration order.
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount != slices[j].Amount {
			return slices[i].Amount > slices[j].Amount
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}

// trendSeries builds exactly trendMonths consecutive month buckets ending at
// the reference month, oldest first, accumulated over the whole snapshot.
func trendSeries(transactions []core.Transaction, reference core.CalendarDate) []TrendPoint {
	points := make([]TrendPoint, trendMonths)
	for i := 0; i < trendMonths; i++ {
		year, month := reference.Year, reference.Month-(trendMonths-1-i)
		for month < 1 {
			month += 12
			year--
		}
		points[i] = TrendPoint{
			Label: monthLabels[month-1],
			Month: month,
			Year:  year,
		}
	}

	for _, tx := range transactions {
		for i := range points {
			if !tx.Date.SameMonth(points[i].Year, points[i].Month) {
				continue
			}
			switch tx.Type {
			case core.Income:
				points[i].Income += tx.Amount
			case core.Expense:
				points[i].Expense += tx.Amount
			}
			break
		}
	}
	return points
}

// sumByType sums the amounts of transactions with the given type.
// Amounts already degraded to zero by parsing contribute nothing.
func sumByType(transactions []core.Transaction, txType core.TransactionType) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Type == txType {
			total += tx.Amount
		}
	}
	return total
}
