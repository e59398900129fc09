package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeflow/internal/core"
)

func tx(id int64, txType core.TransactionType, amount float64, category string, date core.CalendarDate) core.Transaction {
	return core.Transaction{
		ID:          id,
		Description: "tx",
		Amount:      amount,
		Type:        txType,
		Category:    category,
		Date:        date,
	}
}

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		tx(1, core.Income, 1000, "Trabalho", core.NewCalendarDate(2024, 5, 1)),
		tx(2, core.Expense, 200, "Alimentação", core.NewCalendarDate(2024, 5, 10)),
	}
}

func TestComputeDashboardStatsMonthlyTotals(t *testing.T) {
	stats := ComputeDashboardStats(sampleTransactions(), core.NewCalendarDate(2024, 5, 15))

	assert.Equal(t, 1000.0, stats.TotalIncome)
	assert.Equal(t, 200.0, stats.TotalExpense)
	assert.Equal(t, 800.0, stats.Balance)

	require.Len(t, stats.ChartData.PieChartData, 1)
	slice := stats.ChartData.PieChartData[0]
	assert.Equal(t, "Alimentação", slice.Category)
	assert.Equal(t, 200.0, slice.Amount)
	assert.Equal(t, 100.0, slice.Percentage)
}

func TestComputeDashboardStatsIgnoresOtherMonths(t *testing.T) {
	txs := append(sampleTransactions(),
		tx(3, core.Expense, 999, "Moradia", core.NewCalendarDate(2024, 4, 30)),
		tx(4, core.Income, 999, "Trabalho", core.NewCalendarDate(2023, 5, 10)),
	)

	stats := ComputeDashboardStats(txs, core.NewCalendarDate(2024, 5, 15))
	assert.Equal(t, 1000.0, stats.TotalIncome)
	assert.Equal(t, 200.0, stats.TotalExpense)
}

func TestComputeDashboardStatsEmptySnapshot(t *testing.T) {
	stats := ComputeDashboardStats(nil, core.NewCalendarDate(2024, 5, 15))

	assert.Zero(t, stats.TotalIncome)
	assert.Zero(t, stats.TotalExpense)
	assert.Zero(t, stats.Balance)
	assert.Empty(t, stats.ChartData.PieChartData)

	require.Len(t, stats.ChartData.LineChartData, 6)
	for _, point := range stats.ChartData.LineChartData {
		assert.Zero(t, point.Income)
		assert.Zero(t, point.Expense)
	}
}

func TestPiePercentagesSumToHundred(t *testing.T) {
	txs := []core.Transaction{
		tx(1, core.Expense, 120.33, "Alimentação", core.NewCalendarDate(2024, 5, 1)),
		tx(2, core.Expense, 80.10, "Transporte", core.NewCalendarDate(2024, 5, 2)),
		tx(3, core.Expense, 33.33, "Lazer", core.NewCalendarDate(2024, 5, 3)),
		tx(4, core.Expense, 260.99, "Moradia", core.NewCalendarDate(2024, 5, 4)),
	}

	stats := ComputeDashboardStats(txs, core.NewCalendarDate(2024, 5, 15))
	require.NotEmpty(t, stats.ChartData.PieChartData)

	var sum float64
	for _, slice := range stats.ChartData.PieChartData {
		sum += slice.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestPieSortedByAmountDescending(t *testing.T) {
	txs := []core.Transaction{
		tx(1, core.Expense, 50, "Lazer", core.NewCalendarDate(2024, 5, 1)),
		tx(2, core.Expense, 300, "Moradia", core.NewCalendarDate(2024, 5, 2)),
		tx(3, core.Expense, 120, "Alimentação", core.NewCalendarDate(2024, 5, 3)),
	}

	stats := ComputeDashboardStats(txs, core.NewCalendarDate(2024, 5, 15))
	pie := stats.ChartData.PieChartData
	require.Len(t, pie, 3)
	assert.Equal(t, "Moradia", pie[0].Category)
	assert.Equal(t, "Alimentação", pie[1].Category)
	assert.Equal(t, "Lazer", pie[2].Category)
}

func TestZeroExpenseMonthHasEmptyPie(t *testing.T) {
	txs := []core.Transaction{
		tx(1, core.Income, 1000, "Trabalho", core.NewCalendarDate(2024, 5, 1)),
	}

	stats := ComputeDashboardStats(txs, core.NewCalendarDate(2024, 5, 15))
	assert.Empty(t, stats.ChartData.PieChartData)
}

func TestTrendSeriesBuckets(t *testing.T) {
	stats := ComputeDashboardStats(nil, core.NewCalendarDate(2024, 2, 10))
	points := stats.ChartData.LineChartData
	require.Len(t, points, 6)

	// Oldest first, crossing the year boundary.
	assert.Equal(t, 2023, points[0].Year)
	assert.Equal(t, 9, points[0].Month)
	assert.Equal(t, "Set", points[0].Label)
	assert.Equal(t, 2024, points[5].Year)
	assert.Equal(t, 2, points[5].Month)
	assert.Equal(t, "Fev", points[5].Label)
}

func TestTrendSeriesAccumulatesWholeSnapshot(t *testing.T) {
	txs := []core.Transaction{
		tx(1, core.Income, 500, "Trabalho", core.NewCalendarDate(2024, 3, 1)),
		tx(2, core.Expense, 100, "Lazer", core.NewCalendarDate(2024, 3, 15)),
		tx(3, core.Expense, 70, "Lazer", core.NewCalendarDate(2024, 5, 2)),
		// Outside the window, must not appear anywhere.
		tx(4, core.Income, 9999, "Trabalho", core.NewCalendarDate(2023, 1, 1)),
	}

	stats := ComputeDashboardStats(txs, core.NewCalendarDate(2024, 5, 15))
	points := stats.ChartData.LineChartData

	var totalIncome, totalExpense float64
	for _, p := range points {
		totalIncome += p.Income
		totalExpense += p.Expense
		if p.Year == 2024 && p.Month == 3 {
			assert.Equal(t, 500.0, p.Income)
			assert.Equal(t, 100.0, p.Expense)
		}
	}
	assert.Equal(t, 500.0, totalIncome)
	assert.Equal(t, 170.0, totalExpense)
}

func TestComputeDashboardStatsIsPure(t *testing.T) {
	txs := sampleTransactions()
	ref := core.NewCalendarDate(2024, 5, 15)

	first := ComputeDashboardStats(txs, ref)
	second := ComputeDashboardStats(txs, ref)
	assert.Equal(t, first, second)

	// The snapshot itself is untouched.
	assert.Equal(t, sampleTransactions(), txs)
}

func TestNaNNeverReachesOutput(t *testing.T) {
	stats := ComputeDashboardStats(nil, core.NewCalendarDate(2024, 5, 15))
	assert.False(t, math.IsNaN(stats.Balance))
	for _, p := range stats.ChartData.LineChartData {
		assert.False(t, math.IsNaN(p.Income))
		assert.False(t, math.IsNaN(p.Expense))
	}
}
