package http

import (
	"log/slog"
	"net/http"

	"financeflow/internal/core"
	"financeflow/internal/stats"
)

type pieRow struct {
	Category string
	Amount   string
	Percent  string
	Width    int
}

type trendRow struct {
	Label   string
	Year    int
	Income  string
	Expense string
}

type dashboardView struct {
	TotalIncome  string
	TotalExpense string
	Balance      string
	NegativeBal  bool
	MonthlyGoal  string
	GoalPct      int
	OverGoal     bool
	Pie          []pieRow
	Trend        []trendRow
}

// handleDashboardStats renders the dashboard partial: current-month totals,
// expense breakdown and the six-month trend. Recomputed from the ledger on
// every request.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.svc.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions", "error", err)
		InternalServerError("Erro ao carregar o painel").Write(w)
		return
	}

	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		settings = core.DefaultSettings()
	}

	dashboard := stats.ComputeDashboardStats(transactions, core.DateOf(s.now()))

	view := dashboardView{
		TotalIncome:  formatBRL(dashboard.TotalIncome),
		TotalExpense: formatBRL(dashboard.TotalExpense),
		Balance:      formatBRL(dashboard.Balance),
		NegativeBal:  dashboard.Balance < 0,
		MonthlyGoal:  formatBRL(settings.MonthlyGoal),
	}

	if settings.MonthlyGoal > 0 {
		pct := int(dashboard.TotalExpense / settings.MonthlyGoal * 100)
		view.OverGoal = pct > 100
		if pct > 100 {
			pct = 100
		}
		view.GoalPct = pct
	}

	for _, slice := range dashboard.ChartData.PieChartData {
		width := int(slice.Percentage + 0.5)
		if width > 0 && width < 2 { // keep tiny slices visible
			width = 2
		}
		view.Pie = append(view.Pie, pieRow{
			Category: slice.Category,
			Amount:   formatBRL(slice.Amount),
			Percent:  formatPercent(slice.Percentage),
			Width:    width,
		})
	}

	for _, point := range dashboard.ChartData.LineChartData {
		view.Trend = append(view.Trend, trendRow{
			Label:   point.Label,
			Year:    point.Year,
			Income:  formatBRL(point.Income),
			Expense: formatBRL(point.Expense),
		})
	}

	s.render(w, r, "dashboard_stats.html", view)
}
