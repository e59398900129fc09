package http

import (
	"log/slog"
	"net/http"

	"financeflow/internal/core"
	"financeflow/internal/stats"
)

// handleReport renders the filtered report partial. Filters arrive as query
// parameters; unparseable date bounds fail open in the engine.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.svc.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions", "error", err)
		InternalServerError("Erro ao gerar relatório").Write(w)
		return
	}

	report := stats.ComputeReport(transactions, parseReportFilters(r.URL.Query()))

	rows := make([]transactionRow, 0, len(report.Transactions))
	for _, tx := range report.Transactions {
		rows = append(rows, transactionRow{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			Description: tx.Description,
			Amount:      formatBRL(tx.Amount),
			Type:        string(tx.Type),
			IsExpense:   tx.Type == core.Expense,
			Category:    tx.Category,
		})
	}

	s.render(w, r, "report_results.html", struct {
		TotalIncome  string
		TotalExpense string
		Balance      string
		NegativeBal  bool
		Count        int
		Rows         []transactionRow
	}{
		TotalIncome:  formatBRL(report.Summary.TotalIncome),
		TotalExpense: formatBRL(report.Summary.TotalExpense),
		Balance:      formatBRL(report.Summary.Balance),
		NegativeBal:  report.Summary.Balance < 0,
		Count:        len(rows),
		Rows:         rows,
	})
}
