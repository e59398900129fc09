package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"financeflow/internal/core"
)

type transactionRow struct {
	ID          int64
	Date        string
	Description string
	Amount      string
	Type        string
	IsExpense   bool
	Category    string
}

// handleTransactionList renders the full ledger as a table partial,
// date-descending as the store returns it.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.svc.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions", "error", err)
		InternalServerError("Erro ao carregar transações").Write(w)
		return
	}

	rows := make([]transactionRow, 0, len(transactions))
	for _, tx := range transactions {
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

	s.render(w, r, "transaction_list.html", struct {
		Rows []transactionRow
	}{Rows: rows})
}

// handleSaveTransaction creates or updates a transaction from the HTMX form.
func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	input, errResp := parseTransactionForm(r.Form)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	saved, err := s.svc.Save(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save transaction",
			"error", err, "transaction_id", input.ID)
		InternalServerError("Erro ao salvar transação").Write(w)
		return
	}

	// Updates addressing an unknown id change nothing.
	if saved.ID == 0 {
		NewHTMXResponse().
			TriggerNotification(NotificationWarning, "Transação não encontrada", 3000).
			Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Transaction saved",
		"transaction_id", saved.ID,
		"description", saved.Description,
		"amount", saved.Amount,
		"type", string(saved.Type),
		"category", saved.Category,
		"date", saved.Date.String())

	NewHTMXResponse().
		TriggerTransactionSaved(saved.ID).
		TriggerFormReset().
		TriggerSuccessNotification(fmt.Sprintf("Transação #%d salva", saved.ID)).
		Write(w)
}

// handleDeleteTransaction removes a transaction by id. Unknown ids succeed
// silently, matching the store semantics.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	raw := strings.TrimSpace(r.Form.Get("id"))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("id"))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		UnprocessableEntityError("Identificador inválido").Write(w)
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction",
			"error", err, "transaction_id", id)
		InternalServerError("Erro ao excluir transação").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Transaction deleted", "transaction_id", id)

	NewHTMXResponse().
		TriggerTransactionDeleted(id).
		TriggerSuccessNotification("Transação excluída").
		Write(w)
}
