// Package http provides the HTTP server and handler implementations.
//
// This file implements parsing and validation of HTMX form payloads into
// domain inputs.

package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"financeflow/internal/core"
	"financeflow/internal/ledger"
	"financeflow/internal/stats"
)

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireDeleteOrPOST is a convenience function for DELETE/POST handlers.
func RequireDeleteOrPOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on
// failure. Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Formato de requisição inválido")
	}
	return nil
}

// parseTransactionForm validates the transaction form and builds a ledger
// input. A present "id" makes it an update carrying only the submitted
// fields; otherwise all fields are required for a create.
func parseTransactionForm(form url.Values) (ledger.TransactionInput, *HTMXResponseBuilder) {
	var input ledger.TransactionInput

	if v := strings.TrimSpace(form.Get("id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return input, UnprocessableEntityError("Identificador inválido")
		}
		input.ID = id
	}

	isUpdate := input.ID != 0

	if description := sanitizeInput(form.Get("description")); description != "" {
		input.Description = &description
	} else if !isUpdate {
		return input, UnprocessableEntityError("Descrição é obrigatória")
	}

	if amount := strings.TrimSpace(form.Get("amount")); amount != "" {
		if _, err := core.ParseAmountStrict(amount); err != nil {
			return input, UnprocessableEntityError("Valor inválido")
		}
		input.Amount = &amount
	} else if !isUpdate {
		return input, UnprocessableEntityError("Valor é obrigatório")
	}

	if v := strings.TrimSpace(form.Get("type")); v != "" {
		txType, err := core.ParseTransactionType(v)
		if err != nil {
			return input, UnprocessableEntityError("Tipo inválido")
		}
		input.Type = &txType
	} else if !isUpdate {
		return input, UnprocessableEntityError("Tipo é obrigatório")
	}

	if category := sanitizeInput(form.Get("category")); category != "" {
		input.Category = &category
	} else if !isUpdate {
		return input, UnprocessableEntityError("Categoria é obrigatória")
	}

	if v := strings.TrimSpace(form.Get("date")); v != "" {
		date, err := core.ParseCalendarDate(v)
		if err != nil {
			return input, UnprocessableEntityError("Data inválida")
		}
		input.Date = &date
	} else if !isUpdate {
		return input, UnprocessableEntityError("Data é obrigatória")
	}

	return input, nil
}

// parseReportFilters maps query parameters onto report filters. Values the
// engine considers invalid fail open there, not here.
func parseReportFilters(query url.Values) stats.Filters {
	return stats.Filters{
		DateStart: strings.TrimSpace(query.Get("dateStart")),
		DateEnd:   strings.TrimSpace(query.Get("dateEnd")),
		Type:      stats.ParseTypeFilter(strings.TrimSpace(query.Get("type"))),
		Category:  sanitizeInput(query.Get("category")),
	}
}
