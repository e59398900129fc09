package stats

import (
	"log/slog"

	"financeflow/internal/core"
)

const (
	// TypeAll matches both transaction types.
	TypeAll TypeFilter = "all"
	// TypeIncome matches income transactions only.
	TypeIncome TypeFilter = "income"
	// TypeExpense matches expense transactions only.
	TypeExpense TypeFilter = "expense"

	// CategoryAll is the sentinel matching every category.
	CategoryAll = "all"
)

// TypeFilter restricts a report to one transaction type. The zero value
// behaves like TypeAll.
type TypeFilter string

// ParseTypeFilter maps a raw filter string to a TypeFilter. Anything
// unrecognized falls back to TypeAll; report filters fail open.
func ParseTypeFilter(s string) TypeFilter {
	switch TypeFilter(s) {
	case TypeIncome:
		return TypeIncome
	case TypeExpense:
		return TypeExpense
	default:
		return TypeAll
	}
}

// Filters are the optional report criteria. Empty strings mean "not set".
// Date bounds are inclusive calendar days.
type Filters struct {
	DateStart string
	DateEnd   string
	Type      TypeFilter
	Category  string
}

// ComputeReport applies the filters as a conjunction over the snapshot,
// preserving its order, and summarizes the filtered set. An unparseable
// date bound is logged and that clause dropped; the rest still applies.
func ComputeReport(transactions []core.Transaction, filters Filters) ReportData {
	filtered := transactions

	if filters.DateStart != "" {
		if start, err := core.ParseCalendarDate(filters.DateStart); err != nil {
			slog.Warn("Invalid report start date, ignoring filter",
				"date_start", filters.DateStart, "error", err)
		} else {
			filtered = keep(filtered, func(tx core.Transaction) bool {
				return !tx.Date.Before(start)
			})
		}
	}

	if filters.DateEnd != "" {
		if end, err := core.ParseCalendarDate(filters.DateEnd); err != nil {
			slog.Warn("Invalid report end date, ignoring filter",
				"date_end", filters.DateEnd, "error", err)
		} else {
			filtered = keep(filtered, func(tx core.Transaction) bool {
				return !tx.Date.After(end)
			})
		}
	}

	switch filters.Type {
	case TypeIncome:
		filtered = keep(filtered, func(tx core.Transaction) bool { return tx.Type == core.Income })
	case TypeExpense:
		filtered = keep(filtered, func(tx core.Transaction) bool { return tx.Type == core.Expense })
	}

	if filters.Category != "" && filters.Category != CategoryAll {
		filtered = keep(filtered, func(tx core.Transaction) bool {
			return tx.Category == filters.Category
		})
	}

	totalIncome := sumByType(filtered, core.Income)
	totalExpense := sumByType(filtered, core.Expense)

	if filtered == nil {
		filtered = []core.Transaction{}
	}
	return ReportData{
		Summary: Summary{
			TotalIncome:  totalIncome,
			TotalExpense: totalExpense,
			Balance:      totalIncome - totalExpense,
		},
		Transactions: filtered,
	}
}

// keep returns a fresh slice of the transactions matching pred, preserving
// order. The input is never mutated.
func keep(transactions []core.Transaction, pred func(core.Transaction) bool) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if pred(tx) {
			out = append(out, tx)
		}
	}
	return out
}
