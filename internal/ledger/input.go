package ledger

import "financeflow/internal/core"

// TransactionInput carries a create or update payload. ID == 0 means create.
// Optional fields are pointers: nil leaves the existing value untouched on
// update and defaults to the zero value on create.
type TransactionInput struct {
	ID          int64
	Description *string
	Amount      *string
	Type        *core.TransactionType
	Category    *string
	Date        *core.CalendarDate
}

// apply merges the supplied fields onto tx. Precedence is defined here once:
// a non-nil input field always wins; ID and CreatedAt are never touched.
// Amount re-parses through core.ParseAmount, degrading to 0 when unparseable.
func (in TransactionInput) apply(tx *core.Transaction) {
	if in.Description != nil {
		tx.Description = *in.Description
	}
	if in.Amount != nil {
		tx.Amount = core.ParseAmount(*in.Amount)
	}
	if in.Type != nil {
		tx.Type = *in.Type
	}
	if in.Category != nil {
		tx.Category = *in.Category
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
}

// NewTransactionInput builds a fully-specified create input. Helper for the
// HTTP layer and tests; update payloads set fields directly.
func NewTransactionInput(description, amount string, txType core.TransactionType, category string, date core.CalendarDate) TransactionInput {
	return TransactionInput{
		Description: &description,
		Amount:      &amount,
		Type:        &txType,
		Category:    &category,
		Date:        &date,
	}
}
