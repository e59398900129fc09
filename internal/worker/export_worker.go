package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financeflow/internal/events"
	"financeflow/internal/export"
)

// ExportWorker mirrors ledger mutations into an export target. Events carry
// the full transaction snapshot, so the worker never reads the ledger back.
type ExportWorker struct {
	writer export.TransactionWriter
}

func NewExportWorker(writer export.TransactionWriter) *ExportWorker {
	return &ExportWorker{writer: writer}
}

// HandleEvent processes a single ledger event. Creates and updates append a
// row to the export target; deletions are logged and skipped since the
// spreadsheet is an append-only journal.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *events.LedgerEvent) error {
	switch event.Action {
	case events.ActionCreated, events.ActionUpdated:
		return w.appendTransaction(ctx, event)
	case events.ActionDeleted:
		slog.InfoContext(ctx, "Skipping deletion, export target is append-only",
			"transaction_id", event.Transaction.ID)
		return nil
	default:
		slog.WarnContext(ctx, "Dropping event with unknown action",
			"action", event.Action,
			"transaction_id", event.Transaction.ID)
		return nil
	}
}

func (w *ExportWorker) appendTransaction(ctx context.Context, event *events.LedgerEvent) error {
	ref, err := w.writer.AppendTransaction(ctx, event.Transaction)
	if err != nil {
		return fmt.Errorf("append transaction %d: %w", event.Transaction.ID, err)
	}

	slog.InfoContext(ctx, "Exported transaction",
		"action", event.Action,
		"transaction_id", event.Transaction.ID,
		"sheets_ref", ref)

	return nil
}
