package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeflow/internal/core"
	"financeflow/internal/events"
	"financeflow/internal/export/memory"
)

func sampleTransaction() core.Transaction {
	return core.Transaction{
		ID:          1,
		Description: "Mercado",
		Amount:      150.0,
		Type:        core.Expense,
		Category:    "Alimentação",
		Date:        core.NewCalendarDate(2024, 5, 10),
	}
}

func TestHandleEventCreatedAppendsRow(t *testing.T) {
	target := memory.New()
	w := NewExportWorker(target)

	err := w.HandleEvent(context.Background(),
		events.NewLedgerEvent(events.ActionCreated, sampleTransaction()))
	require.NoError(t, err)

	rows := target.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, sampleTransaction(), rows[0])
}

func TestHandleEventUpdatedAppendsRow(t *testing.T) {
	target := memory.New()
	w := NewExportWorker(target)

	tx := sampleTransaction()
	tx.Amount = 175.0

	err := w.HandleEvent(context.Background(),
		events.NewLedgerEvent(events.ActionUpdated, tx))
	require.NoError(t, err)

	rows := target.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 175.0, rows[0].Amount)
}

func TestHandleEventDeletedIsSkipped(t *testing.T) {
	target := memory.New()
	w := NewExportWorker(target)

	err := w.HandleEvent(context.Background(),
		events.NewLedgerEvent(events.ActionDeleted, sampleTransaction()))
	require.NoError(t, err)
	assert.Empty(t, target.Rows())
}

func TestHandleEventUnknownActionIsDropped(t *testing.T) {
	target := memory.New()
	w := NewExportWorker(target)

	err := w.HandleEvent(context.Background(),
		events.NewLedgerEvent("renamed", sampleTransaction()))
	require.NoError(t, err)
	assert.Empty(t, target.Rows())
}

type failingWriter struct{}

func (failingWriter) AppendTransaction(context.Context, core.Transaction) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestHandleEventPropagatesWriterError(t *testing.T) {
	w := NewExportWorker(failingWriter{})

	err := w.HandleEvent(context.Background(),
		events.NewLedgerEvent(events.ActionCreated, sampleTransaction()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
