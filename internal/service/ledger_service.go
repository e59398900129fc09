package service

import (
	"context"
	"fmt"
	"log/slog"

	"financeflow/internal/core"
	"financeflow/internal/events"
	"financeflow/internal/ledger"
)

// Publisher sends ledger events to the broker. *events.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, event *events.LedgerEvent) error
	Close() error
}

// LedgerService orchestrates ledger mutations and event publishing. The
// ledger write is authoritative; a failed publish is logged and swallowed so
// the broker being down never loses user data.
type LedgerService struct {
	store     *ledger.Store
	publisher Publisher
}

func NewLedgerService(store *ledger.Store, publisher Publisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// Transactions returns the full ledger, date-descending.
func (s *LedgerService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.Transactions(ctx)
}

// TransactionByID looks up a single transaction.
func (s *LedgerService) TransactionByID(ctx context.Context, id int64) (core.Transaction, bool, error) {
	return s.store.TransactionByID(ctx, id)
}

// Save creates or updates a transaction and announces the mutation. An
// update addressing an unknown id is a no-op and publishes nothing.
func (s *LedgerService) Save(ctx context.Context, input ledger.TransactionInput) (core.Transaction, error) {
	saved, err := s.store.Save(ctx, input)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	if saved.ID == 0 {
		return saved, nil
	}

	action := events.ActionUpdated
	if input.ID == 0 {
		action = events.ActionCreated
	}
	s.publish(ctx, action, saved)

	return saved, nil
}

// Delete removes a transaction and announces the deletion. Deleting an
// unknown id is a no-op and publishes nothing.
func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	existing, ok, err := s.store.TransactionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if ok {
		s.publish(ctx, events.ActionDeleted, existing)
	}
	return nil
}

// Settings returns the current settings, bootstrapping defaults if needed.
func (s *LedgerService) Settings(ctx context.Context) (core.Settings, error) {
	return s.store.Settings(ctx)
}

// SaveSettings overwrites the settings record wholesale.
func (s *LedgerService) SaveSettings(ctx context.Context, settings core.Settings) error {
	return s.store.SaveSettings(ctx, settings)
}

func (s *LedgerService) publish(ctx context.Context, action string, tx core.Transaction) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No event publisher configured, skipping",
			"action", action, "transaction_id", tx.ID)
		return
	}

	if err := s.publisher.Publish(ctx, events.NewLedgerEvent(action, tx)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"action", action, "transaction_id", tx.ID, "error", err)
	}
}

// Close releases the publisher connection, if any.
func (s *LedgerService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
