// Package ledger implements the persisted ledger: the transaction collection
// and the settings aggregate, stored as two JSON documents in a key-value
// store. Every mutation rewrites the whole aggregate; there is no partial
// write and no locking beyond the single-writer assumption of a personal
// ledger.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"financeflow/internal/core"
	"financeflow/internal/kv"
)

const (
	transactionsKey = "transactions"
	settingsKey     = "settings"
)

// Store owns the two persisted aggregates. The clock is injected so
// createdAt stamping is reproducible in tests.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp createdAt on new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs a Store over the given key-value backend and bootstraps
// both aggregates: a missing transaction collection becomes empty, missing
// or corrupt settings become the defaults.
func New(ctx context.Context, backend kv.Store, opts ...Option) (*Store, error) {
	s := &Store{kv: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if _, ok, err := backend.Get(ctx, transactionsKey); err != nil {
		return nil, fmt.Errorf("bootstrap transactions: %w", err)
	} else if !ok {
		if err := s.writeTransactions(ctx, []core.Transaction{}); err != nil {
			return nil, fmt.Errorf("bootstrap transactions: %w", err)
		}
	}

	if _, err := s.Settings(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap settings: %w", err)
	}

	return s, nil
}

// Transactions returns every stored transaction sorted by date descending.
// The tie-break among equal dates is stable but otherwise unspecified;
// callers must not rely on secondary ordering. A corrupt collection resets
// to empty rather than failing the read.
func (s *Store) Transactions(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := s.kv.Get(ctx, transactionsKey)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	if !ok {
		return []core.Transaction{}, nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		slog.WarnContext(ctx, "Stored transactions are corrupt, resetting to empty",
			"error", err)
		if err := s.writeTransactions(ctx, []core.Transaction{}); err != nil {
			return nil, fmt.Errorf("reset corrupt transactions: %w", err)
		}
		return []core.Transaction{}, nil
	}
	if txs == nil {
		txs = []core.Transaction{}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

// TransactionByID returns the transaction with the given id, if present.
func (s *Store) TransactionByID(ctx context.Context, id int64) (core.Transaction, bool, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, false, err
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, true, nil
		}
	}
	return core.Transaction{}, false, nil
}

// Save creates or updates a transaction.
//
// Input with ID == 0 is a create: the next id is allocated as
// max(existing)+1, createdAt is stamped from the store clock, and missing
// optional fields default to their zero values. Input with a matching ID is
// an update: supplied fields win field by field, id and createdAt are
// immutable. An update against an id that does not exist is a silent no-op
// returning a zero Transaction.
func (s *Store) Save(ctx context.Context, input TransactionInput) (core.Transaction, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	if input.ID != 0 {
		for i := range txs {
			if txs[i].ID == input.ID {
				input.apply(&txs[i])
				if err := s.writeTransactions(ctx, txs); err != nil {
					return core.Transaction{}, err
				}
				slog.InfoContext(ctx, "Transaction updated",
					"id", txs[i].ID,
					"type", txs[i].Type,
					"amount", txs[i].Amount)
				return txs[i], nil
			}
		}
		// Unknown id: leave the collection untouched.
		slog.DebugContext(ctx, "Update for unknown transaction id ignored", "id", input.ID)
		return core.Transaction{}, nil
	}

	tx := core.Transaction{
		ID:        nextID(txs),
		CreatedAt: s.now(),
	}
	input.apply(&tx)
	txs = append(txs, tx)
	if err := s.writeTransactions(ctx, txs); err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction created",
		"id", tx.ID,
		"type", tx.Type,
		"amount", tx.Amount,
		"category", tx.Category)
	return tx, nil
}

// Delete removes the transaction with the given id. Deleting an id that
// does not exist is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return err
	}

	kept := txs[:0]
	removed := false
	for _, tx := range txs {
		if tx.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tx)
	}
	if !removed {
		slog.DebugContext(ctx, "Delete for unknown transaction id ignored", "id", id)
		return nil
	}

	if err := s.writeTransactions(ctx, kept); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// Settings returns the persisted settings. Missing or corrupt settings are
// reset to the defaults, which are also returned for the current call.
func (s *Store) Settings(ctx context.Context) (core.Settings, error) {
	raw, ok, err := s.kv.Get(ctx, settingsKey)
	if err != nil {
		return core.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	if ok {
		var settings core.Settings
		if err := json.Unmarshal(raw, &settings); err == nil {
			return settings, nil
		}
		slog.WarnContext(ctx, "Stored settings are corrupt, resetting to defaults")
	}

	defaults := core.DefaultSettings()
	if err := s.SaveSettings(ctx, defaults); err != nil {
		return core.Settings{}, fmt.Errorf("reset settings: %w", err)
	}
	return defaults, nil
}

// SaveSettings overwrites the persisted settings object wholesale.
func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.kv.Set(ctx, settingsKey, raw); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *Store) writeTransactions(ctx context.Context, txs []core.Transaction) error {
	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := s.kv.Set(ctx, transactionsKey, raw); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	return nil
}

// nextID allocates max(existing ids)+1, or 1 for an empty collection.
// Monotonic but not gap-free after deletions.
func nextID(txs []core.Transaction) int64 {
	var max int64
	for _, tx := range txs {
		if tx.ID > max {
			max = tx.ID
		}
	}
	return max + 1
}
