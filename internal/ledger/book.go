// Package ledger owns the canonical transaction sequence and keeps its
// persisted mirror in sync.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"hisab/internal/core"
)

const (
	slotTransactions = "transactions"
	slotDarkMode     = "darkMode"
)

// Slots is the persistence substrate: a synchronous string-keyed store of
// serialized text, satisfied by storage.SlotStore.
type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Book holds the in-memory transaction sequence, newest first, plus the
// dark-mode preference. Every mutation rewrites the whole persisted slot;
// last write wins. The mutex exists because the HTTP server is concurrent,
// not because the domain needs finer coordination.
type Book struct {
	mu       sync.Mutex
	slots    Slots
	txns     []core.Transaction
	darkMode bool
}

// Open loads the persisted state once. An absent, empty or unparsable
// transactions slot silently becomes an empty sequence; only substrate
// failures surface as errors.
func Open(ctx context.Context, slots Slots) (*Book, error) {
	b := &Book{slots: slots}

	raw, ok, err := slots.Get(ctx, slotTransactions)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if ok && raw != "" {
		var txns []core.Transaction
		if err := json.Unmarshal([]byte(raw), &txns); err != nil {
			slog.WarnContext(ctx, "Unparsable transactions slot, starting empty", "error", err)
		} else {
			b.txns = txns
		}
	}

	mode, ok, err := slots.Get(ctx, slotDarkMode)
	if err != nil {
		return nil, fmt.Errorf("load dark mode: %w", err)
	}
	b.darkMode = ok && mode == "true"

	slog.InfoContext(ctx, "Ledger loaded", "transactions", len(b.txns), "dark_mode", b.darkMode)
	return b, nil
}

// Add validates the record, prepends it and persists the whole sequence.
// A non-positive amount is rejected with core.ErrInvalidAmount and leaves
// the sequence untouched.
func (b *Book) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.txns = append([]core.Transaction{tx}, b.txns...)
	if err := b.persistLocked(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"type", string(tx.Kind),
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents,
		"date", string(tx.Date))
	return nil
}

// Remove filters out every record with the given id and re-persists, even
// when nothing matched. Duplicate ids (rapid double submits on a clock id)
// are removed together.
func (b *Book) Remove(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.txns[:0:0]
	for _, tx := range b.txns {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	removed := len(b.txns) - len(kept)
	b.txns = kept

	if err := b.persistLocked(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction removed", "id", id, "removed", removed)
	return nil
}

// All returns a copy of the sequence, newest first.
func (b *Book) All() []core.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]core.Transaction, len(b.txns))
	copy(out, b.txns)
	return out
}

// Len reports the current number of stored transactions.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.txns)
}

func (b *Book) DarkMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.darkMode
}

// SetDarkMode persists the preference as "true"/"false" text.
func (b *Book) SetDarkMode(ctx context.Context, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.darkMode = on
	value := "false"
	if on {
		value = "true"
	}
	if err := b.slots.Put(ctx, slotDarkMode, value); err != nil {
		return fmt.Errorf("persist dark mode: %w", err)
	}
	return nil
}

func (b *Book) persistLocked(ctx context.Context) error {
	txns := b.txns
	if txns == nil {
		txns = []core.Transaction{}
	}
	data, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := b.slots.Put(ctx, slotTransactions, string(data)); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}
