package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"ewintr.nl/tldw/model"
)

const (
	// HistoryKey is the key the serialized history sequence is persisted
	// under.
	HistoryKey = "summary_history"

	// HistoryLimit caps the number of retained history items. Insertion
	// beyond the limit evicts from the tail.
	HistoryLimit = 20
)

// HistoryStore is the bounded, deduplicating, most-recent-first collection of
// past summarization results. It owns the persisted history record
// exclusively.
type HistoryStore struct {
	mu     sync.Mutex
	kv     KeyValue
	logger *slog.Logger
	items  []model.HistoryItem
}

func NewHistory(kv KeyValue, logger *slog.Logger) *HistoryStore {
	return &HistoryStore{
		kv:     kv,
		logger: logger,
	}
}

// Load reads the persisted history. A corrupt record is logged, removed from
// the store and treated as absence rather than surfaced as an error.
func (h *HistoryStore) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	raw, ok, err := h.kv.Get(HistoryKey)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if !ok {
		h.items = nil
		return nil
	}

	var items []model.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		h.logger.Warn("discarding corrupt history record", slog.String("error", err.Error()))
		if err := h.kv.Remove(HistoryKey); err != nil {
			return fmt.Errorf("failed to remove corrupt history record: %w", err)
		}
		h.items = nil
		return nil
	}

	h.items = items

	return nil
}

// Items returns a copy of the history, most recent first.
func (h *HistoryStore) Items() []model.HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return copyItems(h.items)
}

// Record inserts an item at the front, removing any prior entry for the same
// URL and truncating to HistoryLimit, then persists the resulting sequence.
func (h *HistoryStore) Record(item model.HistoryItem) ([]model.HistoryItem, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]model.HistoryItem, 0, len(h.items)+1)
	next = append(next, item)
	for _, existing := range h.items {
		if existing.URL == item.URL {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > HistoryLimit {
		next = next[:HistoryLimit]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize history: %w", err)
	}
	if err := h.kv.Set(HistoryKey, string(raw)); err != nil {
		return nil, fmt.Errorf("failed to persist history: %w", err)
	}
	h.items = next

	return copyItems(h.items), nil
}

// Clear empties the history in memory and in the store, gated by the given
// confirmation policy. A declined confirmation is a full no-op, reported
// through the first return value.
func (h *HistoryStore) Clear(confirm Confirmer) (bool, error) {
	if confirm != nil && !confirm.Confirm("clear all summary history?") {
		return false, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.kv.Remove(HistoryKey); err != nil {
		return false, fmt.Errorf("failed to clear history: %w", err)
	}
	h.items = nil

	return true, nil
}

func copyItems(items []model.HistoryItem) []model.HistoryItem {
	out := make([]model.HistoryItem, len(items))
	copy(out, items)
	return out
}
