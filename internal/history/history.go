package history

import (
	"encoding/json"
	"sync"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

// Storage keys
const (
	// LogKey is the well-known key the serialized entry array lives under
	LogKey = "flash_converter_logs"

	// DirsInitializedKey marks the first-run directory bootstrap as done
	DirsInitializedKey = "directories_initialized"
)

// DefaultMaxEntries bounds the history when no cap is configured.
// Oldest entries are evicted first.
const DefaultMaxEntries = 1000

// KV is the local key-value store the history persists into
type KV interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error
}

// History is the append-only audit log. Every workflow outcome in the
// app is recorded here so failures are inspectable after the fact.
// Append never surfaces storage errors to the caller; they go to the
// diagnostic logger only, because logging must not fail the primary
// operation.
type History struct {
	kv     KV
	max    int
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a history backed by kv. maxEntries <= 0 selects
// DefaultMaxEntries.
func New(kv KV, maxEntries int, logger *zap.Logger) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{kv: kv, max: maxEntries, logger: logger}
}

// Append records a new entry stamped with the current time and returns
// it. The persisted sequence is read, extended, capped and written
// back; when the store misbehaves the entry is still returned so
// callers can proceed.
func (h *History) Append(message string, severity domain.Severity) domain.LogEntry {
	entry := domain.NewLogEntry(message, severity)

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.readLocked()
	entries = append(entries, entry)
	if len(entries) > h.max {
		entries = entries[len(entries)-h.max:]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		h.logger.Error("Failed to serialize history", zap.Error(err))
		return entry
	}
	if err := h.kv.Set(LogKey, data); err != nil {
		h.logger.Error("Failed to persist history entry",
			zap.String("message", message),
			zap.Error(err))
	}
	return entry
}

// ReadAll returns the persisted entries in append order. A missing key
// or a corrupt payload yields an empty slice, never an error.
func (h *History) ReadAll() []domain.LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.readLocked()
}

// Clear replaces the persisted sequence with an empty one
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.kv.Set(LogKey, []byte("[]")); err != nil {
		h.logger.Error("Failed to clear history", zap.Error(err))
	}
}

func (h *History) readLocked() []domain.LogEntry {
	data, ok, err := h.kv.Get(LogKey)
	if err != nil {
		h.logger.Error("Failed to read history", zap.Error(err))
		return []domain.LogEntry{}
	}
	if !ok || len(data) == 0 {
		return []domain.LogEntry{}
	}

	var entries []domain.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		h.logger.Error("Discarding corrupt history payload", zap.Error(err))
		return []domain.LogEntry{}
	}
	return entries
}
