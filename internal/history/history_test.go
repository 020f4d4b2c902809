package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/flash-convert-go/internal/domain"
)

// failingKV simulates a broken store
type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("store broken") }
func (failingKV) Set(string, []byte) error         { return errors.New("store broken") }

func TestAppendAndReadAll(t *testing.T) {
	h := New(NewMemoryKV(), 0, nil)

	h.Append("first", domain.SeverityInfo)
	h.Append("second", domain.SeveritySuccess)

	entries := h.ReadAll()
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, domain.SeverityInfo, entries[0].Severity)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, domain.SeveritySuccess, entries[1].Severity)
	assert.NotEmpty(t, entries[0].Timestamp)
}

func TestReadAllEmpty(t *testing.T) {
	h := New(NewMemoryKV(), 0, nil)
	assert.Empty(t, h.ReadAll())
}

func TestReadAllCorruptPayload(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(LogKey, []byte("not json")))

	h := New(kv, 0, nil)
	assert.Empty(t, h.ReadAll())
}

func TestClear(t *testing.T) {
	h := New(NewMemoryKV(), 0, nil)
	h.Append("something", domain.SeverityError)

	h.Clear()
	assert.Empty(t, h.ReadAll())
}

func TestRetentionCap(t *testing.T) {
	h := New(NewMemoryKV(), 5, nil)

	for i := 0; i < 8; i++ {
		h.Append(fmt.Sprintf("entry %d", i), domain.SeverityInfo)
	}

	entries := h.ReadAll()
	require.Len(t, entries, 5)
	// Oldest entries are evicted first
	assert.Equal(t, "entry 3", entries[0].Message)
	assert.Equal(t, "entry 7", entries[4].Message)
}

func TestAppendNeverFailsCaller(t *testing.T) {
	h := New(failingKV{}, 0, nil)

	entry := h.Append("still returned", domain.SeverityWarning)
	assert.Equal(t, "still returned", entry.Message)
	assert.Empty(t, h.ReadAll())
}
