// internal/heatmap/export_test.go
package heatmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEntries = 42
	tr := newTestTracker(cfg)

	tr.RecordValidation([]string{"auth", "execute"}, "h1", "1", 200, true, false)
	tr.RecordValidation([]string{"auth", "execute"}, "h1", "1", 100, true, true)
	tr.RecordValidation([]string{"auth"}, "h2", "2", 50, false, false)

	snap := tr.Export()

	assert.False(t, snap.ExportedAt.IsZero())
	assert.Equal(t, 42, snap.Config.MaxEntries)
	require.Len(t, snap.Entries, 2)
	require.Len(t, snap.AccessHistory, 2)

	key := PatternKey(PipelineID([]string{"auth", "execute"}, "1"), "h1")
	entry, ok := snap.Entries[key]
	require.True(t, ok)
	assert.Equal(t, int64(2), entry.Pattern.Frequency)
	assert.Len(t, snap.AccessHistory[key], 2)
}

func TestExport_IsDetachedCopy(t *testing.T) {
	tr := newTestTracker(DefaultConfig())
	tr.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)

	snap := tr.Export()
	key := PatternKey(PipelineID([]string{"auth"}, "1"), "h1")

	// Mutating the snapshot must not touch tracker state.
	entry := snap.Entries[key]
	entry.Pattern.Frequency = 999
	entry.Pattern.Layers[0] = "tampered"
	snap.AccessHistory[key][0] = snap.ExportedAt

	assert.Equal(t, int64(1), tr.entries[key].Pattern.Frequency)
	assert.Equal(t, "auth", tr.entries[key].Pattern.Layers[0])
}

func TestExport_Serializable(t *testing.T) {
	tr := newTestTracker(DefaultConfig())
	tr.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)

	data, err := json.Marshal(tr.Export())
	require.NoError(t, err)
	assert.Contains(t, string(data), "auth_v1:h1")
}
