// internal/heatmap/export.go
package heatmap

import "time"

// ExportSnapshot is a full diagnostic dump of tracker state. There is no
// import path; the snapshot is for inspection and backup tooling only.
type ExportSnapshot struct {
	ExportedAt    time.Time                `json:"exported_at"`
	Config        Config                   `json:"config"`
	Entries       map[string]EntrySnapshot `json:"entries"`
	AccessHistory map[string][]time.Time   `json:"access_history"`
}

// Export copies the full pattern store, access history, and configuration.
func (t *Tracker) Export() ExportSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := ExportSnapshot{
		ExportedAt:    t.now(),
		Config:        t.cfg,
		Entries:       make(map[string]EntrySnapshot, len(t.entries)),
		AccessHistory: make(map[string][]time.Time, len(t.history)),
	}
	for key, e := range t.entries {
		snap.Entries[key] = snapshotEntry(key, e)
	}
	for key, hist := range t.history {
		snap.AccessHistory[key] = append([]time.Time(nil), hist...)
	}
	return snap
}
