package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/user/codeaudit/pkg/jsonutil"
)

// Snapshot is a saved copy of an audit's findings used as a baseline for
// later comparison.
type Snapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Findings  []Finding `json:"findings"`
}

// NewSnapshot captures findings at the given time
func NewSnapshot(findings []Finding, at time.Time) Snapshot {
	all := make([]Finding, len(findings))
	copy(all, findings)
	return Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: at.UTC(),
		Findings:  all,
	}
}

// SaveSnapshot writes findings to path as JSON and returns the snapshot.
func SaveSnapshot(path string, findings []Finding) (Snapshot, error) {
	snap := NewSnapshot(findings, time.Now())
	data, err := jsonutil.MarshalIndent(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Snapshot{}, fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return Snapshot{}, fmt.Errorf("writing snapshot: %w", err)
	}
	return snap, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := jsonutil.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snap, nil
}

// SnapshotDiff classifies findings between a baseline and the current set.
type SnapshotDiff struct {
	New       []Finding `json:"new"`
	Fixed     []Finding `json:"fixed"`
	Unchanged []Finding `json:"unchanged"`
}

// CompareSnapshot matches findings by id. A finding is New when the
// baseline lacks its id. It is Fixed when it disappeared from current or
// moved from unresolved to resolved. Everything else is Unchanged.
// New and Unchanged hold current findings; Fixed holds the current finding
// when still present, else the baseline one.
func CompareSnapshot(baseline, current []Finding) SnapshotDiff {
	diff := SnapshotDiff{
		New:       []Finding{},
		Fixed:     []Finding{},
		Unchanged: []Finding{},
	}

	before := make(map[string]Finding, len(baseline))
	for _, f := range baseline {
		before[f.ID] = f
	}
	seen := make(map[string]bool, len(current))

	for _, f := range current {
		seen[f.ID] = true
		old, ok := before[f.ID]
		switch {
		case !ok:
			diff.New = append(diff.New, f)
		case !old.Status.IsResolved() && f.Status.IsResolved():
			diff.Fixed = append(diff.Fixed, f)
		default:
			diff.Unchanged = append(diff.Unchanged, f)
		}
	}
	for _, f := range baseline {
		if !seen[f.ID] {
			diff.Fixed = append(diff.Fixed, f)
			seen[f.ID] = true
		}
	}
	return diff
}
