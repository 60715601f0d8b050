package engine

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.ID)
	}
	return out
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "snapshot.json")
	findings := LoadFindings(newSampleAudit(t))

	saved, err := SaveSnapshot(path, findings)
	require.NoError(t, err)
	_, err = uuid.Parse(saved.ID)
	assert.NoError(t, err)

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.True(t, saved.CreatedAt.Equal(loaded.CreatedAt))
	assert.Equal(t, findings, loaded.Findings)
}

func TestLoadSnapshotErrors(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, bad, "{not json")
	_, err = LoadSnapshot(bad)
	assert.Error(t, err)
}

func TestCompareSnapshot(t *testing.T) {
	baseline := []Finding{
		finding("KEEP", SeverityHigh, StatusOpen),
		finding("FIXED", SeverityCritical, StatusOpen),
		finding("GONE", SeverityLow, StatusOpen),
		finding("WAS-RESOLVED", SeverityMedium, StatusResolved),
	}
	current := []Finding{
		finding("KEEP", SeverityHigh, StatusInProgress),
		finding("FIXED", SeverityCritical, StatusFixed),
		finding("WAS-RESOLVED", SeverityMedium, StatusResolved),
		finding("NEW", SeverityMedium, StatusOpen),
	}

	diff := CompareSnapshot(baseline, current)

	assert.Equal(t, []string{"NEW"}, ids(diff.New))
	assert.Equal(t, []string{"FIXED", "GONE"}, ids(diff.Fixed))
	assert.Equal(t, []string{"KEEP", "WAS-RESOLVED"}, ids(diff.Unchanged))
}

func TestCompareSnapshotEmpty(t *testing.T) {
	diff := CompareSnapshot(nil, nil)
	assert.NotNil(t, diff.New)
	assert.Empty(t, diff.New)
	assert.Empty(t, diff.Fixed)
	assert.Empty(t, diff.Unchanged)
}
