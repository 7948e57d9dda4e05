package db

import (
	"path/filepath"
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/sigreer/partplan/internal/layout"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "nested", "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRecordRun(t *testing.T) {
	d := openTestDB(t)

	results := []layout.Result{
		{
			Request: layout.Request{Device: "/dev/sda", FileSystem: "ext4", Target: "/"},
			Start:   4096,
			End:     500_000,
		},
		{
			Request: layout.Request{Device: "/dev/sda", Start: "499000", End: "600000"},
			Start:   499_000,
			End:     600_000,
			Err:     &disk.SectorOverlapsError{ID: 1},
		},
		{
			Request: layout.Request{Device: "/dev/sdb", Remove: 3},
		},
	}

	runID, err := d.RecordRun("/tmp/layout.yaml", results)
	require.NoError(t, err)
	require.Len(t, runID, 36)

	run, err := d.GetRun(runID)
	require.NoError(t, err)
	require.Equal(t, "/tmp/layout.yaml", run.LayoutPath)
	require.Equal(t, 2, run.Accepted)
	require.Equal(t, 1, run.Rejected)

	placements, err := d.GetPlacements(runID)
	require.NoError(t, err)
	require.Len(t, placements, 3)

	require.Equal(t, ActionAdd, placements[0].Action)
	require.Equal(t, OutcomeAccepted, placements[0].Outcome)
	require.Equal(t, uint64(500_000), placements[0].EndSector)
	require.Equal(t, "/", placements[0].Target)
	require.Nil(t, placements[0].PartitionNumber)

	require.Equal(t, OutcomeRejected, placements[1].Outcome)
	require.Equal(t, "sector overlaps partition 1", placements[1].Error)

	require.Equal(t, ActionRemove, placements[2].Action)
	require.NotNil(t, placements[2].PartitionNumber)
	require.Equal(t, 3, *placements[2].PartitionNumber)
}

func TestRecentRunsAndDelete(t *testing.T) {
	d := openTestDB(t)

	first, err := d.RecordRun("a.yaml", nil)
	require.NoError(t, err)
	second, err := d.RecordRun("b.yaml", nil)
	require.NoError(t, err)

	runs, err := d.GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, second, runs[0].ID)
	require.Equal(t, first, runs[1].ID)

	require.NoError(t, d.DeleteRun(first))
	require.Error(t, d.DeleteRun(first))

	run, err := d.GetRun(first)
	require.NoError(t, err)
	require.Nil(t, run)
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	d, err := New(path)
	require.NoError(t, err)
	runID, err := d.RecordRun("a.yaml", nil)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d, err = New(path)
	require.NoError(t, err)
	defer d.Close()
	require.Equal(t, path, d.Path())

	run, err := d.GetRun(runID)
	require.NoError(t, err)
	require.NotNil(t, run)
}
