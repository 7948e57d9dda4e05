package disk_test

import (
	"math"
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/stretchr/testify/require"
)

func newRegionDisk() *disk.PhysicalDisk {
	d := disk.NewPhysicalDisk("/dev/sda", "test", 2_000_000, 512, disk.TableGpt)
	d.Parts = []disk.PartitionInfo{
		{Number: 1, StartSector: 4096, EndSector: 500_000, Flags: disk.FlagSource},
		{Number: 2, StartSector: 500_001, EndSector: 900_000, Flags: disk.FlagSource},
		{Number: 3, StartSector: 900_001, EndSector: 1_000_000, Flags: disk.FlagSource | disk.FlagRemove},
	}
	return d
}

func TestOverlapsRegion(t *testing.T) {
	d := newRegionDisk()

	t.Run("PartialOverlapReportsFirstInOrder", func(t *testing.T) {
		id, ok := disk.OverlapsRegion(d, 499_000, 600_000)
		require.True(t, ok)
		require.Equal(t, 1, id)
	})

	t.Run("Containment", func(t *testing.T) {
		id, ok := disk.OverlapsRegion(d, 100, 1_900_000)
		require.True(t, ok)
		require.Equal(t, 1, id)

		id, ok = disk.OverlapsRegion(d, 600_000, 600_010)
		require.True(t, ok)
		require.Equal(t, 2, id)
	})

	t.Run("SharedBoundary", func(t *testing.T) {
		id, ok := disk.OverlapsRegion(d, 900_000, 900_000)
		require.True(t, ok)
		require.Equal(t, 2, id)
	})

	t.Run("RemovedPartitionIgnored", func(t *testing.T) {
		_, ok := disk.OverlapsRegion(d, 950_000, 960_000)
		require.False(t, ok)
	})

	t.Run("FreeSpace", func(t *testing.T) {
		_, ok := disk.OverlapsRegion(d, 0, 4095)
		require.False(t, ok)
		_, ok = disk.OverlapsRegion(d, 1_000_001, 1_100_000)
		require.False(t, ok)
	})
}

func TestOverlapsRegionSymmetric(t *testing.T) {
	overlaps := func(a, b [2]uint64) bool {
		d := disk.NewPhysicalDisk("/dev/sda", "test", 1000, 512, disk.TableGpt)
		d.Parts = []disk.PartitionInfo{{Number: 1, StartSector: b[0], EndSector: b[1]}}
		_, ok := disk.OverlapsRegion(d, a[0], a[1])
		return ok
	}

	ranges := [][2]uint64{{0, 10}, {5, 15}, {10, 10}, {11, 20}, {0, 100}, {30, 40}, {40, 50}}
	for _, a := range ranges {
		for _, b := range ranges {
			require.Equal(t, overlaps(a, b), overlaps(b, a), "%v %v", a, b)
		}
	}
}

func TestUsedExcludesRemoved(t *testing.T) {
	d := newRegionDisk()
	require.Equal(t, uint64(495_905+400_000), disk.Used(d))

	d.Parts[0].Remove()
	require.Equal(t, uint64(400_000), disk.Used(d))
}

func TestPartitionSectorsSaturates(t *testing.T) {
	full := disk.PartitionInfo{StartSector: 0, EndSector: math.MaxUint64}
	require.Equal(t, uint64(math.MaxUint64), full.Sectors())

	inverted := disk.PartitionInfo{StartSector: 10, EndSector: 5}
	require.Zero(t, inverted.Sectors())

	lv := disk.NewLogicalDevice("data", 1_000, 512)
	lv.Volumes = []disk.PartitionInfo{full, {StartSector: 0, EndSector: 9}}
	require.Equal(t, uint64(math.MaxUint64), disk.Used(lv))
}
