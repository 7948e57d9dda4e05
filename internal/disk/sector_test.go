package disk_test

import (
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/stretchr/testify/require"
)

func TestSectorResolveExample(t *testing.T) {
	d := disk.NewPhysicalDisk("/dev/sda", "test", 2_000_000, 512, disk.TableGpt)

	require.Equal(t, uint64(4096), disk.GetSector(d, disk.Start()))
	require.Equal(t, uint64(1_995_904), disk.GetSector(d, disk.End()))
	require.Equal(t, uint64(195_312), disk.GetSector(d, disk.Megabyte(100)))
	require.Equal(t, uint64(1_995_904-1953), disk.GetSector(d, disk.MegabyteFromEnd(1)))
	require.Equal(t, uint64(12345), disk.GetSector(d, disk.Unit(12345)))
	require.Equal(t, uint64(1_995_904-100), disk.GetSector(d, disk.UnitFromEnd(100)))
	require.Equal(t, uint64(0), disk.GetSector(d, disk.Percent(0)))
	require.Equal(t, uint64(1_999_969), disk.GetSector(d, disk.Percent(65535)))

	// Resolving never touches the device.
	require.Empty(t, d.Partitions())
	require.Equal(t, uint64(2_000_000), d.Sectors())
}

func TestSectorResolveDeterministic(t *testing.T) {
	for _, s := range []disk.Sector{
		disk.Start(), disk.End(), disk.Megabyte(7), disk.MegabyteFromEnd(7),
		disk.Unit(9), disk.UnitFromEnd(9), disk.Percent(1234),
	} {
		require.Equal(t, s.Resolve(1<<24, 4096), s.Resolve(1<<24, 4096), s.String())
	}
}

func TestSectorStartBeforeEnd(t *testing.T) {
	for _, sectorSize := range []uint64{512, 4096} {
		// Anything larger than 4 MiB leaves room between the two
		// alignment regions.
		sectors := 4*1024*1024/sectorSize + 1
		require.Less(t, disk.Start().Resolve(sectors, sectorSize), disk.End().Resolve(sectors, sectorSize))
	}
}

func TestSectorFromEndStrictlyDecreasing(t *testing.T) {
	const sectors, sectorSize = 10_000_000, 512
	previousMB := disk.MegabyteFromEnd(0).Resolve(sectors, sectorSize)
	previousUnit := disk.UnitFromEnd(0).Resolve(sectors, sectorSize)
	for n := uint64(1); n < 100; n++ {
		mb := disk.MegabyteFromEnd(n).Resolve(sectors, sectorSize)
		unit := disk.UnitFromEnd(n).Resolve(sectors, sectorSize)
		require.Less(t, mb, previousMB)
		require.Less(t, unit, previousUnit)
		previousMB, previousUnit = mb, unit
	}
}

func TestParseSector(t *testing.T) {
	for input, expected := range map[string]disk.Sector{
		"start":  disk.Start(),
		"END":    disk.End(),
		"50%":    disk.Percent(32767),
		"100%":   disk.Percent(65535),
		"100M":   disk.Megabyte(100),
		"-100M":  disk.MegabyteFromEnd(100),
		"2GB":    disk.Megabyte(2000),
		"512MiB": disk.Megabyte(536),
		"4096":   disk.Unit(4096),
		"-2048":  disk.UnitFromEnd(2048),
	} {
		s, err := disk.ParseSector(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, s, input)
	}

	for _, input := range []string{"", "150%", "abc", "-x", "12.5%"} {
		_, err := disk.ParseSector(input)
		require.Error(t, err, input)
	}
}

func TestSectorString(t *testing.T) {
	require.Equal(t, "start", disk.Start().String())
	require.Equal(t, "-100M", disk.MegabyteFromEnd(100).String())
	require.Equal(t, "-7", disk.UnitFromEnd(7).String())
	require.Equal(t, "50%", disk.Percent(32767).String())
}
