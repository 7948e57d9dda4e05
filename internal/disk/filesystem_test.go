package disk_test

import (
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/stretchr/testify/require"
)

func TestCheckPartitionSize(t *testing.T) {
	const mib = 1024 * 1024

	require.NoError(t, disk.CheckPartitionSize(1, ""))
	require.NoError(t, disk.CheckPartitionSize(1, disk.Lvm))
	require.NoError(t, disk.CheckPartitionSize(512*mib, disk.Fat32))
	require.NoError(t, disk.CheckPartitionSize(8*mib, disk.Ext4))

	var sizeErr *disk.PartitionSizeError
	require.ErrorAs(t, disk.CheckPartitionSize(8*mib, disk.Btrfs), &sizeErr)
	require.False(t, sizeErr.TooLarge)
	require.Equal(t, uint64(250*mib), sizeErr.Limit)

	require.ErrorAs(t, disk.CheckPartitionSize(5*1024*mib, disk.Fat16), &sizeErr)
	require.True(t, sizeErr.TooLarge)
	require.Equal(t, "partition is too large for fat16: 5.0 GiB exceeds 4.0 GiB", sizeErr.Error())
}

func TestParseFileSystem(t *testing.T) {
	for input, expected := range map[string]disk.FileSystem{
		"ext4":       disk.Ext4,
		"VFAT":       disk.Fat32,
		"linux-swap": disk.Swap,
		"lvm":        disk.Lvm,
		"":           "",
	} {
		fs, err := disk.ParseFileSystem(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, fs, input)
	}

	_, err := disk.ParseFileSystem("zfs")
	require.Error(t, err)
}
