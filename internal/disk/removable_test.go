package disk_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/stretchr/testify/require"
)

type fakeAttributes map[string]string

func (f fakeAttributes) OpenAttribute(device, attribute string) (io.ReadCloser, error) {
	value, ok := f[device+"/"+attribute]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewBufferString(value)), nil
}

func TestIsRemovable(t *testing.T) {
	attrs := fakeAttributes{
		"sdb/removable":     "1\n",
		"sda/removable":     "0\n",
		"sdc/removable":     "",
		"nvme0n1/removable": "10",
	}

	for path, expected := range map[string]bool{
		"/dev/sdb":     true,
		"/dev/sda":     false,
		"/dev/sdc":     false,
		"/dev/sdd":     false,
		"/dev/nvme0n1": true,
		"":             false,
	} {
		d := disk.NewPhysicalDisk(path, "test", 1000, 512, disk.TableGpt)
		require.Equal(t, expected, disk.IsRemovable(d, attrs), path)
	}

	require.False(t, disk.IsRemovable(disk.NewPhysicalDisk("/dev/sdb", "test", 1000, 512, disk.TableGpt), nil))
}

func TestIsRemovableFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "usb-stick")
	require.NoError(t, os.Symlink("../../sdb", link))

	d := disk.NewPhysicalDisk(link, "stick", 1000, 512, disk.TableMsdos)
	require.True(t, disk.IsRemovable(d, fakeAttributes{"sdb/removable": "1"}))
	require.False(t, disk.IsRemovable(d, fakeAttributes{"usb-stick/removable": "1"}))
}
