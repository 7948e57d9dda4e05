package disk

import (
	"io"
	"os"
	"path/filepath"
)

// AttributeStore gives access to the sysfs attributes of block devices,
// keyed by kernel device name (sda, nvme0n1, dm-0).
type AttributeStore interface {
	OpenAttribute(device, attribute string) (io.ReadCloser, error)
}

// IsRemovable reports whether the kernel flags d as removable media. When the
// device path is a symlink the link target names the device. Every failure is
// reported as not removable.
func IsRemovable(d Disk, attrs AttributeStore) bool {
	name := blockDeviceName(d.DevicePath())
	if name == "" || attrs == nil {
		return false
	}

	f, err := attrs.OpenAttribute(name, "removable")
	if err != nil {
		return false
	}
	defer f.Close()

	var b [1]byte
	if n, _ := f.Read(b[:]); n == 0 {
		return false
	}
	return b[0] == '1'
}

func blockDeviceName(path string) string {
	if path == "" {
		return ""
	}
	if target, err := os.Readlink(path); err == nil {
		path = target
	}
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
