package disk

import (
	"fmt"
	"strings"
)

// FileSystem names the filesystem a partition holds or will be formatted with.
// The empty value means none.
type FileSystem string

const (
	Btrfs FileSystem = "btrfs"
	Exfat FileSystem = "exfat"
	Ext2  FileSystem = "ext2"
	Ext3  FileSystem = "ext3"
	Ext4  FileSystem = "ext4"
	F2fs  FileSystem = "f2fs"
	Fat16 FileSystem = "fat16"
	Fat32 FileSystem = "fat32"
	Ntfs  FileSystem = "ntfs"
	Swap  FileSystem = "swap"
	Xfs   FileSystem = "xfs"
	Luks  FileSystem = "luks"
	Lvm   FileSystem = "lvm"
)

const (
	kib uint64 = 1024
	mib        = 1024 * kib
	gib        = 1024 * mib
	tib        = 1024 * gib
)

type sizeLimits struct {
	min, max uint64 // zero max means unbounded
}

var fsLimits = map[FileSystem]sizeLimits{
	Fat16: {min: 16 * mib, max: 4 * gib},
	Fat32: {min: 32 * mib, max: 2 * tib},
	Ext2:  {min: 8 * mib, max: 16 * tib},
	Ext3:  {min: 8 * mib, max: 16 * tib},
	Ext4:  {min: 8 * mib, max: 16 * tib},
	Btrfs: {min: 250 * mib},
	Xfs:   {min: 300 * mib},
	F2fs:  {min: 40 * mib},
	Ntfs:  {min: 1 * mib},
	Exfat: {min: 1 * mib},
	Swap:  {min: 40 * kib},
}

// ParseFileSystem maps a filesystem name to a FileSystem. "vfat" is accepted
// as fat32 and "linux-swap" as swap.
func ParseFileSystem(s string) (FileSystem, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "", "none":
		return "", nil
	case "vfat":
		return Fat32, nil
	case "linux-swap":
		return Swap, nil
	default:
		fs := FileSystem(name)
		if _, ok := fsLimits[fs]; ok || fs == Luks || fs == Lvm {
			return fs, nil
		}
		return "", fmt.Errorf("unknown filesystem: %s", s)
	}
}

// CheckPartitionSize verifies that a partition of size bytes can hold fs.
func CheckPartitionSize(size uint64, fs FileSystem) error {
	limits, ok := fsLimits[fs]
	if !ok {
		return nil
	}
	if size < limits.min {
		return &PartitionSizeError{FileSystem: fs, Size: size, Limit: limits.min}
	}
	if limits.max != 0 && size > limits.max {
		return &PartitionSizeError{FileSystem: fs, Size: size, Limit: limits.max, TooLarge: true}
	}
	return nil
}
