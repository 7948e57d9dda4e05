package disk

import "path/filepath"

// FindPartition returns the device path and a copy of the first partition,
// scanning devices then partitions in order, whose planned target is target.
// The current mount point of a partition is not considered.
func FindPartition[T Disk](disks []T, target string) (string, PartitionInfo, bool) {
	path, part, ok := FindPartitionMut(disks, target)
	if !ok {
		return "", PartitionInfo{}, false
	}
	return path, *part, true
}

// FindPartitionMut is FindPartition returning a pointer into the owning
// device's partition list, so the match can be modified in place.
func FindPartitionMut[T Disk](disks []T, target string) (string, *PartitionInfo, bool) {
	if target == "" {
		return "", nil, false
	}
	target = filepath.Clean(target)
	for _, d := range disks {
		parts := d.Partitions()
		for i := range parts {
			if parts[i].Target != "" && filepath.Clean(parts[i].Target) == target {
				return d.DevicePath(), &parts[i], true
			}
		}
	}
	return "", nil, false
}
