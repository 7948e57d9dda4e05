package disk

import "path/filepath"

// LogicalLookup resolves a volume group name to its logical device. It is the
// read-only view of a device collection that mount resolution needs.
type LogicalLookup interface {
	LogicalDevice(group string) (*LogicalDevice, bool)
}

// ContainsMount reports whether mount is the mount point of d, of one of its
// partitions, or (following volume group membership through lookup) of a
// logical device backed by one of its partitions. lookup may be nil.
//
// A whole-device mount point only short-circuits on a match: when d is
// mounted somewhere else its partitions are still searched.
func ContainsMount(d Disk, mount string, lookup LogicalLookup) bool {
	return containsMount(d, filepath.Clean(mount), lookup, make(map[string]bool))
}

func containsMount(d Disk, mount string, lookup LogicalLookup, visited map[string]bool) bool {
	visited[d.DevicePath()] = true

	if m := d.MountPoint(); m != "" && filepath.Clean(m) == mount {
		return true
	}

	parts := d.Partitions()
	for i := range parts {
		part := &parts[i]
		if part.MountPoint != "" && filepath.Clean(part.MountPoint) == mount {
			return true
		}
		if part.VolumeGroup == nil || lookup == nil {
			continue
		}
		lv, ok := lookup.LogicalDevice(part.VolumeGroup.Name)
		if !ok || visited[lv.DevicePath()] {
			continue
		}
		if containsMount(lv, mount, lookup, visited) {
			return true
		}
	}
	return false
}
