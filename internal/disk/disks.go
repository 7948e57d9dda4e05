package disk

import (
	"fmt"
	"path/filepath"
)

// Disks owns every physical and logical device known to a plan.
//
// Logical devices are created and destroyed by volume group management; the
// collection only looks them up. Disks is not safe for concurrent use.
type Disks struct {
	physical []*PhysicalDisk
	logical  []*LogicalDevice
}

// NewDisks creates an empty collection.
func NewDisks() *Disks {
	return &Disks{}
}

func (ds *Disks) AddPhysical(d *PhysicalDisk) {
	ds.physical = append(ds.physical, d)
}

// AddLogical registers the device of a volume group. A device already
// registered under the same group is replaced.
func (ds *Disks) AddLogical(d *LogicalDevice) {
	for i, existing := range ds.logical {
		if existing.VolumeGroup == d.VolumeGroup {
			ds.logical[i] = d
			return
		}
	}
	ds.logical = append(ds.logical, d)
}

func (ds *Disks) PhysicalDisks() []*PhysicalDisk {
	return ds.physical
}

func (ds *Disks) LogicalDevices() []*LogicalDevice {
	return ds.logical
}

// LogicalDevice returns the device backing the named volume group.
func (ds *Disks) LogicalDevice(group string) (*LogicalDevice, bool) {
	for _, d := range ds.logical {
		if d.VolumeGroup == group {
			return d, true
		}
	}
	return nil, false
}

// Device looks up a physical or logical device by path.
func (ds *Disks) Device(path string) (Disk, bool) {
	path = filepath.Clean(path)
	for _, d := range ds.physical {
		if filepath.Clean(d.DevicePath()) == path {
			return d, true
		}
	}
	for _, d := range ds.logical {
		if filepath.Clean(d.DevicePath()) == path {
			return d, true
		}
	}
	return nil, false
}

// All returns physical devices followed by logical devices.
func (ds *Disks) All() []Disk {
	all := make([]Disk, 0, len(ds.physical)+len(ds.logical))
	for _, d := range ds.physical {
		all = append(all, d)
	}
	for _, d := range ds.logical {
		all = append(all, d)
	}
	return all
}

// ContainsMount resolves mount against d using this collection for volume
// group lookups.
func (ds *Disks) ContainsMount(d Disk, mount string) bool {
	return ContainsMount(d, mount, ds)
}

// MountOwners returns every device that contains mount, directly or through
// a volume group.
func (ds *Disks) MountOwners(mount string) []Disk {
	var owners []Disk
	for _, d := range ds.All() {
		if ContainsMount(d, mount, ds) {
			owners = append(owners, d)
		}
	}
	return owners
}

// FindPartition searches physical devices, then logical devices, for the
// partition planned to be mounted at target.
func (ds *Disks) FindPartition(target string) (string, PartitionInfo, bool) {
	if path, part, ok := FindPartition(ds.physical, target); ok {
		return path, part, true
	}
	return FindPartition(ds.logical, target)
}

// FindPartitionMut is the mutable variant of FindPartition.
func (ds *Disks) FindPartitionMut(target string) (string, *PartitionInfo, bool) {
	if path, part, ok := FindPartitionMut(ds.physical, target); ok {
		return path, part, true
	}
	return FindPartitionMut(ds.logical, target)
}

// RemovePartition stages partition number on the device at path for
// deletion. The entry stays in the partition list until the plan is
// committed.
func (ds *Disks) RemovePartition(path string, number int) error {
	d, ok := ds.Device(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrDeviceNotFound)
	}
	parts := d.Partitions()
	for i := range parts {
		if parts[i].Number == number {
			parts[i].Remove()
			return nil
		}
	}
	return fmt.Errorf("%s partition %d: %w", path, number, ErrPartitionNotFound)
}
