package disk

import (
	"fmt"
	"math"
)

// Flags holds the planning state of a partition.
type Flags uint8

const (
	// FlagSource marks a partition that already exists on the device.
	FlagSource Flags = 1 << iota
	// FlagBusy marks a partition that is currently mounted or in use.
	FlagBusy
	// FlagRemove stages a partition for deletion. Removed partitions are
	// excluded from overlap and capacity accounting until the removal is
	// committed.
	FlagRemove
	// FlagFormat marks a partition that will be formatted on commit.
	FlagFormat
	// FlagSwapped marks an active swap partition.
	FlagSwapped
)

// Enabled reports whether every bit in f is set.
func (fl Flags) Enabled(f Flags) bool {
	return fl&f == f
}

// PartitionType is the MBR classification of a partition.
type PartitionType uint8

const (
	Primary PartitionType = iota
	Logical
	Extended
)

func (t PartitionType) String() string {
	switch t {
	case Primary:
		return "primary"
	case Logical:
		return "logical"
	case Extended:
		return "extended"
	default:
		return fmt.Sprintf("PartitionType(%d)", uint8(t))
	}
}

// ParsePartitionType accepts "primary", "logical" or "extended". An empty
// string is treated as primary.
func ParsePartitionType(s string) (PartitionType, error) {
	switch s {
	case "", "primary":
		return Primary, nil
	case "logical":
		return Logical, nil
	case "extended":
		return Extended, nil
	default:
		return Primary, fmt.Errorf("unknown partition type: %s (valid options: primary, logical, extended)", s)
	}
}

// LvmEncryption describes a LUKS container wrapping a physical volume.
type LvmEncryption struct {
	PhysicalVolume string `json:"physical_volume"`
	Keyfile        string `json:"keyfile,omitempty"`
}

// VolumeGroup records the membership of a partition in an LVM volume group.
type VolumeGroup struct {
	Name       string         `json:"name"`
	Encryption *LvmEncryption `json:"encryption,omitempty"`
}

// PartitionInfo is a partition on a physical device, or a logical volume on a
// volume-group backed device.
type PartitionInfo struct {
	Number      int           `json:"number"`
	Name        string        `json:"name,omitempty"`
	StartSector uint64        `json:"start_sector"`
	EndSector   uint64        `json:"end_sector"`
	Flags       Flags         `json:"flags"`
	PartType    PartitionType `json:"part_type"`
	FileSystem  FileSystem    `json:"filesystem,omitempty"`

	// MountPoint is where the partition is mounted right now, if anywhere.
	MountPoint string `json:"mount_point,omitempty"`
	// Target is where the partition should be mounted once the plan is
	// installed. It is unrelated to MountPoint.
	Target string `json:"target,omitempty"`

	VolumeGroup *VolumeGroup `json:"volume_group,omitempty"`
}

// Sectors returns the number of sectors covered by the partition, inclusive
// of both bounds. A region spanning the whole uint64 range saturates at
// math.MaxUint64; an inverted region covers nothing.
func (p *PartitionInfo) Sectors() uint64 {
	if p.EndSector < p.StartSector {
		return 0
	}
	span := p.EndSector - p.StartSector
	if span == math.MaxUint64 {
		return math.MaxUint64
	}
	return span + 1
}

// FlagIsEnabled reports whether the given flag is set on the partition.
func (p *PartitionInfo) FlagIsEnabled(f Flags) bool {
	return p.Flags.Enabled(f)
}

// Remove stages the partition for deletion.
func (p *PartitionInfo) Remove() {
	p.Flags |= FlagRemove
}

// IsSource reports whether the partition was discovered on the device rather
// than added by the plan.
func (p *PartitionInfo) IsSource() bool {
	return p.Flags.Enabled(FlagSource)
}
