// Package disk decides where partitions may be placed on block devices.
//
// Physical devices and volume-group backed logical devices share the Disk
// interface. Placement, overlap and mount queries are written once against
// that interface and only branch on IsLogical where the two kinds of device
// genuinely differ.
package disk

import (
	"math"

	"github.com/charmbracelet/log"
)

// Disk is the capability set shared by physical and logical devices.
type Disk interface {
	// DevicePath is the path of the block device.
	DevicePath() string
	Model() string
	// MountPoint is where the whole device is mounted, or "".
	MountPoint() string

	// Partitions returns the partitions of the device in discovery and
	// creation order. Entries may be modified in place.
	Partitions() []PartitionInfo

	// Sectors is the total sector count; for logical devices it is the
	// capacity of the volume group pool.
	Sectors() uint64
	// SectorSize is the size of a sector in bytes.
	SectorSize() uint64
	// TableType is TableNone for logical devices.
	TableType() PartitionTable
	IsLogical() bool

	// ValidatePartitionTable checks whether a partition of the given type
	// may be added to the device's partition table.
	ValidatePartitionTable(partType PartitionType) error
	// PushPartition appends a partition, assigning it a number.
	PushPartition(partition PartitionInfo)
}

// OverlapsRegion returns the number of the first partition, in stored order,
// whose sectors intersect [start, end]. Partitions staged for removal are
// ignored.
func OverlapsRegion(d Disk, start, end uint64) (int, bool) {
	parts := d.Partitions()
	for i := range parts {
		part := &parts[i]
		if part.FlagIsEnabled(FlagRemove) {
			continue
		}
		before := start < part.StartSector && end < part.StartSector
		after := start > part.EndSector && end > part.EndSector
		if !before && !after {
			return part.Number, true
		}
	}
	return 0, false
}

// Used sums the sectors of every partition that is not staged for removal,
// saturating at math.MaxUint64.
func Used(d Disk) uint64 {
	var used uint64
	parts := d.Partitions()
	for i := range parts {
		if parts[i].FlagIsEnabled(FlagRemove) {
			continue
		}
		n := parts[i].Sectors()
		if used > math.MaxUint64-n {
			return math.MaxUint64
		}
		used += n
	}
	return used
}

// AddPartition places the candidate on d. The candidate is checked for
// overlap (physical devices only), capacity, partition table legality and
// filesystem size, in that order. The device is left untouched unless every
// check passes.
func AddPartition(d Disk, builder *PartitionBuilder) error {
	logger := log.With("device", d.DevicePath())
	logger.Debug("checking if region overlaps", "start", builder.StartSector, "end", builder.EndSector)

	if builder.EndSector < builder.StartSector {
		return ErrInvalidRegion
	}

	if !d.IsLogical() {
		if id, ok := OverlapsRegion(d, builder.StartSector, builder.EndSector); ok {
			logger.Debug("region overlaps existing partition", "partition", id)
			return &SectorOverlapsError{ID: id}
		}
	}

	if d.IsLogical() {
		// requested = span+1; compared without adding so neither side wraps
		span := builder.EndSector - builder.StartSector
		used, capacity := Used(d), d.Sectors()
		if span >= capacity || used > capacity-(span+1) {
			logger.Debug("volume group pool exhausted", "span", span, "used", used, "capacity", capacity)
			return ErrPartitionOOB
		}
	} else if builder.EndSector > d.Sectors() {
		logger.Debug("partition runs past end of device", "end", builder.EndSector, "sectors", d.Sectors())
		return ErrPartitionOOB
	}

	if err := d.ValidatePartitionTable(builder.PartType); err != nil {
		return err
	}

	partition := builder.Build()
	if err := CheckPartitionSize(partition.Sectors()*d.SectorSize(), builder.FileSystem); err != nil {
		return err
	}

	d.PushPartition(partition)
	logger.Debug("partition added", "start", partition.StartSector, "end", partition.EndSector)
	return nil
}
