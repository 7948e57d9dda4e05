package disk

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrPartitionOOB is returned when a partition does not fit on a
	// physical device, or in the pool of a volume group.
	ErrPartitionOOB = errors.New("partition exceeds size of disk")
	// ErrInvalidRegion is returned for a candidate that ends before it starts.
	ErrInvalidRegion = errors.New("partition end sector precedes its start sector")

	ErrNoPartitionTable          = errors.New("device has no partition table")
	ErrPrimaryPartitionsExceeded = errors.New("maximum number of primary partitions exceeded")
	ErrExtendedPartitionExists   = errors.New("an extended partition already exists")
	ErrNoExtendedPartition       = errors.New("logical partitions require an extended partition")
	ErrPartitionTableFull        = errors.New("partition table is full")
	ErrUnsupportedPartitionType  = errors.New("partition type is not supported by the partition table")

	ErrPartitionNotFound = errors.New("partition not found")
	ErrDeviceNotFound    = errors.New("device not found")
)

// SectorOverlapsError is returned when a candidate region intersects an
// existing partition on a physical device.
type SectorOverlapsError struct {
	ID int
}

func (e *SectorOverlapsError) Error() string {
	return fmt.Sprintf("sector overlaps partition %d", e.ID)
}

// PartitionSizeError is returned when a partition is too small or too large
// for the filesystem that will be created on it.
type PartitionSizeError struct {
	FileSystem FileSystem
	Size       uint64
	Limit      uint64
	TooLarge   bool
}

func (e *PartitionSizeError) Error() string {
	if e.TooLarge {
		return fmt.Sprintf("partition is too large for %s: %s exceeds %s",
			e.FileSystem, humanize.IBytes(e.Size), humanize.IBytes(e.Limit))
	}
	return fmt.Sprintf("partition is too small for %s: %s is below %s",
		e.FileSystem, humanize.IBytes(e.Size), humanize.IBytes(e.Limit))
}
