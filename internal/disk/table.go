package disk

import "fmt"

// PartitionTable is the kind of partition table on a physical device.
type PartitionTable uint8

const (
	TableNone PartitionTable = iota
	TableMsdos
	TableGpt
)

// gptMaxEntries is the entry count of a default GPT partition array.
const gptMaxEntries = 128

func (t PartitionTable) String() string {
	switch t {
	case TableNone:
		return "none"
	case TableMsdos:
		return "msdos"
	case TableGpt:
		return "gpt"
	default:
		return fmt.Sprintf("PartitionTable(%d)", uint8(t))
	}
}

// ParsePartitionTable accepts "gpt", "msdos" (or "mbr"), and "none" or "".
func ParsePartitionTable(s string) (PartitionTable, error) {
	switch s {
	case "", "none":
		return TableNone, nil
	case "msdos", "mbr", "dos":
		return TableMsdos, nil
	case "gpt":
		return TableGpt, nil
	default:
		return TableNone, fmt.Errorf("unknown partition table: %s (valid options: gpt, msdos, none)", s)
	}
}

// ValidateTable checks whether a partition of type partType may be added to a
// table of the given kind that already holds partitions. Partitions staged
// for removal do not count.
func ValidateTable(table PartitionTable, partitions []PartitionInfo, partType PartitionType) error {
	var primary, extended, total int
	for i := range partitions {
		p := &partitions[i]
		if p.FlagIsEnabled(FlagRemove) {
			continue
		}
		total++
		switch p.PartType {
		case Primary:
			primary++
		case Extended:
			extended++
		}
	}

	switch table {
	case TableMsdos:
		switch partType {
		case Primary:
			if primary+extended >= 4 {
				return ErrPrimaryPartitionsExceeded
			}
		case Extended:
			if extended > 0 {
				return ErrExtendedPartitionExists
			}
			if primary+extended >= 4 {
				return ErrPrimaryPartitionsExceeded
			}
		case Logical:
			if extended == 0 {
				return ErrNoExtendedPartition
			}
		}
	case TableGpt:
		if partType != Primary {
			return ErrUnsupportedPartitionType
		}
		if total >= gptMaxEntries {
			return ErrPartitionTableFull
		}
	default:
		return ErrNoPartitionTable
	}
	return nil
}

// nextPartitionNumber picks the table slot for a new partition. MBR logical
// partitions are numbered from 5 upwards; every other partition takes the
// lowest free number.
func nextPartitionNumber(table PartitionTable, partitions []PartitionInfo, partType PartitionType) int {
	if table == TableMsdos && partType == Logical {
		next := 5
		for i := range partitions {
			if partitions[i].PartType == Logical && partitions[i].Number >= next {
				next = partitions[i].Number + 1
			}
		}
		return next
	}

	used := make(map[int]bool, len(partitions))
	for i := range partitions {
		used[partitions[i].Number] = true
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}
