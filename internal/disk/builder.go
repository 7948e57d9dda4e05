package disk

// PartitionBuilder describes a candidate partition. It is turned into a
// PartitionInfo by AddPartition once every placement check has passed.
type PartitionBuilder struct {
	StartSector uint64
	EndSector   uint64
	FileSystem  FileSystem
	PartType    PartitionType

	name        string
	flags       Flags
	target      string
	volumeGroup *VolumeGroup
}

// NewPartitionBuilder starts a candidate spanning [start, end].
func NewPartitionBuilder(start, end uint64, fs FileSystem) *PartitionBuilder {
	return &PartitionBuilder{
		StartSector: start,
		EndSector:   end,
		FileSystem:  fs,
		PartType:    Primary,
	}
}

func (b *PartitionBuilder) Name(name string) *PartitionBuilder {
	b.name = name
	return b
}

func (b *PartitionBuilder) PartitionType(t PartitionType) *PartitionBuilder {
	b.PartType = t
	return b
}

// Mount sets the planned mount target.
func (b *PartitionBuilder) Mount(target string) *PartitionBuilder {
	b.target = target
	return b
}

// LogicalVolume makes the partition a physical volume of the named group.
func (b *PartitionBuilder) LogicalVolume(group string, encryption *LvmEncryption) *PartitionBuilder {
	b.volumeGroup = &VolumeGroup{Name: group, Encryption: encryption}
	return b
}

// Flags adds extra planning flags to the built partition.
func (b *PartitionBuilder) Flags(f Flags) *PartitionBuilder {
	b.flags |= f
	return b
}

// Build finalizes the candidate. The number is left at -1; devices assign a
// table slot when the partition is pushed.
func (b *PartitionBuilder) Build() PartitionInfo {
	return PartitionInfo{
		Number:      -1,
		Name:        b.name,
		StartSector: b.StartSector,
		EndSector:   b.EndSector,
		Flags:       b.flags | FlagFormat,
		PartType:    b.PartType,
		FileSystem:  b.FileSystem,
		Target:      b.target,
		VolumeGroup: b.volumeGroup,
	}
}
