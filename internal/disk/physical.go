package disk

// PhysicalDisk is a block device carrying an on-disk partition table.
type PhysicalDisk struct {
	Path         string          `json:"device_path"`
	ModelName    string          `json:"model"`
	Mount        string          `json:"mount_point,omitempty"`
	TotalSectors uint64          `json:"sectors"`
	BytesPerSec  uint64          `json:"sector_size"`
	Table        PartitionTable  `json:"table"`
	Parts        []PartitionInfo `json:"partitions"`
}

// NewPhysicalDisk creates an empty physical device. sectorSize must be
// positive.
func NewPhysicalDisk(path, model string, sectors, sectorSize uint64, table PartitionTable) *PhysicalDisk {
	return &PhysicalDisk{
		Path:         path,
		ModelName:    model,
		TotalSectors: sectors,
		BytesPerSec:  sectorSize,
		Table:        table,
	}
}

func (d *PhysicalDisk) DevicePath() string          { return d.Path }
func (d *PhysicalDisk) Model() string               { return d.ModelName }
func (d *PhysicalDisk) MountPoint() string          { return d.Mount }
func (d *PhysicalDisk) Partitions() []PartitionInfo { return d.Parts }
func (d *PhysicalDisk) Sectors() uint64             { return d.TotalSectors }
func (d *PhysicalDisk) SectorSize() uint64          { return d.BytesPerSec }
func (d *PhysicalDisk) TableType() PartitionTable   { return d.Table }
func (d *PhysicalDisk) IsLogical() bool             { return false }

func (d *PhysicalDisk) ValidatePartitionTable(partType PartitionType) error {
	return ValidateTable(d.Table, d.Parts, partType)
}

func (d *PhysicalDisk) PushPartition(partition PartitionInfo) {
	if partition.Number <= 0 {
		partition.Number = nextPartitionNumber(d.Table, d.Parts, partition.PartType)
	}
	d.Parts = append(d.Parts, partition)
}
