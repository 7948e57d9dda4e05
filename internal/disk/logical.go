package disk

// LogicalDevice is the device backing an LVM volume group. Its partitions
// are the group's logical volumes and its sector count is the pool capacity.
type LogicalDevice struct {
	VolumeGroup  string          `json:"volume_group"`
	ModelName    string          `json:"model"`
	Mount        string          `json:"mount_point,omitempty"`
	TotalSectors uint64          `json:"sectors"`
	BytesPerSec  uint64          `json:"sector_size"`
	Encryption   *LvmEncryption  `json:"encryption,omitempty"`
	Volumes      []PartitionInfo `json:"volumes"`
}

// NewLogicalDevice creates a device for the named volume group with a pool of
// sectors sectors.
func NewLogicalDevice(group string, sectors, sectorSize uint64) *LogicalDevice {
	return &LogicalDevice{
		VolumeGroup:  group,
		ModelName:    "LVM " + group,
		TotalSectors: sectors,
		BytesPerSec:  sectorSize,
	}
}

// LogicalDevicePath is the device-mapper path of a volume group.
func LogicalDevicePath(group string) string {
	return "/dev/mapper/" + group
}

// VolumePath is the device-mapper path of a logical volume in the group.
func (d *LogicalDevice) VolumePath(name string) string {
	return LogicalDevicePath(d.VolumeGroup + "-" + name)
}

func (d *LogicalDevice) DevicePath() string          { return LogicalDevicePath(d.VolumeGroup) }
func (d *LogicalDevice) Model() string               { return d.ModelName }
func (d *LogicalDevice) MountPoint() string          { return d.Mount }
func (d *LogicalDevice) Partitions() []PartitionInfo { return d.Volumes }
func (d *LogicalDevice) Sectors() uint64             { return d.TotalSectors }
func (d *LogicalDevice) SectorSize() uint64          { return d.BytesPerSec }
func (d *LogicalDevice) TableType() PartitionTable   { return TableNone }
func (d *LogicalDevice) IsLogical() bool             { return true }

// ValidatePartitionTable accepts every partition type; volume groups have no
// on-disk table.
func (d *LogicalDevice) ValidatePartitionTable(PartitionType) error {
	return nil
}

func (d *LogicalDevice) PushPartition(partition PartitionInfo) {
	if partition.Number <= 0 {
		partition.Number = nextPartitionNumber(TableNone, d.Volumes, partition.PartType)
	}
	d.Volumes = append(d.Volumes, partition)
}
