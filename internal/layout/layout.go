// Package layout reads partition layout files and applies the partition
// requests they contain.
//
// A layout lists the devices of a machine with their current partitions, the
// LVM volume groups built on them, and an ordered list of requests: new
// partitions or logical volumes to place, and partitions to remove.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sigreer/partplan/internal/disk"
	"gopkg.in/yaml.v3"
)

type Layout struct {
	Devices      []Device      `yaml:"devices"`
	VolumeGroups []VolumeGroup `yaml:"volume_groups,omitempty"`
	Requests     []Request     `yaml:"requests,omitempty"`
}

type Device struct {
	Path       string      `yaml:"path"`
	Model      string      `yaml:"model,omitempty"`
	Sectors    uint64      `yaml:"sectors,omitempty"`
	SectorSize uint64      `yaml:"sector_size,omitempty"`
	Table      string      `yaml:"table,omitempty"`
	MountPoint string      `yaml:"mount_point,omitempty"`
	Partitions []Partition `yaml:"partitions,omitempty"`
}

type Partition struct {
	Number      int    `yaml:"number"`
	Name        string `yaml:"name,omitempty"`
	Start       uint64 `yaml:"start"`
	End         uint64 `yaml:"end"`
	Type        string `yaml:"type,omitempty"`
	FileSystem  string `yaml:"filesystem,omitempty"`
	MountPoint  string `yaml:"mount_point,omitempty"`
	Target      string `yaml:"target,omitempty"`
	VolumeGroup string `yaml:"volume_group,omitempty"`
	Remove      bool   `yaml:"remove,omitempty"`
}

type VolumeGroup struct {
	Name string `yaml:"name"`
	// Sectors is the pool capacity. When zero it is the combined size of the
	// member partitions.
	Sectors    uint64      `yaml:"sectors,omitempty"`
	SectorSize uint64      `yaml:"sector_size,omitempty"`
	MountPoint string      `yaml:"mount_point,omitempty"`
	Volumes    []Partition `yaml:"volumes,omitempty"`
}

// Request is one planned change. Remove selects a partition number to stage
// for deletion; otherwise a partition is added between Start and End, or
// Start and Start+Size.
type Request struct {
	Device      string `yaml:"device"`
	Remove      int    `yaml:"remove,omitempty"`
	Start       string `yaml:"start,omitempty"`
	End         string `yaml:"end,omitempty"`
	Size        string `yaml:"size,omitempty"`
	Type        string `yaml:"type,omitempty"`
	FileSystem  string `yaml:"filesystem,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Target      string `yaml:"target,omitempty"`
	VolumeGroup string `yaml:"volume_group,omitempty"`
}

// Prober fills in the geometry of devices a layout does not describe.
type Prober interface {
	Geometry(device string) (sectors, sectorSize uint64, ok bool)
}

// ModelProber is implemented by probers that can also name the device.
type ModelProber interface {
	Model(device string) string
}

var ErrNoGeometry = errors.New("device geometry unknown")

// Load reads a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return Parse(data)
}

// Parse decodes a layout document. Unknown keys are rejected.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &l, nil
}

// Disks builds the device collection described by the layout. Devices
// without a sector count are probed by kernel name; prober may be nil.
func (l *Layout) Disks(prober Prober, defaultSectorSize uint64) (*disk.Disks, error) {
	ds := disk.NewDisks()

	for _, dev := range l.Devices {
		d, err := buildPhysical(dev, prober, defaultSectorSize)
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", dev.Path, err)
		}
		ds.AddPhysical(d)
	}

	for _, vg := range l.VolumeGroups {
		lv, err := buildLogical(vg, ds, defaultSectorSize)
		if err != nil {
			return nil, fmt.Errorf("volume group %s: %w", vg.Name, err)
		}
		ds.AddLogical(lv)
	}

	return ds, nil
}

func buildPhysical(dev Device, prober Prober, defaultSectorSize uint64) (*disk.PhysicalDisk, error) {
	if dev.Path == "" {
		return nil, fmt.Errorf("missing path")
	}
	table, err := disk.ParsePartitionTable(dev.Table)
	if err != nil {
		return nil, err
	}

	sectors, sectorSize := dev.Sectors, dev.SectorSize
	if sectors == 0 {
		if prober == nil {
			return nil, ErrNoGeometry
		}
		probed, probedSize, ok := prober.Geometry(filepath.Base(dev.Path))
		if !ok {
			return nil, ErrNoGeometry
		}
		sectors = probed
		if sectorSize == 0 {
			sectorSize = probedSize
		}
	}
	if sectorSize == 0 {
		sectorSize = defaultSectorSize
	}
	if sectorSize == 0 {
		return nil, fmt.Errorf("sector size must be positive")
	}

	model := dev.Model
	if model == "" && dev.Sectors == 0 {
		if mp, ok := prober.(ModelProber); ok {
			model = mp.Model(filepath.Base(dev.Path))
		}
	}

	d := disk.NewPhysicalDisk(dev.Path, model, sectors, sectorSize, table)
	d.Mount = dev.MountPoint
	for _, p := range dev.Partitions {
		info, err := p.info()
		if err != nil {
			return nil, err
		}
		d.Parts = append(d.Parts, info)
	}
	return d, nil
}

func buildLogical(vg VolumeGroup, ds *disk.Disks, defaultSectorSize uint64) (*disk.LogicalDevice, error) {
	if vg.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	sectorSize := vg.SectorSize
	if sectorSize == 0 {
		sectorSize = defaultSectorSize
	}
	if sectorSize == 0 {
		return nil, fmt.Errorf("sector size must be positive")
	}

	sectors := vg.Sectors
	if sectors == 0 {
		sectors = memberBytes(ds, vg.Name) / sectorSize
	}

	lv := disk.NewLogicalDevice(vg.Name, sectors, sectorSize)
	lv.Mount = vg.MountPoint
	for _, p := range vg.Volumes {
		info, err := p.info()
		if err != nil {
			return nil, err
		}
		lv.Volumes = append(lv.Volumes, info)
	}
	return lv, nil
}

// memberBytes is the combined size of the partitions that are physical
// volumes of group.
func memberBytes(ds *disk.Disks, group string) uint64 {
	var total uint64
	for _, d := range ds.PhysicalDisks() {
		for _, p := range d.Partitions() {
			if p.VolumeGroup != nil && p.VolumeGroup.Name == group && !p.FlagIsEnabled(disk.FlagRemove) {
				total += p.Sectors() * d.SectorSize()
			}
		}
	}
	return total
}

func (p Partition) info() (disk.PartitionInfo, error) {
	if p.End < p.Start {
		return disk.PartitionInfo{}, fmt.Errorf("partition %d: end %d precedes start %d", p.Number, p.End, p.Start)
	}
	partType, err := disk.ParsePartitionType(p.Type)
	if err != nil {
		return disk.PartitionInfo{}, fmt.Errorf("partition %d: %w", p.Number, err)
	}
	fs, err := disk.ParseFileSystem(p.FileSystem)
	if err != nil {
		return disk.PartitionInfo{}, fmt.Errorf("partition %d: %w", p.Number, err)
	}

	info := disk.PartitionInfo{
		Number:      p.Number,
		Name:        p.Name,
		StartSector: p.Start,
		EndSector:   p.End,
		Flags:       disk.FlagSource,
		PartType:    partType,
		FileSystem:  fs,
		MountPoint:  p.MountPoint,
		Target:      p.Target,
	}
	if p.MountPoint != "" {
		info.Flags |= disk.FlagBusy
	}
	if p.Remove {
		info.Flags |= disk.FlagRemove
	}
	if p.VolumeGroup != "" {
		info.VolumeGroup = &disk.VolumeGroup{Name: p.VolumeGroup}
	}
	return info, nil
}
