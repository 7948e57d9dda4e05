package disk_test

import (
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/stretchr/testify/require"
)

func newMountDisks() (*disk.Disks, *disk.PhysicalDisk, *disk.LogicalDevice) {
	ds := disk.NewDisks()

	sda := disk.NewPhysicalDisk("/dev/sda", "ssd", 2_000_000, 512, disk.TableGpt)
	sda.Parts = []disk.PartitionInfo{
		{Number: 1, StartSector: 4096, EndSector: 200_000, MountPoint: "/boot/efi", FileSystem: disk.Fat32},
		{Number: 2, StartSector: 200_001, EndSector: 1_900_000, VolumeGroup: &disk.VolumeGroup{Name: "data"}},
	}
	ds.AddPhysical(sda)

	data := disk.NewLogicalDevice("data", 1_700_000, 512)
	data.Volumes = []disk.PartitionInfo{
		{Number: 1, Name: "root", StartSector: 0, EndSector: 999_999, MountPoint: "/"},
		{Number: 2, Name: "home", StartSector: 1_000_000, EndSector: 1_600_000, Target: "/home"},
	}
	ds.AddLogical(data)

	return ds, sda, data
}

func TestContainsMount(t *testing.T) {
	ds, sda, data := newMountDisks()

	require.True(t, ds.ContainsMount(sda, "/boot/efi"))
	require.True(t, ds.ContainsMount(sda, "/boot/efi/"))
	require.True(t, ds.ContainsMount(sda, "/"))
	require.True(t, ds.ContainsMount(data, "/"))
	require.False(t, ds.ContainsMount(sda, "/srv"))

	// Targets are plans, not mounts.
	require.False(t, ds.ContainsMount(sda, "/home"))

	// Without a lookup the volume group cannot be followed.
	require.False(t, disk.ContainsMount(sda, "/", nil))
}

func TestContainsMountWholeDevice(t *testing.T) {
	ds := disk.NewDisks()
	raw := disk.NewLogicalDevice("raw", 1000, 512)
	raw.Mount = "/mnt/raw"
	raw.Volumes = []disk.PartitionInfo{{Number: 1, MountPoint: "/mnt/other"}}
	ds.AddLogical(raw)

	require.True(t, ds.ContainsMount(raw, "/mnt/raw"))
	require.True(t, ds.ContainsMount(raw, "/mnt/other"))
	require.False(t, ds.ContainsMount(raw, "/mnt"))
}

func TestContainsMountMissingGroup(t *testing.T) {
	ds := disk.NewDisks()
	sdb := disk.NewPhysicalDisk("/dev/sdb", "hdd", 1000, 512, disk.TableGpt)
	sdb.Parts = []disk.PartitionInfo{{Number: 1, VolumeGroup: &disk.VolumeGroup{Name: "gone"}}}
	ds.AddPhysical(sdb)

	require.False(t, ds.ContainsMount(sdb, "/"))
}

func TestContainsMountCycle(t *testing.T) {
	ds := disk.NewDisks()

	a := disk.NewLogicalDevice("a", 1000, 512)
	a.Volumes = []disk.PartitionInfo{{Number: 1, VolumeGroup: &disk.VolumeGroup{Name: "b"}}}
	b := disk.NewLogicalDevice("b", 1000, 512)
	b.Volumes = []disk.PartitionInfo{
		{Number: 1, VolumeGroup: &disk.VolumeGroup{Name: "a"}},
		{Number: 2, VolumeGroup: &disk.VolumeGroup{Name: "b"}},
		{Number: 3, MountPoint: "/srv"},
	}
	ds.AddLogical(a)
	ds.AddLogical(b)

	require.False(t, ds.ContainsMount(a, "/nowhere"))
	require.True(t, ds.ContainsMount(a, "/srv"))
}

func TestMountOwners(t *testing.T) {
	ds, _, _ := newMountDisks()

	var paths []string
	for _, d := range ds.MountOwners("/") {
		paths = append(paths, d.DevicePath())
	}
	require.Equal(t, []string{"/dev/sda", "/dev/mapper/data"}, paths)
	require.Empty(t, ds.MountOwners("/var"))
}
