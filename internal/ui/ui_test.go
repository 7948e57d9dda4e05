package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/sigreer/partplan/internal/layout"
	"github.com/sigreer/partplan/internal/ui"
	"github.com/stretchr/testify/require"
)

func TestPrintDevices(t *testing.T) {
	d := disk.NewPhysicalDisk("/dev/sda", "Samsung SSD", 2_000_000, 512, disk.TableGpt)
	d.Parts = []disk.PartitionInfo{
		{Number: 1, StartSector: 2048, EndSector: 500_000, FileSystem: disk.Ext4, Target: "/", Flags: disk.FlagSource},
		{Number: 2, StartSector: 500_001, EndSector: 1_500_000, VolumeGroup: &disk.VolumeGroup{Name: "data"}},
	}
	lv := disk.NewLogicalDevice("data", 1_000_000, 512)
	require.NoError(t, disk.AddPartition(lv, disk.NewPartitionBuilder(0, 99_999, disk.Ext4).Name("home")))

	ds := disk.NewDisks()
	ds.AddPhysical(d)
	ds.AddLogical(lv)

	var buf bytes.Buffer
	ui.PrintDevices(&buf, ds)
	out := buf.String()

	require.Contains(t, out, "/dev/sda")
	require.Contains(t, out, "Samsung SSD")
	require.Contains(t, out, "pv:data")
	require.Contains(t, out, "/dev/mapper/data")
	require.Contains(t, out, "existing")
	require.Contains(t, out, "planned")
	require.Contains(t, out, "s----")
}

func TestPrintResults(t *testing.T) {
	results := []layout.Result{
		{Request: layout.Request{Device: "/dev/sda", FileSystem: "ext4", Target: "/home"}, Start: 10, End: 20},
		{Request: layout.Request{Device: "/dev/sda", Remove: 2}},
		{Request: layout.Request{Device: "/dev/sdz"}, Err: errors.New("device not found")},
	}

	var buf bytes.Buffer
	ui.PrintResults(&buf, results)
	out := buf.String()

	require.Contains(t, out, "add /dev/sda 10-20 ext4 -> /home")
	require.Contains(t, out, "remove /dev/sda #2")
	require.Contains(t, out, "device not found")
	require.Contains(t, out, "2 accepted, 1 rejected")
}
