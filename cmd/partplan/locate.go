package main

import (
	"fmt"
	"os"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/sigreer/partplan/internal/ui"
	"github.com/spf13/cobra"
)

// LocateResponse is the JSON output of the locate command
type LocateResponse struct {
	Found      bool   `json:"found"`
	Target     string `json:"target"`
	Device     string `json:"device,omitempty"`
	Number     int    `json:"number,omitempty"`
	Start      uint64 `json:"start,omitempty"`
	End        uint64 `json:"end,omitempty"`
	FileSystem string `json:"filesystem,omitempty"`
	VolumePath string `json:"volume_path,omitempty"` // logical volumes only
	Removed    bool   `json:"removed,omitempty"`
}

var locateCmd = &cobra.Command{
	Use:   "locate <layout> <target>",
	Short: "Find the partition that will be mounted at a target",
	Long: `Find the device and partition whose planned mount target matches.
Physical disks are searched before logical volume groups.

With --mut-remove the partition found is staged for removal and the
owning device is printed afterwards.

Examples:
  partplan locate layout.yaml /home
  partplan locate --json layout.yaml /
  partplan locate --mut-remove layout.yaml /var`,
	Args: cobra.ExactArgs(2),
	Run:  runLocate,
}

var mountsCmd = &cobra.Command{
	Use:   "mounts <layout> <path>",
	Short: "List devices that hold a mount point, directly or through LVM",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, ds := loadDisks(args[0])
		owners := ds.MountOwners(args[1])
		if len(owners) == 0 {
			fmt.Printf("No device contains %s\n", args[1])
			os.Exit(1)
		}
		for _, d := range owners {
			kind := "physical"
			if d.IsLogical() {
				kind = "logical"
			}
			fmt.Printf("%s\t%s\n", d.DevicePath(), kind)
		}
	},
}

func init() {
	locateCmd.Flags().Bool("json", false, "Output as JSON")
	locateCmd.Flags().Bool("mut-remove", false, "Stage the located partition for removal")

	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(mountsCmd)
}

func runLocate(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	remove, _ := cmd.Flags().GetBool("mut-remove")

	_, ds := loadDisks(args[0])
	resp := locatePartition(ds, args[1], remove)

	if jsonOut {
		outputJSON(resp)
	} else if !resp.Found {
		fmt.Printf("No partition targets %s\n", resp.Target)
	} else {
		fmt.Printf("%s partition %d (%d-%d)", resp.Device, resp.Number, resp.Start, resp.End)
		if resp.FileSystem != "" {
			fmt.Printf(" %s", resp.FileSystem)
		}
		if resp.VolumePath != "" {
			fmt.Printf(" at %s", resp.VolumePath)
		}
		fmt.Println()
		if remove {
			if d, found := ds.Device(resp.Device); found {
				fmt.Println()
				ui.PrintDevice(os.Stdout, d)
			}
		}
	}

	if !resp.Found {
		os.Exit(1)
	}
}

// locatePartition finds the partition targeting target, staging it for
// removal when remove is set.
func locatePartition(ds *disk.Disks, target string, remove bool) LocateResponse {
	resp := LocateResponse{Target: target}

	var (
		path string
		part disk.PartitionInfo
		ok   bool
	)
	if remove {
		var p *disk.PartitionInfo
		path, p, ok = ds.FindPartitionMut(target)
		if ok {
			p.Remove()
			part = *p
			resp.Removed = true
		}
	} else {
		path, part, ok = ds.FindPartition(target)
	}
	if !ok {
		return resp
	}

	resp.Found = true
	resp.Device = path
	resp.Number = part.Number
	resp.Start = part.StartSector
	resp.End = part.EndSector
	resp.FileSystem = string(part.FileSystem)

	if d, found := ds.Device(path); found && part.Name != "" {
		if lv, isLogical := d.(*disk.LogicalDevice); isLogical {
			resp.VolumePath = lv.VolumePath(part.Name)
		}
	}
	return resp
}
