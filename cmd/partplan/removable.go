package main

import (
	"fmt"
	"os"

	"github.com/sigreer/partplan/internal/disk"
	"github.com/sigreer/partplan/internal/sysfs"
	"github.com/spf13/cobra"
)

var removableCmd = &cobra.Command{
	Use:   "removable <device>...",
	Short: "Report whether block devices are removable media",
	Long: `Classify devices as removable or fixed from the kernel's "removable"
attribute. Symlinks such as /dev/disk/by-id/... are resolved to the kernel
device name first. Devices that cannot be read are reported as fixed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")
		store := sysfs.New(loadConfig().SysfsRoot)

		result := make(map[string]bool, len(args))
		for _, path := range args {
			d := disk.NewPhysicalDisk(path, "", 0, 0, disk.TableNone)
			result[path] = disk.IsRemovable(d, store)
		}

		if jsonOut {
			outputJSON(result)
			return
		}
		for _, path := range args {
			state := "fixed"
			if result[path] {
				state = "removable"
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\n", path, state)
		}
	},
}

func init() {
	removableCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(removableCmd)
}
