package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sigreer/partplan/internal/disk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sectorValue is a pflag.Value holding a sector specification.
type sectorValue struct {
	sector disk.Sector
	set    bool
}

var _ pflag.Value = (*sectorValue)(nil)

func (v *sectorValue) String() string {
	if !v.set {
		return ""
	}
	return v.sector.String()
}

func (v *sectorValue) Set(s string) error {
	sector, err := disk.ParseSector(s)
	if err != nil {
		return err
	}
	v.sector, v.set = sector, true
	return nil
}

func (v *sectorValue) Type() string {
	return "sector"
}

var sectorEnd sectorValue

var sectorCmd = &cobra.Command{
	Use:   "sector <spec>",
	Short: "Resolve a sector specification against a device geometry",
	Long: `Resolve a sector specification to an absolute sector.

Accepted forms:
  start, end      first usable sector, last sector
  50%             a fraction of the device
  100M, 2GiB      an offset in megabytes or with a unit
  4096            an absolute sector
  -100M, -0       the same, counted back from the end

With --end the range between both specs is resolved and its size printed.

Examples:
  partplan sector --sectors 2000000 50%
  partplan sector --sectors 2000000 --sector-size 4096 -- -1GiB
  partplan sector --sectors 2000000 --end end 100M`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sectors, _ := cmd.Flags().GetUint64("sectors")
		sectorSize, _ := cmd.Flags().GetUint64("sector-size")
		if sectors == 0 {
			fmt.Fprintln(os.Stderr, "Error: --sectors is required")
			os.Exit(1)
		}
		if sectorSize == 0 {
			sectorSize = loadConfig().Defaults.SectorSize
		}

		var start sectorValue
		if err := start.Set(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		s := start.sector.Resolve(sectors, sectorSize)
		if !sectorEnd.set {
			fmt.Printf("%s\t%d\n", start.sector, s)
			return
		}

		e := sectorEnd.sector.Resolve(sectors, sectorSize)
		if e < s {
			fmt.Fprintf(os.Stderr, "Error: end %d is before start %d\n", e, s)
			os.Exit(1)
		}
		fmt.Printf("%d-%d\t%d sectors\t%s\n", s, e, e-s+1, humanize.IBytes((e-s+1)*sectorSize))
	},
}

func init() {
	sectorCmd.Flags().Uint64("sectors", 0, "device size in sectors")
	sectorCmd.Flags().Uint64("sector-size", 0, "bytes per sector (default from config)")
	sectorCmd.Flags().Var(&sectorEnd, "end", "resolve a range ending at this sector spec")

	rootCmd.AddCommand(sectorCmd)
}
