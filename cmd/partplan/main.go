package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sigreer/partplan/internal/config"
	"github.com/sigreer/partplan/internal/disk"
	"github.com/sigreer/partplan/internal/layout"
	"github.com/sigreer/partplan/internal/sysfs"
	"github.com/sigreer/partplan/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "partplan",
	Short: "Plan partition layouts across disks and LVM volume groups",
	Long: `partplan models physical disks and LVM volume groups, checks planned
partitions against overlap, capacity, partition table and filesystem size
rules, and resolves mount targets across the whole device tree.

Layouts are YAML files describing devices, volume groups and a list of
requests (add or remove). Nothing is ever written to a disk.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(loadConfig())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("partplan %s\n", version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/partplan/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration once per invocation and exits on error.
var loadConfig = func() func() *config.Config {
	var cfg *config.Config
	return func() *config.Config {
		if cfg != nil {
			return cfg
		}
		c, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = c
		return cfg
	}
}()

func setupLogging(cfg *config.Config) {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "partplan",
	}))
}

// loadDisks reads a layout file and builds its device collection, probing
// sysfs for devices without geometry.
func loadDisks(path string) (*layout.Layout, *disk.Disks) {
	cfg := loadConfig()
	l, err := layout.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ds, err := l.Disks(sysfs.New(cfg.SysfsRoot), cfg.Defaults.SectorSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Debug("layout loaded", "path", path,
		"physical", len(ds.PhysicalDisks()), "logical", len(ds.LogicalDevices()), "requests", len(l.Requests))
	return l, ds
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
