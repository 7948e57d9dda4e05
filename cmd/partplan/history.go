package main

import (
	"fmt"
	"os"

	"github.com/sigreer/partplan/internal/db"
	"github.com/sigreer/partplan/internal/ui"
	"github.com/spf13/cobra"
)

var historyDBPath string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded plan runs",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOut, _ := cmd.Flags().GetBool("json")
		exitOnError(listRuns(limit, jsonOut))
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the recorded outcome of each request in a run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(showRun(args[0]))
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(deleteRun(args[0]))
	},
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBPath, "db", "", "plan database path (default from config)")
	historyCmd.Flags().IntP("limit", "n", 20, "number of runs to show")
	historyCmd.Flags().Bool("json", false, "Output as JSON")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

// openDB opens the plan database at path, or the configured one when empty.
func openDB(path string) *db.DB {
	if path == "" {
		path = loadConfig().Database
	}
	database, err := db.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return database
}

func listRuns(limit int, jsonOut bool) error {
	database := openDB(historyDBPath)
	defer database.Close()

	runs, err := database.GetRecentRuns(limit)
	if err != nil {
		return err
	}
	if jsonOut {
		outputJSON(runs)
		return nil
	}
	ui.PrintRuns(os.Stdout, runs)
	return nil
}

func showRun(id string) error {
	database := openDB(historyDBPath)
	defer database.Close()

	run, err := database.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}
	placements, err := database.GetPlacements(run.ID)
	if err != nil {
		return err
	}
	ui.PrintPlacements(os.Stdout, run, placements)
	return nil
}

func deleteRun(id string) error {
	database := openDB(historyDBPath)
	defer database.Close()

	if err := database.DeleteRun(id); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", id)
	return nil
}

// exitOnError reports err and exits with status 1.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
