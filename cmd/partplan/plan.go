package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sigreer/partplan/internal/db"
	"github.com/sigreer/partplan/internal/layout"
	"github.com/sigreer/partplan/internal/ui"
	"github.com/spf13/cobra"
)

// PlanResponse is the JSON output of the plan command
type PlanResponse struct {
	Layout    string          `json:"layout"`
	RunID     string          `json:"run_id,omitempty"`
	Accepted  int             `json:"accepted"`
	Rejected  int             `json:"rejected"`
	Requests  []RequestResult `json:"requests"`
	Timestamp string          `json:"timestamp"`
}

// RequestResult is the JSON form of one request outcome
type RequestResult struct {
	Device     string `json:"device"`
	Action     string `json:"action"`            // "add", "remove"
	Number     int    `json:"number,omitempty"`  // removed partition
	Start      uint64 `json:"start,omitempty"`
	End        uint64 `json:"end,omitempty"`
	FileSystem string `json:"filesystem,omitempty"`
	Target     string `json:"target,omitempty"`
	Accepted   bool   `json:"accepted"`
	Error      string `json:"error,omitempty"`
}

var planCmd = &cobra.Command{
	Use:   "plan <layout>",
	Short: "Apply the requests of a layout and report each outcome",
	Long: `Build the devices described by a layout and apply its requests in order.
A rejected request is reported and skipped; later requests still run.

With --record the outcome is journaled to the plan database and can be
reviewed later with 'partplan history'.

Examples:
  partplan plan layout.yaml
  partplan plan --record layout.yaml
  partplan plan --json layout.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlan,
}

var showCmd = &cobra.Command{
	Use:   "show <layout>",
	Short: "Print the devices and partitions of a layout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		applyRequests, _ := cmd.Flags().GetBool("apply")
		l, ds := loadDisks(args[0])
		if applyRequests {
			l.Apply(ds)
		}
		ui.PrintDevices(os.Stdout, ds)
	},
}

func init() {
	planCmd.Flags().Bool("record", false, "Journal the run to the plan database")
	planCmd.Flags().String("db", "", "plan database path (default from config)")
	planCmd.Flags().Bool("json", false, "Output as JSON")
	planCmd.Flags().Bool("show", false, "Print the resulting devices after the results")

	showCmd.Flags().Bool("apply", false, "Apply the layout's requests before printing")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(showCmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	record, _ := cmd.Flags().GetBool("record")
	dbPath, _ := cmd.Flags().GetString("db")
	jsonOut, _ := cmd.Flags().GetBool("json")
	showAfter, _ := cmd.Flags().GetBool("show")

	path := args[0]
	l, ds := loadDisks(path)
	results := l.Apply(ds)

	var runID string
	if record {
		database := openDB(dbPath)
		id, err := database.RecordRun(path, results)
		database.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runID = id
	}

	if jsonOut {
		outputJSON(planResponse(path, runID, results))
	} else {
		ui.PrintResults(os.Stdout, results)
		if runID != "" {
			fmt.Printf("Recorded run %s\n", runID)
		}
		if showAfter {
			fmt.Println()
			ui.PrintDevices(os.Stdout, ds)
		}
	}

	if code := planExitCode(results); code != 0 {
		os.Exit(code)
	}
}

// planExitCode is 2 when any request was rejected, 0 otherwise.
func planExitCode(results []layout.Result) int {
	for _, r := range results {
		if !r.Accepted() {
			return 2
		}
	}
	return 0
}

func planResponse(path, runID string, results []layout.Result) PlanResponse {
	resp := PlanResponse{
		Layout:    path,
		RunID:     runID,
		Requests:  make([]RequestResult, 0, len(results)),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, r := range results {
		rr := RequestResult{
			Device:     r.Request.Device,
			Action:     db.ActionAdd,
			Start:      r.Start,
			End:        r.End,
			FileSystem: r.Request.FileSystem,
			Target:     r.Request.Target,
			Accepted:   r.Accepted(),
		}
		if r.Request.Remove != 0 {
			rr.Action = db.ActionRemove
			rr.Number = r.Request.Remove
		}
		if r.Accepted() {
			resp.Accepted++
		} else {
			resp.Rejected++
			rr.Error = r.Err.Error()
		}
		resp.Requests = append(resp.Requests, rr)
	}
	return resp
}

func outputJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
