// Package ui renders device layouts, plan results and run history for the
// terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sigreer/partplan/internal/db"
	"github.com/sigreer/partplan/internal/disk"
	"github.com/sigreer/partplan/internal/layout"
)

var (
	deviceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	logicalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	acceptedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	rejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

const partitionRow = "  %-4s %-10s %-8s %12s %12s %10s %-8s %-6s %s"

// PrintDevices writes every device of ds with its partitions.
func PrintDevices(w io.Writer, ds *disk.Disks) {
	for i, d := range ds.All() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		PrintDevice(w, d)
	}
}

// PrintDevice writes a single device header followed by its partition table.
func PrintDevice(w io.Writer, d disk.Disk) {
	style := deviceStyle
	kind := d.TableType().String()
	if d.IsLogical() {
		style = logicalStyle
		kind = "lvm"
	}

	size := humanize.IBytes(d.Sectors() * d.SectorSize())
	used := humanize.IBytes(disk.Used(d) * d.SectorSize())
	header := fmt.Sprintf("%s  %s  %s used of %s  %d sectors x %d B",
		style.Render(d.DevicePath()), kind, used, sizeStyle.Render(size), d.Sectors(), d.SectorSize())
	if d.Model() != "" {
		header += "  " + dimStyle.Render(d.Model())
	}
	if d.MountPoint() != "" {
		header += "  mounted on " + d.MountPoint()
	}
	fmt.Fprintln(w, header)

	parts := d.Partitions()
	if len(parts) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no partitions"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(partitionRow,
		"#", "TYPE", "STATE", "START", "END", "SIZE", "FS", "FLAGS", "TARGET")))
	for i := range parts {
		p := &parts[i]
		line := fmt.Sprintf(partitionRow,
			partitionNumber(p),
			partitionKind(d, p),
			partitionState(p),
			fmt.Sprint(p.StartSector),
			fmt.Sprint(p.EndSector),
			humanize.IBytes(p.Sectors()*d.SectorSize()),
			orDash(string(p.FileSystem)),
			flagString(p.Flags),
			partitionTarget(p),
		)
		if p.FlagIsEnabled(disk.FlagRemove) {
			line = removedStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func partitionNumber(p *disk.PartitionInfo) string {
	if p.Number < 0 {
		return "new"
	}
	return fmt.Sprint(p.Number)
}

func partitionKind(d disk.Disk, p *disk.PartitionInfo) string {
	if d.IsLogical() {
		return "volume"
	}
	return p.PartType.String()
}

func partitionState(p *disk.PartitionInfo) string {
	if p.IsSource() {
		return "existing"
	}
	return "planned"
}

func partitionTarget(p *disk.PartitionInfo) string {
	switch {
	case p.VolumeGroup != nil:
		return "pv:" + p.VolumeGroup.Name
	case p.Target != "":
		return p.Target
	case p.MountPoint != "":
		return p.MountPoint
	}
	return "-"
}

// flagString renders flags as a fixed-width string, one letter per flag.
func flagString(f disk.Flags) string {
	letters := []struct {
		flag disk.Flags
		char byte
	}{
		{disk.FlagSource, 's'},
		{disk.FlagBusy, 'b'},
		{disk.FlagRemove, 'r'},
		{disk.FlagFormat, 'f'},
		{disk.FlagSwapped, 'w'},
	}
	out := make([]byte, len(letters))
	for i, l := range letters {
		out[i] = '-'
		if f.Enabled(l.flag) {
			out[i] = l.char
		}
	}
	return string(out)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintResults writes one line per request followed by a summary.
func PrintResults(w io.Writer, results []layout.Result) {
	var accepted int
	for i, r := range results {
		status := acceptedStyle.Render("ok  ")
		if !r.Accepted() {
			status = rejectedStyle.Render("FAIL")
		}

		var what string
		if r.Request.Remove != 0 {
			what = fmt.Sprintf("remove %s #%d", r.Request.Device, r.Request.Remove)
		} else {
			what = fmt.Sprintf("add %s %d-%d", r.Request.Device, r.Start, r.End)
			if r.Request.FileSystem != "" {
				what += " " + r.Request.FileSystem
			}
			if r.Request.Target != "" {
				what += " -> " + r.Request.Target
			}
		}

		fmt.Fprintf(w, "%3d %s %s", i+1, status, what)
		if r.Accepted() {
			accepted++
			fmt.Fprintln(w)
		} else {
			fmt.Fprintf(w, ": %s\n", rejectedStyle.Render(r.Err.Error()))
		}
	}
	fmt.Fprintf(w, "\n%d accepted, %d rejected\n", accepted, len(results)-accepted)
}

// PrintRuns writes a run history listing.
func PrintRuns(w io.Writer, runs []*db.PlanRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-36s  %-14s  %8s  %8s  %s",
		"RUN", "WHEN", "ACCEPTED", "REJECTED", "LAYOUT")))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-14s  %8d  %8d  %s\n",
			r.ID, humanize.Time(r.StartedAt), r.Accepted, r.Rejected, orDash(r.LayoutPath))
	}
}

// PrintPlacements writes the recorded outcome of every request in a run.
func PrintPlacements(w io.Writer, run *db.PlanRun, placements []*db.Placement) {
	fmt.Fprintf(w, "Run %s (%s)\n", deviceStyle.Render(run.ID), humanize.Time(run.StartedAt))
	if run.LayoutPath != "" {
		fmt.Fprintf(w, "Layout: %s\n", run.LayoutPath)
	}
	fmt.Fprintln(w)
	for _, p := range placements {
		status := acceptedStyle.Render(p.Outcome)
		if p.Outcome != db.OutcomeAccepted {
			status = rejectedStyle.Render(p.Outcome)
		}
		if p.Action == db.ActionRemove && p.PartitionNumber != nil {
			fmt.Fprintf(w, "%3d %s remove %s #%d\n", p.Seq+1, status, p.DevicePath, *p.PartitionNumber)
			continue
		}
		fmt.Fprintf(w, "%3d %s add %s %d-%d %s", p.Seq+1, status, p.DevicePath, p.StartSector, p.EndSector, orDash(p.FileSystem))
		if p.Error != "" {
			fmt.Fprintf(w, ": %s", p.Error)
		}
		fmt.Fprintln(w)
	}
}
