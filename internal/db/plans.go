package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sigreer/partplan/internal/layout"
)

// RecordRun stores the results of applying a layout and returns the new
// run ID.
func (d *DB) RecordRun(layoutPath string, results []layout.Result) (string, error) {
	runID := uuid.NewString()

	var accepted, rejected int
	for _, r := range results {
		if r.Accepted() {
			accepted++
		} else {
			rejected++
		}
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO plan_runs (id, layout_path, accepted, rejected)
		VALUES (?, ?, ?, ?)
	`, runID, layoutPath, accepted, rejected); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	for seq, r := range results {
		p := placementFromResult(r)
		var errText sql.NullString
		if r.Err != nil {
			errText = sql.NullString{String: r.Err.Error(), Valid: true}
		}
		var number sql.NullInt64
		if p.PartitionNumber != nil {
			number = sql.NullInt64{Int64: int64(*p.PartitionNumber), Valid: true}
		}

		if _, err := tx.Exec(`
			INSERT INTO placements (run_id, seq, device_path, action, partition_number, start_sector, end_sector, filesystem, target, outcome, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, seq, p.DevicePath, p.Action, number, int64(p.StartSector), int64(p.EndSector),
			p.FileSystem, p.Target, p.Outcome, errText); err != nil {
			return "", fmt.Errorf("failed to record placement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

func placementFromResult(r layout.Result) Placement {
	p := Placement{
		DevicePath:  r.Request.Device,
		Action:      ActionAdd,
		StartSector: r.Start,
		EndSector:   r.End,
		FileSystem:  r.Request.FileSystem,
		Target:      r.Request.Target,
		Outcome:     OutcomeAccepted,
	}
	if r.Request.Remove != 0 {
		number := r.Request.Remove
		p.Action = ActionRemove
		p.PartitionNumber = &number
	}
	if !r.Accepted() {
		p.Outcome = OutcomeRejected
	}
	return p
}

// GetRecentRuns returns the most recent runs, newest first
func (d *DB) GetRecentRuns(limit int) ([]*PlanRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.conn.Query(`
		SELECT id, layout_path, accepted, rejected, started_at
		FROM plan_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*PlanRun
	for rows.Next() {
		r := &PlanRun{}
		var layoutPath sql.NullString
		if err := rows.Scan(&r.ID, &layoutPath, &r.Accepted, &r.Rejected, &r.StartedAt); err != nil {
			return nil, err
		}
		r.LayoutPath = layoutPath.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a run by ID, or nil if it does not exist
func (d *DB) GetRun(id string) (*PlanRun, error) {
	r := &PlanRun{}
	var layoutPath sql.NullString
	err := d.conn.QueryRow(`
		SELECT id, layout_path, accepted, rejected, started_at
		FROM plan_runs WHERE id = ?
	`, id).Scan(&r.ID, &layoutPath, &r.Accepted, &r.Rejected, &r.StartedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	r.LayoutPath = layoutPath.String
	return r, nil
}

// GetPlacements returns the placements of a run in request order
func (d *DB) GetPlacements(runID string) ([]*Placement, error) {
	rows, err := d.conn.Query(`
		SELECT id, run_id, seq, device_path, action, partition_number, start_sector, end_sector, filesystem, target, outcome, error
		FROM placements
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query placements: %w", err)
	}
	defer rows.Close()

	var placements []*Placement
	for rows.Next() {
		p := &Placement{}
		var number sql.NullInt64
		var start, end int64
		var fs, target, errText sql.NullString
		if err := rows.Scan(&p.ID, &p.RunID, &p.Seq, &p.DevicePath, &p.Action, &number,
			&start, &end, &fs, &target, &p.Outcome, &errText); err != nil {
			return nil, err
		}
		if number.Valid {
			n := int(number.Int64)
			p.PartitionNumber = &n
		}
		p.StartSector, p.EndSector = uint64(start), uint64(end)
		p.FileSystem, p.Target, p.Error = fs.String, target.String, errText.String
		placements = append(placements, p)
	}
	return placements, rows.Err()
}

// DeleteRun removes a run and its placements
func (d *DB) DeleteRun(id string) error {
	res, err := d.conn.Exec("DELETE FROM plan_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}
