package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"svmm/internal/domain"

	"github.com/oklog/ulid/v2"
)

// BeginSwitch records the start of a profile switch and returns its ID.
func (d *DB) BeginSwitch(from, to string) (string, error) {
	id := ulid.Make().String()
	_, err := d.Exec(`
		INSERT INTO profile_switches (id, from_profile, to_profile, phase, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, from, to, string(domain.SwitchStash), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("recording switch %s -> %s: %w", from, to, err)
	}
	return id, nil
}

// SetSwitchPhase advances a recorded switch. Reaching SwitchDone stamps finished_at.
func (d *DB) SetSwitchPhase(id string, phase domain.SwitchPhase) error {
	var finished any
	if phase == domain.SwitchDone {
		finished = time.Now().UTC().Format(time.RFC3339Nano)
	}

	res, err := d.Exec(`
		UPDATE profile_switches SET phase = ?, finished_at = COALESCE(?, finished_at)
		WHERE id = ?
	`, string(phase), finished, id)
	if err != nil {
		return fmt.Errorf("updating switch %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("switch %s not recorded", id)
	}
	return nil
}

// PendingSwitch returns the most recent switch that never finished, or nil.
func (d *DB) PendingSwitch() (*domain.SwitchRecord, error) {
	row := d.QueryRow(`
		SELECT id, from_profile, to_profile, phase, started_at, finished_at
		FROM profile_switches
		WHERE phase != ?
		ORDER BY id DESC LIMIT 1
	`, string(domain.SwitchDone))

	rec, err := scanSwitch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying pending switch: %w", err)
	}
	return rec, nil
}

// RecentSwitches returns up to limit journal entries, newest first.
func (d *DB) RecentSwitches(limit int) ([]domain.SwitchRecord, error) {
	rows, err := d.Query(`
		SELECT id, from_profile, to_profile, phase, started_at, finished_at
		FROM profile_switches
		ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying switches: %w", err)
	}
	defer rows.Close()

	var records []domain.SwitchRecord
	for rows.Next() {
		rec, err := scanSwitch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning switch: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSwitch(row rowScanner) (*domain.SwitchRecord, error) {
	var (
		rec      domain.SwitchRecord
		phase    string
		started  string
		finished sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.From, &rec.To, &phase, &started, &finished); err != nil {
		return nil, err
	}
	rec.Phase = domain.SwitchPhase(phase)

	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if finished.Valid {
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finished.String); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
	}
	return &rec, nil
}
