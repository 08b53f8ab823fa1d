package db

import "fmt"

func (d *DB) migrate() error {
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	migrations := []func(*DB) error{
		migrateRegistryCache,
		migrateSwitchJournal,
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](d); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (d *DB) SchemaVersion() (int, error) {
	var version int
	if err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

func migrateRegistryCache(d *DB) error {
	_, err := d.Exec(`
		CREATE TABLE registry_cache (
			mod_id TEXT PRIMARY KEY COLLATE NOCASE,
			name TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			nexus_id INTEGER NOT NULL DEFAULT 0,
			cached_at TEXT NOT NULL
		)
	`)
	return err
}

func migrateSwitchJournal(d *DB) error {
	statements := []string{
		`CREATE TABLE profile_switches (
			id TEXT PRIMARY KEY,
			from_profile TEXT NOT NULL,
			to_profile TEXT NOT NULL,
			phase TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE INDEX idx_profile_switches_phase ON profile_switches(phase)`,
	}

	for _, stmt := range statements {
		if _, err := d.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt, err)
		}
	}
	return nil
}
