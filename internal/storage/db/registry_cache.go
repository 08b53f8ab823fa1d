package db

import (
	"fmt"
	"strings"
	"time"

	"svmm/internal/domain"
)

// SaveRegistryMods upserts registry metadata, stamping each row with the current time.
func (d *DB) SaveRegistryMods(mods []domain.RegistryMod) error {
	if len(mods) == 0 {
		return nil
	}

	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO registry_cache (mod_id, name, url, nexus_id, cached_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(mod_id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			nexus_id = excluded.nexus_id,
			cached_at = excluded.cached_at
	`)
	if err != nil {
		return fmt.Errorf("preparing cache insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, m := range mods {
		if _, err := stmt.Exec(m.ID, m.Name, m.URL, m.NexusID, now); err != nil {
			return fmt.Errorf("caching %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// GetRegistryMods returns cached metadata for whichever of ids are known.
// IDs match case-insensitively.
func (d *DB) GetRegistryMods(ids []string) ([]domain.RegistryMod, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := d.Query(`
		SELECT mod_id, name, url, nexus_id FROM registry_cache
		WHERE mod_id IN (`+placeholders+`)
		ORDER BY mod_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying registry cache: %w", err)
	}
	defer rows.Close()

	var mods []domain.RegistryMod
	for rows.Next() {
		var m domain.RegistryMod
		if err := rows.Scan(&m.ID, &m.Name, &m.URL, &m.NexusID); err != nil {
			return nil, fmt.Errorf("scanning registry cache: %w", err)
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}
