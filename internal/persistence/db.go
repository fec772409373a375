// Package persistence provides SQLite-based storage for the economy's
// save/load round trip.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/starlanes/internal/engine"
	"github.com/talgya/starlanes/internal/market"
)

// DB wraps a SQLite connection for engine state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ledgers (
		location_id TEXT PRIMARY KEY,
		faction_id TEXT NOT NULL,
		profile_id TEXT NOT NULL,
		population REAL NOT NULL,
		tech_level INTEGER NOT NULL,
		market_json TEXT NOT NULL,
		states_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS engine_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveEngine writes a full engine snapshot (full replace, one transaction).
func (db *DB) SaveEngine(snap engine.Snapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ledgers"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO ledgers
		(location_id, faction_id, profile_id, population, tech_level, market_json, states_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ls := range snap.Ledgers {
		marketJSON, err := json.Marshal(ls.Market)
		if err != nil {
			return fmt.Errorf("marshal market profile %s: %w", ls.LocationID, err)
		}
		statesJSON, err := json.Marshal(ls.States)
		if err != nil {
			return fmt.Errorf("marshal states %s: %w", ls.LocationID, err)
		}
		if _, err := stmt.Exec(
			ls.LocationID, ls.FactionID, ls.ProfileID,
			ls.Population, ls.TechLevel,
			string(marketJSON), string(statesJSON),
		); err != nil {
			return fmt.Errorf("insert ledger %s: %w", ls.LocationID, err)
		}
	}

	for key, value := range map[string]uint64{
		"tick":              snap.Tick,
		"last_refresh_tick": snap.LastRefreshTick,
		"last_decay_tick":   snap.LastDecayTick,
	} {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO engine_meta (key, value) VALUES (?, ?)",
			key, strconv.FormatUint(value, 10),
		); err != nil {
			return fmt.Errorf("save meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("engine state saved", "tick", snap.Tick, "ledgers", len(snap.Ledgers))
	return nil
}

// LoadEngine reads the saved engine snapshot. The boolean reports whether a
// save exists at all.
func (db *DB) LoadEngine() (engine.Snapshot, bool, error) {
	var snap engine.Snapshot

	tick, ok, err := db.meta("tick")
	if err != nil {
		return snap, false, err
	}
	if !ok {
		return snap, false, nil
	}
	snap.Tick = tick
	if snap.LastRefreshTick, _, err = db.meta("last_refresh_tick"); err != nil {
		return snap, false, err
	}
	if snap.LastDecayTick, _, err = db.meta("last_decay_tick"); err != nil {
		return snap, false, err
	}

	rows, err := db.conn.Queryx(`SELECT location_id, faction_id, profile_id,
		population, tech_level, market_json, states_json
		FROM ledgers ORDER BY location_id`)
	if err != nil {
		return snap, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ls                     market.Snapshot
			marketJSON, statesJSON string
		)
		if err := rows.Scan(&ls.LocationID, &ls.FactionID, &ls.ProfileID,
			&ls.Population, &ls.TechLevel, &marketJSON, &statesJSON); err != nil {
			return snap, false, err
		}
		if err := json.Unmarshal([]byte(marketJSON), &ls.Market); err != nil {
			return snap, false, fmt.Errorf("unmarshal market profile %s: %w", ls.LocationID, err)
		}
		if err := json.Unmarshal([]byte(statesJSON), &ls.States); err != nil {
			return snap, false, fmt.Errorf("unmarshal states %s: %w", ls.LocationID, err)
		}
		snap.Ledgers = append(snap.Ledgers, ls)
	}
	if err := rows.Err(); err != nil {
		return snap, false, err
	}

	slog.Info("engine state loaded", "tick", snap.Tick, "ledgers", len(snap.Ledgers))
	return snap, true, nil
}

// HasState reports whether a saved engine snapshot exists.
func (db *DB) HasState() bool {
	_, ok, err := db.meta("tick")
	return err == nil && ok
}

func (db *DB) meta(key string) (uint64, bool, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM engine_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse meta %s: %w", key, err)
	}
	return n, true, nil
}
