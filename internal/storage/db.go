package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"invdash/internal"
)

// DB is the session store: the working inventory between CLI invocations plus
// a log of ingestion runs.
type DB struct {
	conn *sqlx.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS notebooks (
  position INTEGER PRIMARY KEY,
  serial_number TEXT NOT NULL,
  model TEXT NOT NULL,
  status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notebooks_serial ON notebooks(serial_number);

CREATE TABLE IF NOT EXISTS handhelds (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  serial_number TEXT NOT NULL,
  status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_handhelds_serial ON handhelds(serial_number);

CREATE TABLE IF NOT EXISTS printers (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  ip_address TEXT NOT NULL,
  serial_number TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_printers_serial ON printers(serial_number);

CREATE TABLE IF NOT EXISTS runs (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  source TEXT NOT NULL,
  content_hash TEXT NOT NULL,
  notebooks INTEGER NOT NULL,
  handhelds INTEGER NOT NULL,
  printers INTEGER NOT NULL,
  missing_sheets TEXT NOT NULL,
  duration_ms INTEGER NOT NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS locks (
  name TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

const (
	generationKey  = "inventory.generation"
	ingestLockName = "ingest"
)

var (
	ErrLocked   = errors.New("session store is locked by a running ingestion")
	ErrConflict = errors.New("session inventory changed since it was loaded")
)

// LoadSession returns the stored inventory and its generation. The generation
// moves on every write and guards ReplaceInventoryIf.
func (d *DB) LoadSession() (internal.Inventory, int64, error) {
	tx, err := d.conn.Beginx()
	if err != nil {
		return internal.Inventory{}, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	gen, err := generation(tx)
	if err != nil {
		return internal.Inventory{}, 0, err
	}
	inv := internal.Inventory{
		Notebooks: []internal.Notebook{},
		Handhelds: []internal.Handheld{},
		Printers:  []internal.Printer{},
	}
	if err := tx.Select(&inv.Notebooks, `SELECT serial_number, model, status FROM notebooks ORDER BY position`); err != nil {
		return internal.Inventory{}, 0, err
	}
	if err := tx.Select(&inv.Handhelds, `SELECT id, serial_number, status FROM handhelds ORDER BY position`); err != nil {
		return internal.Inventory{}, 0, err
	}
	if err := tx.Select(&inv.Printers, `SELECT id, ip_address, serial_number FROM printers ORDER BY position`); err != nil {
		return internal.Inventory{}, 0, err
	}
	return inv, gen, tx.Commit()
}

func (d *DB) LoadInventory() (internal.Inventory, error) {
	inv, _, err := d.LoadSession()
	return inv, err
}

// RecordIngest stores a freshly ingested inventory and its run row in one
// transaction and returns the new generation.
func (d *DB) RecordIngest(inv internal.Inventory, run internal.RunRecord) (int64, error) {
	tx, err := d.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	gen, err := replace(tx, inv)
	if err != nil {
		return 0, err
	}
	if run.MissingSheets == "" {
		run.MissingSheets = "[]"
	}
	if _, err := tx.NamedExec(`
INSERT INTO runs (id, source, content_hash, notebooks, handhelds, printers, missing_sheets, duration_ms)
VALUES (:id, :source, :content_hash, :notebooks, :handhelds, :printers, :missing_sheets, :duration_ms)
`, run); err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return gen, tx.Commit()
}

// ReplaceInventoryIf writes an edited inventory back, provided nobody wrote the
// store since expected was read and no ingestion holds the lock.
func (d *DB) ReplaceInventoryIf(inv internal.Inventory, expected int64) (int64, error) {
	tx, err := d.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if held, err := lockHeld(tx, ""); err != nil {
		return 0, err
	} else if held {
		return 0, ErrLocked
	}
	current, err := generation(tx)
	if err != nil {
		return 0, err
	}
	if current != expected {
		return 0, fmt.Errorf("%w: have %d, store is at %d", ErrConflict, expected, current)
	}

	gen, err := replace(tx, inv)
	if err != nil {
		return 0, err
	}
	return gen, tx.Commit()
}

// AcquireIngestLock takes the store-wide ingestion lock for owner until ttl
// elapses. An expired lock is taken over.
func (d *DB) AcquireIngestLock(owner string, ttl time.Duration) error {
	tx, err := d.conn.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	held, err := lockHeld(tx, owner)
	if err != nil {
		return err
	}
	if held {
		return ErrLocked
	}
	if _, err := tx.Exec(`
INSERT INTO locks (name, owner, expires_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
`, ingestLockName, owner, time.Now().Add(ttl).UnixMilli()); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ReleaseIngestLock(owner string) error {
	_, err := d.conn.Exec(`DELETE FROM locks WHERE name = ? AND owner = ?`, ingestLockName, owner)
	return err
}

// lockHeld reports a live ingestion lock owned by anyone but owner.
func lockHeld(tx *sqlx.Tx, owner string) (bool, error) {
	var lock struct {
		Owner     string `db:"owner"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := tx.Get(&lock, `SELECT owner, expires_at FROM locks WHERE name = ?`, ingestLockName)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return lock.Owner != owner && lock.ExpiresAt > time.Now().UnixMilli(), nil
}

func generation(tx *sqlx.Tx) (int64, error) {
	var value string
	err := tx.Get(&value, `SELECT value FROM metadata WHERE key = ?`, generationKey)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func replace(tx *sqlx.Tx, inv internal.Inventory) (int64, error) {
	for _, table := range []string{"notebooks", "handhelds", "printers"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return 0, err
		}
	}

	for i, n := range inv.Notebooks {
		if _, err := tx.Exec(`INSERT INTO notebooks (position, serial_number, model, status) VALUES (?, ?, ?, ?)`,
			i, n.SerialNumber, n.Model, string(n.Status)); err != nil {
			return 0, err
		}
	}
	for i, h := range inv.Handhelds {
		if _, err := tx.Exec(`INSERT INTO handhelds (position, id, serial_number, status) VALUES (?, ?, ?, ?)`,
			i, h.ID, h.SerialNumber, h.Status); err != nil {
			return 0, err
		}
	}
	for i, p := range inv.Printers {
		if _, err := tx.Exec(`INSERT INTO printers (position, id, ip_address, serial_number) VALUES (?, ?, ?, ?)`,
			i, p.ID, p.IPAddress, p.SerialNumber); err != nil {
			return 0, err
		}
	}

	gen, err := generation(tx)
	if err != nil {
		return 0, err
	}
	gen++
	if _, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, generationKey, strconv.FormatInt(gen, 10)); err != nil {
		return 0, err
	}
	return gen, nil
}

func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []internal.RunRecord
	err := d.conn.Select(&out, `
SELECT id, source, content_hash, notebooks, handhelds, printers, missing_sheets, duration_ms, created_at
FROM runs ORDER BY seq DESC LIMIT ?
`, limit)
	return out, err
}

func MissingSheetsJSON(sheets []string) string {
	if len(sheets) == 0 {
		return "[]"
	}
	blob, _ := json.Marshal(sheets)
	return string(blob)
}

func ParseMissingSheets(value string) []string {
	var out []string
	if strings.TrimSpace(value) == "" {
		return nil
	}
	_ = json.Unmarshal([]byte(value), &out)
	return out
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.Get(&value, `SELECT value FROM metadata WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
