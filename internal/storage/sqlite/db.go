// Package sqlite stores the shop-configured catalog and quote snapshots.
package sqlite

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"inspectbot/internal/catalog"
	"inspectbot/internal/model"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS catalog_entries (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL UNIQUE,
		part_cost    REAL NOT NULL DEFAULT 0,
		labor_hours  REAL NOT NULL DEFAULT 0,
		position     INTEGER NOT NULL DEFAULT 0,
		updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_catalog_position ON catalog_entries(position);

	CREATE TABLE IF NOT EXISTS quote_lines (
		id             TEXT PRIMARY KEY,
		session_id     TEXT NOT NULL,
		source_item    TEXT NOT NULL,
		description    TEXT NOT NULL,
		status         TEXT NOT NULL,
		labor_hours    REAL NOT NULL DEFAULT 0,
		unit_part_cost REAL NOT NULL DEFAULT 0,
		total_cost     REAL NOT NULL DEFAULT 0,
		provenance     TEXT NOT NULL DEFAULT 'inspection',
		pricing        TEXT DEFAULT '',
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_quote_lines_session ON quote_lines(session_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return db, nil
}

// ReplaceCatalogEntries swaps the stored catalog for the given entries,
// preserving their order via the position column.
func ReplaceCatalogEntries(db *sql.DB, entries []catalog.Entry) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM catalog_entries`); err != nil {
		return 0, err
	}
	stmt, err := tx.Prepare(
		`INSERT INTO catalog_entries (name, part_cost, labor_hours, position, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for i, e := range entries {
		if _, err := stmt.Exec(e.CanonicalName, e.PartCost, e.LaborHours, i, now); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

// ListCatalogEntries returns the stored catalog in position order, the
// order the matching engine uses as its tie-break.
func ListCatalogEntries(db *sql.DB) ([]catalog.Entry, error) {
	rows, err := db.Query(
		`SELECT name, part_cost, labor_hours FROM catalog_entries ORDER BY position, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.CanonicalName, &e.PartCost, &e.LaborHours); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Store adapts the database to catalog.Source.
type Store struct {
	DB *sql.DB
}

func (s Store) CatalogEntries() ([]catalog.Entry, error) {
	return ListCatalogEntries(s.DB)
}

// SaveQuoteLines snapshots a session's quote. Lines are upserted by id so
// pricing patches overwrite the pending placeholder row.
func SaveQuoteLines(db *sql.DB, sessionID string, lines []model.QuoteLine) error {
	if len(lines) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO quote_lines
		 (id, session_id, source_item, description, status, labor_hours, unit_part_cost, total_cost, provenance, pricing)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   labor_hours = excluded.labor_hours,
		   unit_part_cost = excluded.unit_part_cost,
		   total_cost = excluded.total_cost,
		   pricing = excluded.pricing`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range lines {
		if _, err := stmt.Exec(
			l.ID, sessionID, l.SourceItem, l.Description, string(l.Status),
			l.LaborHours, l.UnitPartCost, l.TotalCost, string(l.Provenance), string(l.Pricing),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetQuoteLines loads a session's quote snapshot in insertion order.
func GetQuoteLines(db *sql.DB, sessionID string) ([]model.QuoteLine, error) {
	rows, err := db.Query(
		`SELECT id, source_item, description, status, labor_hours, unit_part_cost, total_cost, provenance, pricing
		 FROM quote_lines WHERE session_id = ? ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.QuoteLine
	for rows.Next() {
		var l model.QuoteLine
		var status, provenance, pricing string
		if err := rows.Scan(
			&l.ID, &l.SourceItem, &l.Description, &status,
			&l.LaborHours, &l.UnitPartCost, &l.TotalCost, &provenance, &pricing,
		); err != nil {
			return nil, err
		}
		l.Status = model.ItemStatus(status)
		l.Provenance = model.Provenance(provenance)
		l.Pricing = model.PricingState(pricing)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
