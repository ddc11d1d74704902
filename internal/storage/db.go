package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/caliber-ui/quotation-app/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
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
CREATE TABLE IF NOT EXISTS reference_files (
  kind TEXT PRIMARY KEY,
  filename TEXT NOT NULL,
  hash TEXT NOT NULL,
  raw BLOB NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS enquiries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  filename TEXT NOT NULL,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'loaded',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(filename, hash)
);

CREATE TABLE IF NOT EXISTS enquiry_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  enquiryId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  source TEXT NOT NULL,
  rawLine TEXT NOT NULL,
  itemCode TEXT,
  description TEXT NOT NULL,
  qty TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(enquiryId, lineNo),
  FOREIGN KEY(enquiryId) REFERENCES enquiries(id)
);

CREATE TABLE IF NOT EXISTS resolutions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  lineId INTEGER NOT NULL,
  slotNo INTEGER NOT NULL,
  category TEXT,
  type TEXT,
  standardFamily TEXT,
  dimensionStandard TEXT,
  grade TEXT,
  finish TEXT,
  unit TEXT,
  overridden INTEGER NOT NULL DEFAULT 0,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(lineId, slotNo),
  FOREIGN KEY(lineId) REFERENCES enquiry_lines(id)
);

CREATE TABLE IF NOT EXISTS quotation_counters (
  financialYear TEXT PRIMARY KEY,
  serial INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS saved_values (
  field TEXT NOT NULL,
  value TEXT NOT NULL,
  lastUsedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(field, value)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// UpsertReferenceFile stores catalog/standards/grades/synonyms source bytes
// keyed by kind, replacing any previous upload.
func (d *DB) UpsertReferenceFile(kind, filename, hash string, raw []byte) error {
	_, err := d.conn.Exec(`
INSERT INTO reference_files (kind, filename, hash, raw) VALUES (?, ?, ?, ?)
ON CONFLICT(kind) DO UPDATE SET
  filename=excluded.filename,
  hash=excluded.hash,
  raw=excluded.raw,
  updatedAt=CURRENT_TIMESTAMP
`, kind, filename, hash, raw)
	return err
}

// GetReferenceFile returns the stored bytes and hash for a kind, or nil
// when nothing was uploaded yet.
func (d *DB) GetReferenceFile(kind string) ([]byte, string, error) {
	var raw []byte
	var hash string
	err := d.conn.QueryRow(`SELECT raw, hash FROM reference_files WHERE kind = ?`, kind).Scan(&raw, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return raw, hash, nil
}

func (d *DB) UpsertEnquiry(source, filename, hash string) (internal.EnquiryRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO enquiries (source, filename, hash) VALUES (?, ?, ?)
ON CONFLICT(filename, hash) DO UPDATE SET
  source=excluded.source,
  updatedAt=CURRENT_TIMESTAMP
`, source, filename, hash)
	if err != nil {
		return internal.EnquiryRow{}, err
	}

	var row internal.EnquiryRow
	err = d.conn.QueryRow(`
SELECT id, source, filename, hash, status, createdAt
FROM enquiries WHERE filename = ? AND hash = ?
`, filename, hash).Scan(&row.ID, &row.Source, &row.Filename, &row.Hash, &row.Status, &row.CreatedAt)
	if err != nil {
		return internal.EnquiryRow{}, err
	}
	return row, nil
}

func (d *DB) UpdateEnquiryStatus(enquiryID int, status string) error {
	_, err := d.conn.Exec(`UPDATE enquiries SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, enquiryID)
	return err
}

// ClearEnquiryLines removes a re-uploaded enquiry's lines and their
// resolutions before a fresh insert.
func (d *DB) ClearEnquiryLines(enquiryID int) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
DELETE FROM resolutions WHERE lineId IN (SELECT id FROM enquiry_lines WHERE enquiryId = ?)
`, enquiryID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM enquiry_lines WHERE enquiryId = ?`, enquiryID); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) InsertEnquiryLine(enquiryID int, line internal.EnquiryLine) (int64, error) {
	result, err := d.conn.Exec(`
INSERT INTO enquiry_lines (enquiryId, lineNo, source, rawLine, itemCode, description, qty)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, enquiryID, line.LineNo, string(line.Source), line.RawLine, line.ItemCode, line.Description, line.Qty)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) ListEnquiryLines(enquiryID int) ([]internal.EnquiryLine, error) {
	rows, err := d.conn.Query(`
SELECT lineNo, source, rawLine, itemCode, description, qty
FROM enquiry_lines WHERE enquiryId = ? ORDER BY lineNo ASC
`, enquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.EnquiryLine
	for rows.Next() {
		var line internal.EnquiryLine
		var source string
		if err := rows.Scan(&line.LineNo, &source, &line.RawLine, &line.ItemCode, &line.Description, &line.Qty); err != nil {
			return nil, err
		}
		line.Source = internal.LineSource(source)
		out = append(out, line)
	}
	return out, rows.Err()
}

// UpsertResolution persists one category slot of a line.
func (d *DB) UpsertResolution(lineID int64, slotNo int, category string, attrs internal.ResolvedAttributes) error {
	overridden := 0
	if attrs.Overridden {
		overridden = 1
	}
	_, err := d.conn.Exec(`
INSERT INTO resolutions (lineId, slotNo, category, type, standardFamily, dimensionStandard, grade, finish, unit, overridden)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(lineId, slotNo) DO UPDATE SET
  category=excluded.category,
  type=excluded.type,
  standardFamily=excluded.standardFamily,
  dimensionStandard=excluded.dimensionStandard,
  grade=excluded.grade,
  finish=excluded.finish,
  unit=excluded.unit,
  overridden=excluded.overridden
`, lineID, slotNo, category, attrs.Type, attrs.StandardFamily, attrs.DimensionStandard,
		attrs.Grade, attrs.Finish, attrs.Unit, overridden)
	return err
}

// GetQuoteRows merges lines with their resolutions into the final table.
// Multiple slots per line join their standards, grades and finishes
// with " / ".
func (d *DB) GetQuoteRows(enquiryID int) ([]internal.QuoteRow, error) {
	rows, err := d.conn.Query(`
SELECT
  l.lineNo,
  l.itemCode,
  l.description,
  l.qty,
  COALESCE(GROUP_CONCAT(NULLIF(r.dimensionStandard, ''), ' / '), ''),
  COALESCE(GROUP_CONCAT(NULLIF(r.grade, ''), ' / '), ''),
  COALESCE(GROUP_CONCAT(NULLIF(r.finish, ''), ' / '), '')
FROM enquiry_lines l
LEFT JOIN resolutions r ON r.lineId = l.id
WHERE l.enquiryId = ?
GROUP BY l.id
ORDER BY l.lineNo ASC
`, enquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.QuoteRow
	seq := 0
	for rows.Next() {
		var row internal.QuoteRow
		if err := rows.Scan(&row.Sequence, &row.ItemCode, &row.Description, &row.Qty,
			&row.DimensionStandards, &row.Grades, &row.Finishes); err != nil {
			return nil, err
		}
		seq++
		row.Sequence = seq
		out = append(out, row)
	}
	return out, rows.Err()
}

// NextQuotationNumber allocates the next serial within the financial year
// of now (April rollover) and formats "CE/MM/NNNNN/YY-YY".
func (d *DB) NextQuotationNumber(now time.Time) (string, error) {
	fy := financialYear(now)

	tx, err := d.conn.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO quotation_counters (financialYear, serial) VALUES (?, 0)
ON CONFLICT(financialYear) DO NOTHING
`, fy); err != nil {
		return "", err
	}
	if _, err := tx.Exec(`UPDATE quotation_counters SET serial = serial + 1 WHERE financialYear = ?`, fy); err != nil {
		return "", err
	}
	var serial int
	if err := tx.QueryRow(`SELECT serial FROM quotation_counters WHERE financialYear = ?`, fy).Scan(&serial); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	return fmt.Sprintf("CE/%02d/%05d/%s", int(now.Month()), serial, fy), nil
}

func financialYear(now time.Time) string {
	year := now.Year()
	start, end := year, year+1
	if now.Month() < time.April {
		start, end = year-1, year
	}
	return fmt.Sprintf("%02d-%02d", start%100, end%100)
}

// SaveValue remembers a header field value for future suggestions.
func (d *DB) SaveValue(field, value string) error {
	if value == "" {
		return nil
	}
	_, err := d.conn.Exec(`
INSERT INTO saved_values (field, value) VALUES (?, ?)
ON CONFLICT(field, value) DO UPDATE SET lastUsedAt=CURRENT_TIMESTAMP
`, field, value)
	return err
}

// SavedValues returns remembered values for a field, most recent first.
func (d *DB) SavedValues(field string) ([]string, error) {
	rows, err := d.conn.Query(`
SELECT value FROM saved_values WHERE field = ? ORDER BY lastUsedAt DESC, value ASC
`, field)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
