package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/medrec/internal/medicine"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectMedicineFields contains the standard field list for SELECT queries.
const selectMedicineFields = `name, uses_json, components_json, category, description`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- Catalogue order is kept in position so listings match the JSONL file
		CREATE TABLE IF NOT EXISTS medicines (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			name_key TEXT NOT NULL,
			uses_json TEXT NOT NULL,
			components_json TEXT NOT NULL,
			category TEXT,
			description TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_medicines_key ON medicines(name_key);
		CREATE INDEX IF NOT EXISTS idx_medicines_category ON medicines(category COLLATE NOCASE);

		CREATE VIRTUAL TABLE IF NOT EXISTS medicines_fts USING fts5(
			name,
			uses_text,
			components_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	meds, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	return d.Rebuild(meds)
}

// Rebuild replaces the database contents with the given catalogue.
func (d *DB) Rebuild(meds []medicine.Medicine) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM medicines"); err != nil {
		return 0, fmt.Errorf("clearing medicines table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM medicines_fts"); err != nil {
		return 0, fmt.Errorf("clearing medicines_fts table: %w", err)
	}

	medStmt, err := tx.Prepare(`
		INSERT INTO medicines (position, name, name_key, uses_json, components_json, category, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing medicines insert: %w", err)
	}
	defer medStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO medicines_fts (rowid, name, uses_text, components_text)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, m := range meds {
		usesJSON, err := marshalList(m.Uses)
		if err != nil {
			return 0, fmt.Errorf("marshaling uses for %s: %w", m.Name, err)
		}
		componentsJSON, err := marshalList(m.Components)
		if err != nil {
			return 0, fmt.Errorf("marshaling components for %s: %w", m.Name, err)
		}

		_, err = medStmt.Exec(i, m.Name, m.Key(), usesJSON, componentsJSON,
			nullableStringValue(m.Category), nullableStringValue(m.Description))
		if err != nil {
			return 0, fmt.Errorf("inserting medicine %s: %w", m.Name, err)
		}

		_, err = ftsStmt.Exec(i, m.Name, strings.Join(m.Uses, ", "), strings.Join(m.Components, ", "))
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(meds), nil
}

// ListAll returns all medicines in catalogue order, optionally limited.
func (d *DB) ListAll(limit int) ([]medicine.Medicine, error) {
	query := `SELECT ` + selectMedicineFields + ` FROM medicines ORDER BY position`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing medicines: %w", err)
	}
	defer rows.Close()

	return scanMedicines(rows)
}

// ListByCategory returns medicines in a category (case-insensitive).
// The category "Unknown" also matches medicines without a category.
func (d *DB) ListByCategory(category string, limit int) ([]medicine.Medicine, error) {
	query := `SELECT ` + selectMedicineFields + ` FROM medicines
		WHERE COALESCE(NULLIF(category, ''), ?) = ? COLLATE NOCASE
		ORDER BY position`
	args := []interface{}{medicine.UnknownCategory, category}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing category %s: %w", category, err)
	}
	defer rows.Close()

	return scanMedicines(rows)
}

// SearchNames performs a full-text search over names, uses and components.
func (d *DB) SearchNames(query string, limit int) ([]medicine.Medicine, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectMedicineFields+`
		FROM medicines
		WHERE position IN (SELECT rowid FROM medicines_fts WHERE medicines_fts MATCH ?)
		ORDER BY position
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanMedicines(rows)
}

// Count returns the total number of medicines.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM medicines").Scan(&count)
	return count, err
}

// Categories returns the number of medicines per category. Medicines
// without a category are counted as "Unknown".
func (d *DB) Categories() (map[string]int, error) {
	rows, err := d.db.Query(`
		SELECT COALESCE(NULLIF(category, ''), ?), COUNT(*)
		FROM medicines
		GROUP BY 1`, medicine.UnknownCategory)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

func scanMedicine(rows *sql.Rows) (*medicine.Medicine, error) {
	var m medicine.Medicine
	var usesJSON, componentsJSON string
	var category, description sql.NullString

	if err := rows.Scan(&m.Name, &usesJSON, &componentsJSON, &category, &description); err != nil {
		return nil, err
	}

	m.Category = category.String
	m.Description = description.String

	if err := json.Unmarshal([]byte(usesJSON), &m.Uses); err != nil {
		return nil, fmt.Errorf("parsing uses JSON for %s: %w", m.Name, err)
	}
	if err := json.Unmarshal([]byte(componentsJSON), &m.Components); err != nil {
		return nil, fmt.Errorf("parsing components JSON for %s: %w", m.Name, err)
	}

	return &m, nil
}

func scanMedicines(rows *sql.Rows) ([]medicine.Medicine, error) {
	var meds []medicine.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		if m != nil {
			meds = append(meds, *m)
		}
	}
	return meds, rows.Err()
}

// marshalList encodes a string list, storing nil as an empty array.
func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	return string(data), err
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
