// Package sqlstore projects attestation records from the knowledge
// graph into a SQLite table, giving reporting tools a flat relational
// view without walking RDF statements.
package sqlstore

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/david4096/compliance-ontology/compliance"
	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/vocab"
)

// Open opens a SQLite database at the given path with WAL mode and a
// busy timeout. Pass ":memory:" for an ephemeral database.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set busy timeout")
	}
	if logger != nil {
		logger.Debugw("database opened", "path", path)
	}
	return db, nil
}

// Query constants
const (
	createTableQuery = `
		CREATE TABLE IF NOT EXISTS attestations (
			id               TEXT PRIMARY KEY,
			system_id        TEXT NOT NULL,
			framework        TEXT NOT NULL,
			status           TEXT NOT NULL,
			attestation_type TEXT NOT NULL,
			attester         TEXT NOT NULL,
			attested_at      TIMESTAMP NOT NULL,
			expires_at       TIMESTAMP,
			evidence         TEXT NOT NULL DEFAULT ''
		)`

	createSystemIndexQuery = `
		CREATE INDEX IF NOT EXISTS idx_attestations_system ON attestations (system_id)`

	upsertQuery = `
		INSERT OR REPLACE INTO attestations
			(id, system_id, framework, status, attestation_type, attester, attested_at, expires_at, evidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	bySystemQuery = `
		SELECT id, system_id, framework, status, attestation_type, attester, attested_at, expires_at, evidence
		FROM attestations
		WHERE system_id = ?
		ORDER BY attested_at, id`

	countQuery = `
		SELECT COUNT(*) FROM attestations`
)

// Row is one projected attestation. A nil ExpiresAt means the
// attestation never expires.
type Row struct {
	ID         string
	SystemID   string
	Framework  string
	Status     vocab.ComplianceStatus
	Type       vocab.AttestationType
	Attester   string
	AttestedAt time.Time
	ExpiresAt  *time.Time
	Evidence   string
}

// Store writes the relational projection.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// New creates a Store over an open database handle.
func New(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates the attestations table and its index.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(createTableQuery); err != nil {
		return errors.Wrap(err, "create attestations table")
	}
	if _, err := s.db.Exec(createSystemIndexQuery); err != nil {
		return errors.Wrap(err, "create system index")
	}
	return nil
}

// Sync projects every attestation currently in the graph into the
// table, inserting or replacing by attestation id, and returns the
// number of rows written. Rows for attestations removed from the graph
// are left in place; callers wanting an exact mirror should start from
// an empty table.
func (s *Store) Sync(o *compliance.Ontology) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "begin sync transaction")
	}
	defer tx.Rollback()

	written := 0
	for _, system := range o.Store().Subjects(graph.IRI(graph.RDFType), vocab.ClassSystem) {
		systemID := vocab.LocalName(system)
		records, err := o.SystemAttestations(systemID)
		if err != nil {
			return 0, err
		}
		for _, rec := range records {
			var expires interface{}
			if !rec.Expiration.IsZero() {
				expires = rec.Expiration
			}
			_, err := tx.Exec(upsertQuery,
				rec.Attestation,
				systemID,
				rec.Framework,
				string(rec.Status),
				string(rec.Type),
				rec.Attester,
				rec.Date,
				expires,
				rec.Evidence,
			)
			if err != nil {
				return 0, errors.Wrapf(err, "upsert attestation %q", rec.Attestation)
			}
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit sync transaction")
	}
	if s.logger != nil {
		s.logger.Infow("attestation projection synced", "rows", written)
	}
	return written, nil
}

// BySystem returns the projected rows for one system in attestation
// date order.
func (s *Store) BySystem(systemID string) ([]Row, error) {
	rows, err := s.db.Query(bySystemQuery, systemID)
	if err != nil {
		return nil, errors.Wrapf(err, "query attestations for system %q", systemID)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var expires sql.NullTime
		err := rows.Scan(&r.ID, &r.SystemID, &r.Framework, &r.Status, &r.Type,
			&r.Attester, &r.AttestedAt, &expires, &r.Evidence)
		if err != nil {
			return nil, errors.Wrap(err, "scan attestation row")
		}
		if expires.Valid {
			t := expires.Time
			r.ExpiresAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of projected rows.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(countQuery).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count attestations")
	}
	return n, nil
}
