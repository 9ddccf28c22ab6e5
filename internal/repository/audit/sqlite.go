package audit

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kailas-cloud/verity/internal/domain"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// DefaultTable is the SQL table audit entries are inserted into.
const DefaultTable = "predictions"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQL writes audit entries to a SQLite table.
type SQL struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens (creating if needed) the database at dsn and ensures the audit table exists.
func OpenSQLite(ctx context.Context, dsn, table string) (*SQL, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &SQL{db: db, table: table}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		id         TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		label      TEXT NOT NULL,
		confidence REAL NOT NULL,
		status     TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Write inserts one entry.
func (s *SQL) Write(ctx context.Context, e domain.AuditEntry) error {
	query, args, err := sq.Insert(s.table).
		Columns("id", "text", "label", "confidence", "status", "created_at").
		Values(e.ID, e.Text, string(e.Label), e.Confidence, string(e.Status), e.CreatedAt.Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit entry %s: %w", e.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQL) Recent(ctx context.Context, limit uint64) ([]domain.AuditEntry, error) {
	query, args, err := sq.Select("id", "text", "label", "confidence", "status", "created_at").
		From(s.table).
		OrderBy("created_at DESC", "id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e                      domain.AuditEntry
			label, status, created string
		)
		if err := rows.Scan(&e.ID, &e.Text, &label, &e.Confidence, &status, &created); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Label = domain.Label(label)
		e.Status = domain.Status(status)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}

// Ping checks the database.
func (s *SQL) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("audit database: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQL) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close audit database: %w", err)
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
