// Package cache memoizes propagate.Propagate results behind a SQL table,
// selecting a driver by dialect name the way a multi-database connection
// manager would. Narrowed from a general multi-connection registry to a
// single dialect-selected store purpose-built for one table
// (folded_expressions), since the engine only ever needs one cache, not
// a pool of arbitrary named connections.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"shadereval/internal/composite"
	"shadereval/internal/literal"
)

// Cache stores the outcome of a fold keyed by the source text of the
// expression plus a fingerprint of the constant environment it was folded
// against, so the same free-standing source re-resolves without re-running
// the propagator.
type Cache struct {
	db *sql.DB
}

// driverNames maps the engine's own dialect names to the sql.Open driver
// name the matching blank import registers, mirroring DBManager.Connect's
// dbType switch.
var driverNames = map[string]string{
	"sqlite":     "sqlite",
	"sqlite3":    "sqlite",
	"postgres":   "postgres",
	"postgresql": "postgres",
	"mysql":      "mysql",
	"sqlserver":  "sqlserver",
	"mssql":      "sqlserver",
}

// Open connects to dialect/dsn, verifies the connection, and ensures the
// cache table exists. The schema and queries below use `?` placeholders
// and an ON CONFLICT upsert, which sqlite accepts natively; postgres,
// mysql and sqlserver are reachable through the same dialect table for
// callers that already speak their placeholder conventions, but the
// queries in this file are only exercised against sqlite in practice, the
// same gap DBManager's own generic query/exec paths leave unaddressed.
func Open(dialect, dsn string) (*Cache, error) {
	driverName, ok := driverNames[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported cache dialect: %s", dialect)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	c := &Cache{db: db}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) ensureSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS folded_expressions (
			cache_key   TEXT PRIMARY KEY,
			source      TEXT NOT NULL,
			is_const    INTEGER NOT NULL,
			result_text TEXT NOT NULL,
			error_text  TEXT,
			created_at  TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Entry is the decoded row a cache hit returns: either a folded constant's
// surface-syntax type and value, or the recorded error text, whichever the
// original call observed.
type Entry struct {
	IsConst    bool
	ResultText string
	ErrorText  string
}

// Key derives a stable cache key from source (the original, unparsed
// expression text) and envFingerprint (a caller-supplied digest of whatever
// constant bindings were visible while folding it, e.g. a hash over
// sorted name=value pairs). Two folds of identical source against
// identically fingerprinted environments always share a key.
func Key(source, envFingerprint string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + envFingerprint))
	return hex.EncodeToString(sum[:])
}

// Lookup returns a previously stored fold outcome, if any.
func (c *Cache) Lookup(key string) (Entry, bool, error) {
	row := c.db.QueryRow(`SELECT is_const, result_text, error_text FROM folded_expressions WHERE cache_key = ?`, key)
	var e Entry
	var isConst int
	var errText sql.NullString
	if err := row.Scan(&isConst, &e.ResultText, &errText); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("cache lookup failed: %w", err)
	}
	e.IsConst = isConst != 0
	e.ErrorText = errText.String
	return e, true, nil
}

// StoreConst records a successful fold of a constant value.
func (c *Cache) StoreConst(key, source string, v composite.AnyValue) error {
	return c.store(key, source, true, describeConst(v), "")
}

// StoreError records a fold that failed, so repeated attempts against the
// same source/environment short-circuit straight to the same error.
func (c *Cache) StoreError(key, source string, foldErr error) error {
	return c.store(key, source, false, "", foldErr.Error())
}

func (c *Cache) store(key, source string, isConst bool, resultText, errText string) error {
	isConstInt := 0
	if isConst {
		isConstInt = 1
	}
	_, err := c.db.Exec(`
		INSERT INTO folded_expressions (cache_key, source, is_const, result_text, error_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			source = excluded.source,
			is_const = excluded.is_const,
			result_text = excluded.result_text,
			error_text = excluded.error_text,
			created_at = excluded.created_at
	`, key, source, isConstInt, resultText, errText, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// describeConst renders a folded constant as its surface type plus the AST
// form it folds to, e.g. "ivec2: ivec2(4, 5)" (arrays/records print as
// their type_specifier since they have no literal AST form).
func describeConst(v composite.AnyValue) string {
	spec := literal.TypeSpecifier(v)
	if base, ok := v.AsBase(); ok {
		return fmt.Sprintf("%s: %s", spec, literal.Print(literal.ToAST(base)))
	}
	return spec
}
