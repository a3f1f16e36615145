package db

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store owns the connection to the dictionary database.
//
// The underlying pool is pinned to a single connection and every method runs
// to completion on the calling goroutine. Callers that share a Store between
// goroutines get their calls serialized on that connection; there is no
// other locking.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for import diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens (creating if needed) the SQLite database at dsn and applies the
// schema. Errors wrap ErrBackendUnavailable.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrBackendUnavailable, dsn, err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open %s: %v", ErrBackendUnavailable, dsn, err)
	}
	if err := EnsureSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return NewStore(conn, opts...), nil
}

// NewStore wraps an open database handle. The schema is assumed to exist.
func NewStore(conn *sql.DB, opts ...Option) *Store {
	s := &Store{
		conn:   conn,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// GetOrCreateDocument returns the id of the document called name, inserting
// it first if it does not exist.
func (s *Store) GetOrCreateDocument(ctx context.Context, name string) (DocumentID, error) {
	var id DocumentID
	err := getOrCreateName(ctx, s.conn, "document", name, &id)
	return id, err
}

// GetOrCreateDict returns the id of the dictionary called name, inserting it
// first if it does not exist.
func (s *Store) GetOrCreateDict(ctx context.Context, name string) (DictID, error) {
	return getOrCreateDict(ctx, s.conn, name)
}

func getOrCreateDict(ctx context.Context, db DBExecutor, name string) (DictID, error) {
	var id DictID
	err := getOrCreateName(ctx, db, "dict", name, &id)
	return id, err
}

// getOrCreateName upserts name into one of the name-keyed tables and scans
// the row's id into dst. table is never user input.
func getOrCreateName(ctx context.Context, db DBExecutor, table, name string, dst any) error {
	if _, err := db.ExecContext(ctx,
		`INSERT INTO `+table+` (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return queryErr("insert "+table, err)
	}
	if err := db.QueryRowContext(ctx,
		`SELECT rowid FROM `+table+` WHERE name = ?`, name).Scan(dst); err != nil {
		return queryErr("select "+table, err)
	}
	return nil
}

// ReplaceDictionary swaps the entries of the dictionary called name for
// entries, creating the dictionary if needed, and returns the number of rows
// inserted.
//
// The delete of the old rows and all inserts share one transaction: on any
// error, including ctx cancellation while entries is being consumed, the
// previous contents stay in place.
func (s *Store) ReplaceDictionary(ctx context.Context, name string, entries iter.Seq[WordDef]) (int, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, queryErr("begin replace", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	dictID, err := getOrCreateDict(ctx, tx, name)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM word_def WHERE dict = ?`, dictID)
	if err != nil {
		return 0, queryErr("delete word_def", err)
	}
	removed, _ := res.RowsAffected()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO word_def (dict, simplified, traditional, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, queryErr("prepare insert word_def", err)
	}
	defer stmt.Close()

	n := 0
	for e := range entries {
		data, err := encodePayload(e.Pinyin, e.Defs)
		if err != nil {
			return 0, fmt.Errorf("encode entry %d (%s): %w", n, e.Simplified, err)
		}
		if _, err := stmt.ExecContext(ctx, dictID, e.Simplified, e.Traditional, data); err != nil {
			return 0, queryErr(fmt.Sprintf("insert word_def %d (%s)", n, e.Simplified), err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, queryErr(fmt.Sprintf("commit replace (%d entries)", n), err)
	}
	s.logger.Info("replaced dictionary", "dict", name, "id", dictID.String(), "removed", removed, "inserted", n)
	return n, nil
}

// WordsStartingWith returns every entry whose simplified or traditional
// headword begins with prefix. The prefix is matched literally. Rows come
// back in whatever order SQLite produces them.
func (s *Store) WordsStartingWith(ctx context.Context, prefix string) ([]Entry, error) {
	pattern := escapeLike(prefix) + "%"
	rows, err := s.conn.QueryContext(ctx,
		`SELECT rowid, dict, simplified, traditional, data FROM word_def
		 WHERE simplified LIKE ? ESCAPE '\' OR traditional LIKE ? ESCAPE '\'`,
		pattern, pattern)
	if err != nil {
		return nil, queryErr("select word_def", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var data string
		if err := rows.Scan(&e.ID, &e.Dict, &e.Simplified, &e.Traditional, &data); err != nil {
			return nil, queryErr("scan word_def", err)
		}
		e.Pinyin, e.Defs, err = decodePayload(data)
		if err != nil {
			return nil, &DecodeError{Row: e.ID, Err: err}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("select word_def", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match itself literally inside a LIKE pattern using
// ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
