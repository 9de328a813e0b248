// Package store keeps annotated documents in a SQLite database.
//
// Each document is stored as the JSON form of an attributed string,
// compressed with xz. The BLAKE3 digest of the uncompressed JSON is stored
// alongside and checked on every read.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/rubykit/core/attrtext"
	"github.com/FocuswithJustin/rubykit/core/cache"
	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/sqlite"
	"github.com/FocuswithJustin/rubykit/internal/logging"
)

// Injectable functions for testing
var (
	newID       = uuid.New
	now         = time.Now
	xzNewWriter = xz.NewWriter
	xzNewReader = xz.NewReader
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	size       INTEGER NOT NULL,
	runs       INTEGER NOT NULL,
	blake3     TEXT NOT NULL,
	payload    BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_created ON documents (created_at, id);
`

// Record describes a stored document without its content.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
	Runs      int       `json:"runs"`
	Digest    string    `json:"blake3"`
}

// Document is a stored record together with its attributed text.
type Document struct {
	Record
	Text *attrtext.String `json:"text"`
}

// Store is a document store backed by one SQLite database. Documents that
// passed their digest check are kept in an in-memory LRU cache.
type Store struct {
	db    *sql.DB
	path  string
	cache *cache.LRU[string, Document]
}

// Open opens or creates the store at path. ":memory:" gives a private
// in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.OpenContext(ctx, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.NewIO("create schema", path, err)
	}
	logging.DebugContext(ctx, "store opened", "path", path, "driver", sqlite.DriverName())
	return &Store{
		db:    db,
		path:  path,
		cache: cache.NewLRU[string, Document](cache.DefaultConfig(), func(d Document) int64 { return int64(d.Size) }),
	}, nil
}

// CacheStats reports statistics for the decoded document cache.
func (s *Store) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Close drops cached documents and closes the underlying database.
func (s *Store) Close() error {
	s.cache.Clear()
	return s.db.Close()
}

// Put stores text under name and returns the new record.
func (s *Store) Put(ctx context.Context, name string, text *attrtext.String) (*Record, error) {
	if name == "" {
		return nil, errors.NewValidation("name", "document name is empty")
	}
	if text == nil {
		return nil, errors.NewValidation("text", "document text is nil")
	}

	data, err := json.Marshal(text)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding document %q", name)
	}
	payload, err := compress(data)
	if err != nil {
		return nil, errors.Wrap(err, "compressing document")
	}

	rec := &Record{
		ID:        newID().String(),
		Name:      name,
		CreatedAt: now().UTC().Truncate(time.Millisecond),
		Size:      len(data),
		Runs:      len(text.Runs()),
		Digest:    digest(data),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, created_at, size, runs, blake3, payload) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt.Format(time.RFC3339Nano), rec.Size, rec.Runs, rec.Digest, payload)
	if err != nil {
		logging.StoreError(ctx, "put", err, "name", name)
		return nil, errors.NewIO("insert", s.path, err)
	}
	logging.StoreEvent(ctx, "put", rec.ID, "name", name, "bytes", rec.Size, "compressed", len(payload))
	return rec, nil
}

// Get loads the document with the given id. An unknown id returns an
// *errors.NotFoundError; a payload that fails its digest check returns an
// error wrapping errors.ErrCorrupt.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if doc, ok := s.cache.Get(id); ok {
		return copyDocument(doc), nil
	}

	var (
		doc     Document
		created string
		payload []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, size, runs, blake3, payload FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &doc.Name, &created, &doc.Size, &doc.Runs, &doc.Digest, &payload)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("document", id)
	}
	if err != nil {
		logging.StoreError(ctx, "get", err, "id", id)
		return nil, errors.NewIO("select", s.path, err)
	}
	if doc.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("%w: document %s has invalid timestamp %q", errors.ErrCorrupt, id, created)
	}

	data, err := decompress(payload)
	if err != nil {
		logging.WarnContext(ctx, "corrupt document", "id", id, "error", err.Error())
		return nil, fmt.Errorf("%w: document %s: %v", errors.ErrCorrupt, id, err)
	}
	if got := digest(data); got != doc.Digest {
		logging.WarnContext(ctx, "corrupt document", "id", id, "want", doc.Digest, "got", got)
		return nil, fmt.Errorf("%w: document %s digest mismatch", errors.ErrCorrupt, id)
	}

	doc.Text = &attrtext.String{}
	if err := json.Unmarshal(data, doc.Text); err != nil {
		logging.WarnContext(ctx, "corrupt document", "id", id, "error", err.Error())
		return nil, fmt.Errorf("%w: document %s: %v", errors.ErrCorrupt, id, err)
	}
	s.cache.Put(id, *copyDocument(doc))
	logging.StoreEvent(ctx, "get", id)
	return &doc, nil
}

func copyDocument(d Document) *Document {
	// The full range is always valid.
	d.Text, _ = d.Text.Slice(0, d.Text.Len())
	return &d
}

// List returns all records, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, size, runs, blake3 FROM documents ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.NewIO("list", s.path, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var created string
		if err := rows.Scan(&rec.ID, &rec.Name, &created, &rec.Size, &rec.Runs, &rec.Digest); err != nil {
			return nil, errors.NewIO("list", s.path, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("%w: document %s has invalid timestamp %q", errors.ErrCorrupt, rec.ID, created)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("list", s.path, err)
	}
	return out, nil
}

// Delete removes the document with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		logging.StoreError(ctx, "delete", err, "id", id)
		return errors.NewIO("delete", s.path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewIO("delete", s.path, err)
	}
	if n == 0 {
		return errors.NewNotFound("document", id)
	}
	s.cache.Remove(id)
	logging.StoreEvent(ctx, "delete", id)
	return nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &errors.ValidationError{Field: "id", Value: id, Message: "not a UUID", Err: errors.ErrInvalidInput}
	}
	return nil
}

func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xzNewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(payload []byte) ([]byte, error) {
	r, err := xzNewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
