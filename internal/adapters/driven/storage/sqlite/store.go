package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/romilly/logseq-searcher/internal/adapters/driven/storage/sqlite/schema"
	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driven"
)

// Store is a SQLite-backed storage that provides access to the
// DocumentStore and SearchIndex interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the SQLite database at dbPath. The parent
// directory is created if missing. Opening does not create the documents
// schema; that is CreateSchema's job, because it is destructive.
func NewStore(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrInvalidInput)
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	registerVectorFunctions()

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Store{
		db:   db,
		path: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// SearchIndex returns a SearchIndex interface backed by this store.
func (s *Store) SearchIndex() driven.SearchIndex {
	return &searchIndex{store: s}
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// CreateSchema destructively replaces the documents table, the FTS index
// and the maintenance triggers by executing the embedded bootstrap script.
// All existing data is lost.
func (s *documentStore) CreateSchema(ctx context.Context) error {
	script, err := fs.ReadFile(schema.FS, schema.DocumentsFile)
	if err != nil {
		return fmt.Errorf("reading schema script: %w", err)
	}

	if _, err := s.store.db.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// InsertDocuments inserts a batch of documents in a single transaction.
// Ids are assigned by the engine; the FTS triggers index each row as it
// lands. Nothing is persisted if any insert fails.
func (s *documentStore) InsertDocuments(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		if !docs[i].DocType.Valid() {
			return fmt.Errorf("%w: unknown doc type %q", domain.ErrInvalidInput, docs[i].DocType)
		}
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (filename, doc_type, title, content, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range docs {
		createdAt := docs[i].CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		embeddingBlob := float32SliceToBytes(docs[i].Embedding)

		if _, err := stmt.ExecContext(ctx, docs[i].Filename, string(docs[i].DocType),
			docs[i].Title, docs[i].Content, embeddingBlob, createdAt); err != nil {
			return fmt.Errorf("inserting document %s: %w", docs[i].Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a full document by id.
func (s *documentStore) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, filename, doc_type, title, content, embedding, created_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var docType string
	var embeddingBlob []byte
	var createdAt sql.NullTime
	if err := row.Scan(&doc.ID, &doc.Filename, &docType, &doc.Title,
		&doc.Content, &embeddingBlob, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.DocType = domain.DocType(docType)
	doc.Embedding = bytesToFloat32Slice(embeddingBlob)
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}

	return &doc, nil
}

// CountByType returns document counts grouped by doc type.
func (s *documentStore) CountByType(ctx context.Context) (map[domain.DocType]int, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT doc_type, COUNT(*) FROM documents GROUP BY doc_type
	`)
	if err != nil {
		return nil, fmt.Errorf("querying document counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.DocType]int)
	for rows.Next() {
		var docType string
		var count int
		if err := rows.Scan(&docType, &count); err != nil {
			return nil, fmt.Errorf("scanning document count: %w", err)
		}
		counts[domain.DocType(docType)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document counts: %w", err)
	}

	return counts, nil
}

// CountMissingEmbeddings returns how many documents have a NULL embedding.
func (s *documentStore) CountMissingEmbeddings(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents WHERE embedding IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting missing embeddings: %w", err)
	}
	return count, nil
}

// ListMissingEmbeddings returns up to limit documents without an
// embedding, ordered by id so repeated calls walk the corpus front to
// back as earlier rows get filled in.
func (s *documentStore) ListMissingEmbeddings(ctx context.Context, limit int) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, doc_type, title, content
		FROM documents
		WHERE embedding IS NULL
		ORDER BY id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying missing embeddings: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var docType string
		if err := rows.Scan(&doc.ID, &doc.Filename, &docType, &doc.Title, &doc.Content); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.DocType = domain.DocType(docType)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// SetEmbeddings writes each document's embedding back by id in a single
// transaction. The FTS update trigger fires only on title/content, so
// these writes leave the lexical index untouched.
func (s *documentStore) SetEmbeddings(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `UPDATE documents SET embedding = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range docs {
		embeddingBlob := float32SliceToBytes(docs[i].Embedding)
		if _, err := stmt.ExecContext(ctx, embeddingBlob, docs[i].ID); err != nil {
			return fmt.Errorf("updating embedding for document %d: %w", docs[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a little-endian byte slice
// for BLOB storage. An empty slice maps to nil, which stores as NULL.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
