package domain

import "time"

// DocType classifies a document by where it came from in the vault.
type DocType string

const (
	// DocTypePage is a note from the vault's pages/ directory.
	DocTypePage DocType = "page"

	// DocTypeJournal is a dated entry from the vault's journals/ directory.
	DocTypeJournal DocType = "journal"
)

// Valid reports whether the doc type is one of the known values.
func (t DocType) Valid() bool {
	return t == DocTypePage || t == DocTypeJournal
}

// Document represents a single Markdown note persisted in the store.
// Documents are created only through bulk vault ingestion; there is no
// update or delete path, and re-ingesting a vault produces duplicate rows.
type Document struct {
	// ID is the sequential identifier assigned by the store on insert.
	// Zero until the document has been persisted.
	ID int64

	// Filename is the source file's base name, informational only.
	Filename string

	// DocType is page or journal.
	DocType DocType

	// Title is the file's base name without extension.
	Title string

	// Content is the raw Markdown text. Never contains a NUL byte;
	// ingestion strips them because the storage layer rejects them.
	Content string

	// Embedding is the semantic vector for the document, nil until
	// computed at insert time or by a later backfill. It is set at most
	// once and is not recomputed if content ever changes.
	Embedding []float32

	// CreatedAt is when the document was inserted.
	CreatedAt time.Time
}

// EmbeddingText returns the text that is embedded for this document.
// Title and content are concatenated so the title's terms contribute
// to the vector even when they never appear in the body.
func (d Document) EmbeddingText() string {
	return d.Title + "\n\n" + d.Content
}

// VaultStats reports how many documents an ingestion run produced.
type VaultStats struct {
	Pages    int
	Journals int
	Total    int
}

// ProgressFunc is invoked after each committed batch during ingestion or
// backfill with the cumulative number of processed documents and the total.
type ProgressFunc func(processed, total int)
