package services

import (
	"context"
	"fmt"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// fakeDocumentStore is an in-memory DocumentStore for service tests.
type fakeDocumentStore struct {
	docs        []domain.Document
	insertCalls [][]domain.Document
	failInsert  error
}

func (f *fakeDocumentStore) CreateSchema(ctx context.Context) error {
	f.docs = nil
	return nil
}

func (f *fakeDocumentStore) InsertDocuments(ctx context.Context, docs []domain.Document) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	batch := make([]domain.Document, len(docs))
	copy(batch, docs)
	f.insertCalls = append(f.insertCalls, batch)
	for i := range batch {
		batch[i].ID = int64(len(f.docs) + 1)
		f.docs = append(f.docs, batch[i])
	}
	return nil
}

func (f *fakeDocumentStore) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			doc := f.docs[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDocumentStore) CountByType(ctx context.Context) (map[domain.DocType]int, error) {
	counts := make(map[domain.DocType]int)
	for i := range f.docs {
		counts[f.docs[i].DocType]++
	}
	return counts, nil
}

func (f *fakeDocumentStore) CountMissingEmbeddings(ctx context.Context) (int, error) {
	count := 0
	for i := range f.docs {
		if f.docs[i].Embedding == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeDocumentStore) ListMissingEmbeddings(ctx context.Context, limit int) ([]domain.Document, error) {
	var out []domain.Document
	for i := range f.docs {
		if f.docs[i].Embedding == nil {
			out = append(out, f.docs[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeDocumentStore) SetEmbeddings(ctx context.Context, docs []domain.Document) error {
	for _, doc := range docs {
		for i := range f.docs {
			if f.docs[i].ID == doc.ID {
				f.docs[i].Embedding = doc.Embedding
			}
		}
	}
	return nil
}

// fakeEmbedder returns a deterministic vector per input and records
// batch sizes.
type fakeEmbedder struct {
	batchSizes []int
	failWith   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.batchSizes = append(f.batchSizes, len(texts))
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake-model" }

func (f *fakeEmbedder) Ping(ctx context.Context) error { return nil }

func (f *fakeEmbedder) Close() error { return nil }

// fakeSearchIndex records the arguments of the last call and plays back
// canned results.
type fakeSearchIndex struct {
	lastQuery     string
	lastEmbedding []float32
	lastOpts      domain.HybridOptions

	lexical  []domain.LexicalResult
	semantic []domain.SemanticResult
	hybrid   []domain.HybridResult
	failWith error
}

func (f *fakeSearchIndex) Search(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.LexicalResult, error) {
	f.lastQuery = query
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.lexical, nil
}

func (f *fakeSearchIndex) AdvancedSearch(ctx context.Context, query string, limit int) ([]domain.LexicalResult, error) {
	f.lastQuery = query
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.lexical, nil
}

func (f *fakeSearchIndex) SemanticSearch(ctx context.Context, embedding []float32, limit int, docType domain.DocType) ([]domain.SemanticResult, error) {
	f.lastEmbedding = embedding
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.semantic, nil
}

func (f *fakeSearchIndex) HybridSearch(ctx context.Context, query string, embedding []float32, opts domain.HybridOptions) ([]domain.HybridResult, error) {
	f.lastQuery = query
	f.lastEmbedding = embedding
	f.lastOpts = opts
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.hybrid, nil
}

// errSimulated stands in for any infrastructure failure.
var errSimulated = fmt.Errorf("simulated failure")
