package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

func storeWithUnembedded(n int) *fakeDocumentStore {
	store := &fakeDocumentStore{}
	for i := 0; i < n; i++ {
		store.docs = append(store.docs, domain.Document{
			ID:       int64(i + 1),
			Filename: "doc.md",
			DocType:  domain.DocTypePage,
			Title:    "doc",
			Content:  "content",
		})
	}
	return store
}

func TestAddEmbeddings_ProgressPerBatch(t *testing.T) {
	store := storeWithUnembedded(5)
	embedder := &fakeEmbedder{}
	svc := NewBackfillService(store, embedder)

	var progress [][2]int
	processed, err := svc.AddEmbeddings(context.Background(), 2, func(p, total int) {
		progress = append(progress, [2]int{p, total})
	})
	require.NoError(t, err)
	assert.Equal(t, 5, processed)
	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, progress)
	assert.Equal(t, []int{2, 2, 1}, embedder.batchSizes)

	for i := range store.docs {
		assert.NotNil(t, store.docs[i].Embedding)
	}
}

func TestAddEmbeddings_SecondRunIsNoOp(t *testing.T) {
	store := storeWithUnembedded(3)
	svc := NewBackfillService(store, &fakeEmbedder{})

	processed, err := svc.AddEmbeddings(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)

	processed, err = svc.AddEmbeddings(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}

func TestAddEmbeddings_DefaultBatchSize(t *testing.T) {
	store := storeWithUnembedded(3)
	embedder := &fakeEmbedder{}
	svc := NewBackfillService(store, embedder)

	processed, err := svc.AddEmbeddings(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, []int{3}, embedder.batchSizes)
}

func TestAddEmbeddings_EmbedderFailureStopsRun(t *testing.T) {
	store := storeWithUnembedded(3)
	svc := NewBackfillService(store, &fakeEmbedder{failWith: errSimulated})

	processed, err := svc.AddEmbeddings(context.Background(), 2, nil)
	assert.ErrorIs(t, err, errSimulated)
	assert.Equal(t, 0, processed)
}

func TestAddEmbeddings_NoEmbedder(t *testing.T) {
	svc := NewBackfillService(storeWithUnembedded(1), nil)

	_, err := svc.AddEmbeddings(context.Background(), 2, nil)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
