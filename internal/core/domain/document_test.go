package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocType_Valid(t *testing.T) {
	assert.True(t, DocTypePage.Valid())
	assert.True(t, DocTypeJournal.Valid())
	assert.False(t, DocType("").Valid())
	assert.False(t, DocType("note").Valid())
}

func TestDocument_EmbeddingText(t *testing.T) {
	doc := Document{
		Title:   "Project Ideas",
		Content: "- build a searcher",
	}

	assert.Equal(t, "Project Ideas\n\n- build a searcher", doc.EmbeddingText())
}

func TestDefaultHybridOptions(t *testing.T) {
	opts := DefaultHybridOptions(10)

	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, DocType(""), opts.DocType)
	assert.InDelta(t, 0.5, opts.FTSWeight, 1e-9)
	assert.InDelta(t, 0.5, opts.SemanticWeight, 1e-9)
	assert.InDelta(t, 0.3, opts.SimilarityFloor, 1e-9)
}
