package domain

// Snippet sentinel markers wrapped around matched terms by the engine's
// highlighter. Callers that render results can replace them with whatever
// emphasis their output medium supports.
const (
	SnippetStart = ">>>"
	SnippetEnd   = "<<<"
)

// Default hybrid ranking parameters. The 0.3 floor matches observed
// behaviour of the corpus this tool grew up with; it carries no deeper
// meaning and is configurable for that reason.
const (
	DefaultFTSWeight       = 0.5
	DefaultSemanticWeight  = 0.5
	DefaultSimilarityFloor = 0.3
)

// LexicalResult is one row from keyword (full-text) search.
type LexicalResult struct {
	ID       int64
	Filename string
	DocType  DocType
	Title    string

	// Rank is the engine's term-weighted relevance score; higher is better.
	Rank float64

	// Snippet is a highlighted window of the content with matched terms
	// wrapped in SnippetStart/SnippetEnd.
	Snippet string
}

// SemanticResult is one row from vector similarity search.
type SemanticResult struct {
	ID       int64
	Filename string
	DocType  DocType
	Title    string

	// Similarity is 1 - cosine distance, in [-1, 1]; higher is closer.
	Similarity float64

	// Snippet is a plain content prefix. No relevance highlighting is
	// available in this mode.
	Snippet string
}

// HybridResult is one row from combined lexical + semantic search.
type HybridResult struct {
	ID       int64
	Filename string
	DocType  DocType
	Title    string

	// FTSRank is the lexical relevance score, 0 when the document has no
	// lexical match for the query.
	FTSRank float64

	// Similarity is the semantic similarity, 0 when the document has no
	// embedding.
	Similarity float64

	// Combined is FTSRank*FTSWeight + Similarity*SemanticWeight.
	Combined float64

	// Snippet is the lexical highlight against the plain query, or a
	// content prefix for rows that surfaced on similarity alone.
	Snippet string
}

// HybridOptions configures a hybrid search. Weights are not validated to
// sum to 1; any real-valued combination is accepted.
type HybridOptions struct {
	// Limit caps the number of returned rows. It is passed through to the
	// engine's row-limiting semantics unvalidated.
	Limit int

	// DocType optionally restricts results to one document type.
	// Empty means no filter.
	DocType DocType

	// FTSWeight scales the lexical rank contribution.
	FTSWeight float64

	// SemanticWeight scales the similarity contribution.
	SemanticWeight float64

	// SimilarityFloor is the inclusion threshold for documents with no
	// lexical match: they surface only when similarity exceeds it.
	SimilarityFloor float64
}

// DefaultHybridOptions returns HybridOptions with the stock equal
// weighting and inclusion floor.
func DefaultHybridOptions(limit int) HybridOptions {
	return HybridOptions{
		Limit:           limit,
		FTSWeight:       DefaultFTSWeight,
		SemanticWeight:  DefaultSemanticWeight,
		SimilarityFloor: DefaultSimilarityFloor,
	}
}
