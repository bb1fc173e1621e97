package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driven"
)

// Title matches count for far more than content matches, mirroring the
// intuition that a page named after the query is almost always the page
// the user wants.
const (
	titleWeight   = 10.0
	contentWeight = 1.0
)

// snippetTokens is the size of the highlighted window, in tokens.
const snippetTokens = 50

// searchIndex implements driven.SearchIndex.
type searchIndex struct {
	store *Store
}

var _ driven.SearchIndex = (*searchIndex)(nil)

// Search runs a plain keyword query: every term must match (implicit
// AND), ranked by weighted bm25 descending.
func (s *searchIndex) Search(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.LexicalResult, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT d.id, d.filename, d.doc_type, d.title,
		       -bm25(documents_fts, %g, %g) AS rank,
		       snippet(documents_fts, 1, '%s', '%s', ' ... ', %d) AS snip
		FROM documents_fts
		JOIN documents d ON d.id = documents_fts.rowid
		WHERE documents_fts MATCH ?
	`, titleWeight, contentWeight, domain.SnippetStart, domain.SnippetEnd, snippetTokens)

	args := []any{matchQuery(query)}
	if docType != "" {
		sqlQuery += ` AND d.doc_type = ?`
		args = append(args, string(docType))
	}
	sqlQuery += `
		ORDER BY rank DESC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("running keyword search: %w", err)
	}
	defer rows.Close()

	var results []domain.LexicalResult
	for rows.Next() {
		var r domain.LexicalResult
		var docType string
		if err := rows.Scan(&r.ID, &r.Filename, &docType, &r.Title, &r.Rank, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.DocType = domain.DocType(docType)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// AdvancedSearch runs a query in web-search syntax: quoted phrases, OR
// alternation and -term exclusion.
func (s *searchIndex) AdvancedSearch(ctx context.Context, query string, limit int) ([]domain.LexicalResult, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT d.id, d.filename, d.doc_type, d.title,
		       -bm25(documents_fts, %g, %g) AS rank,
		       snippet(documents_fts, 1, '%s', '%s', ' ... ', %d) AS snip
		FROM documents_fts
		JOIN documents d ON d.id = documents_fts.rowid
		WHERE documents_fts MATCH ?
		ORDER BY rank DESC
		LIMIT ?
	`, titleWeight, contentWeight, domain.SnippetStart, domain.SnippetEnd, snippetTokens)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, advancedMatchQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("running advanced search: %w", err)
	}
	defer rows.Close()

	var results []domain.LexicalResult
	for rows.Next() {
		var r domain.LexicalResult
		var docType string
		if err := rows.Scan(&r.ID, &r.Filename, &docType, &r.Title, &r.Rank, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.DocType = domain.DocType(docType)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// SemanticSearch orders embedding-bearing documents by cosine similarity
// to the query vector, descending. Documents without an embedding are
// excluded.
func (s *searchIndex) SemanticSearch(ctx context.Context, embedding []float32, limit int, docType domain.DocType) ([]domain.SemanticResult, error) {
	sqlQuery := `
		SELECT id, filename, doc_type, title,
		       vec_cosine(embedding, ?) AS similarity,
		       substr(content, 1, 200) AS snip
		FROM documents
		WHERE embedding IS NOT NULL
	`
	args := []any{float32SliceToBytes(embedding)}
	if docType != "" {
		sqlQuery += ` AND doc_type = ?`
		args = append(args, string(docType))
	}
	sqlQuery += `
		ORDER BY similarity DESC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("running semantic search: %w", err)
	}
	defer rows.Close()

	var results []domain.SemanticResult
	for rows.Next() {
		var r domain.SemanticResult
		var docType string
		if err := rows.Scan(&r.ID, &r.Filename, &docType, &r.Title, &r.Similarity, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.DocType = domain.DocType(docType)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// HybridSearch combines lexical rank and semantic similarity. Each side
// is computed in its own CTE and LEFT JOINed onto the document set, with
// absent scores coalesced to zero. A document surfaces when it has any
// lexical match, or when its similarity clears the floor.
func (s *searchIndex) HybridSearch(ctx context.Context, query string, embedding []float32, opts domain.HybridOptions) ([]domain.HybridResult, error) {
	sqlQuery := fmt.Sprintf(`
		WITH lexical AS (
			SELECT documents_fts.rowid AS doc_id,
			       -bm25(documents_fts, %g, %g) AS rank,
			       snippet(documents_fts, 1, '%s', '%s', ' ... ', %d) AS snip
			FROM documents_fts
			WHERE documents_fts MATCH ?
		),
		semantic AS (
			SELECT id AS doc_id,
			       vec_cosine(embedding, ?) AS similarity
			FROM documents
			WHERE embedding IS NOT NULL
		)
		SELECT d.id, d.filename, d.doc_type, d.title,
		       COALESCE(l.rank, 0) AS fts_rank,
		       COALESCE(sem.similarity, 0) AS similarity,
		       COALESCE(l.rank, 0) * ? + COALESCE(sem.similarity, 0) * ? AS combined,
		       COALESCE(l.snip, substr(d.content, 1, 200)) AS snip
		FROM documents d
		LEFT JOIN lexical l ON l.doc_id = d.id
		LEFT JOIN semantic sem ON sem.doc_id = d.id
		WHERE (l.doc_id IS NOT NULL OR COALESCE(sem.similarity, 0) > ?)
	`, titleWeight, contentWeight, domain.SnippetStart, domain.SnippetEnd, snippetTokens)

	args := []any{
		matchQuery(query),
		float32SliceToBytes(embedding),
		opts.FTSWeight,
		opts.SemanticWeight,
		opts.SimilarityFloor,
	}
	if opts.DocType != "" {
		sqlQuery += ` AND d.doc_type = ?`
		args = append(args, string(opts.DocType))
	}
	sqlQuery += `
		ORDER BY combined DESC
		LIMIT ?
	`
	args = append(args, opts.Limit)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("running hybrid search: %w", err)
	}
	defer rows.Close()

	var results []domain.HybridResult
	for rows.Next() {
		var r domain.HybridResult
		var docType string
		if err := rows.Scan(&r.ID, &r.Filename, &docType, &r.Title,
			&r.FTSRank, &r.Similarity, &r.Combined, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.DocType = domain.DocType(docType)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// ==================== Query Builders ====================

// matchQuery turns a plain user query into an FTS MATCH expression:
// each whitespace-separated term is quoted so engine operators lose
// their meaning, and adjacency means AND.
func matchQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = quoteTerm(term)
	}
	return strings.Join(quoted, " ")
}

// advancedMatchQuery translates web-search syntax into an FTS MATCH
// expression. Double-quoted phrases pass through as phrases, a bare OR
// keeps its operator meaning, and a leading minus becomes NOT. All other
// terms are quoted literals.
func advancedMatchQuery(query string) string {
	var out []string
	rest := query
	for {
		rest = strings.TrimLeft(rest, " \t\n")
		if rest == "" {
			break
		}

		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				// Unbalanced quote; treat the remainder as one phrase.
				out = append(out, quoteTerm(rest[1:]))
				break
			}
			out = append(out, `"`+strings.ReplaceAll(rest[1:1+end], `"`, `""`)+`"`)
			rest = rest[end+2:]
			continue
		}

		term := rest
		if i := strings.IndexAny(rest, " \t\n"); i >= 0 {
			term = rest[:i]
			rest = rest[i:]
		} else {
			rest = ""
		}

		switch {
		case term == "OR":
			out = append(out, "OR")
		case strings.HasPrefix(term, "-") && len(term) > 1:
			out = append(out, "NOT "+quoteTerm(term[1:]))
		default:
			out = append(out, quoteTerm(term))
		}
	}
	return strings.Join(out, " ")
}

// quoteTerm wraps a single term in FTS string-literal quotes, escaping
// embedded quotes by doubling.
func quoteTerm(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
}
