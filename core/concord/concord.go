// Package concord implements the concordance search engine: a linear,
// unindexed scan of every word in the corpus for a query token, returning
// each occurrence with bounded left/right context.
//
// The corpus is small and bounded (a handful of witnesses), so no inverted
// index is built; the scan is O(total words) and side-effect free, safe to
// run concurrently for different queries.
package concord

import (
	"log/slog"
	"strings"

	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/internal/pool"
)

// DefaultContextWidth is the number of words of context captured on each
// side of a match.
const DefaultContextWidth = 3

// Occurrence is a single concordance match.
type Occurrence struct {
	// Match is the surface form that matched the query.
	Match string `json:"match"`

	// LeftContext is up to contextWidth preceding surface forms joined by
	// single spaces, truncated at the unit boundary.
	LeftContext string `json:"left"`

	// RightContext is up to contextWidth following surface forms joined by
	// single spaces, truncated at the unit boundary.
	RightContext string `json:"right"`

	// UnitIndex is the Index of the containing unit.
	UnitIndex string `json:"unit"`

	// DocumentID is the identifier of the containing document.
	DocumentID string `json:"document"`
}

// ManuscriptHit groups the occurrences found in one witness.
type ManuscriptHit struct {
	// Document is the witness the occurrences belong to.
	Document *edition.Document `json:"-"`

	// Occurrences lists matches in in-document scan order.
	Occurrences []Occurrence `json:"occurrences"`

	// Count is len(Occurrences).
	Count int `json:"count"`
}

// Engine scans a corpus for query tokens. An Engine is stateless between
// searches and safe for concurrent use.
type Engine struct {
	corpus  *edition.Corpus
	width   int
	workers int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithContextWidth sets the per-side context window width.
// Default is DefaultContextWidth; non-positive values are ignored.
func WithContextWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.width = width
		}
	}
}

// WithWorkers caps the number of goroutines used to scan documents in
// parallel. Default lets the pool decide; 1 forces a sequential scan.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		e.workers = workers
	}
}

// NewEngine creates a search engine over corpus.
func NewEngine(corpus *edition.Corpus, opts ...Option) *Engine {
	e := &Engine{
		corpus: corpus,
		width:  DefaultContextWidth,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns every occurrence of query across the corpus, grouped by
// witness. The query is matched case-insensitively as a substring of each
// word's surface form. Only witnesses with at least one occurrence appear;
// hit order follows corpus order and occurrence order follows in-document
// scan order. An empty or whitespace-only query matches nothing.
//
// Documents are scanned in parallel; completion order is not submission
// order, so results are reassembled into corpus order before returning.
func (e *Engine) Search(query string) []ManuscriptHit {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || e.corpus == nil {
		return nil
	}

	docs := e.corpus.Documents()
	scanned := pool.Map(docs, e.workers, func(doc *edition.Document) *ManuscriptHit {
		return e.scanDocument(doc, needle)
	})

	var hits []ManuscriptHit
	total := 0
	for _, h := range scanned {
		if h == nil {
			continue
		}
		hits = append(hits, *h)
		total += h.Count
	}
	e.logger.Debug("concordance_search", "query", query, "witnesses", len(hits), "occurrences", total)
	return hits
}

// SearchDocument scans a single witness. It returns nil when the query is
// empty or the witness has no occurrence, and is the streaming building
// block used by the websocket search endpoint.
func (e *Engine) SearchDocument(doc *edition.Document, query string) *ManuscriptHit {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || doc == nil {
		return nil
	}
	return e.scanDocument(doc, needle)
}

func (e *Engine) scanDocument(doc *edition.Document, needle string) *ManuscriptHit {
	var occurrences []Occurrence
	for _, unit := range doc.Units {
		for i, word := range unit.Words {
			if !strings.Contains(strings.ToLower(word.SurfaceForm), needle) {
				continue
			}
			occurrences = append(occurrences, Occurrence{
				Match:        word.SurfaceForm,
				LeftContext:  joinContext(unit.Words, max(0, i-e.width), i),
				RightContext: joinContext(unit.Words, i+1, min(len(unit.Words), i+1+e.width)),
				UnitIndex:    unit.Index,
				DocumentID:   doc.Identifier,
			})
		}
	}
	if len(occurrences) == 0 {
		return nil
	}
	return &ManuscriptHit{
		Document:    doc,
		Occurrences: occurrences,
		Count:       len(occurrences),
	}
}

// joinContext joins the surface forms of words[from:to] with single spaces.
// Bounds are already clamped to the unit, so context never crosses a unit
// boundary.
func joinContext(words []*edition.Word, from, to int) string {
	if from >= to {
		return ""
	}
	forms := make([]string, 0, to-from)
	for _, w := range words[from:to] {
		forms = append(forms, w.SurfaceForm)
	}
	return strings.Join(forms, " ")
}
