// Package loader runs the ingestion phase: it fans one task per configured
// witness source out over a worker pool, parses and reconciles each witness
// independently, and joins the successes into a corpus.
//
// Sources are independent and share no mutable state, so tasks run without
// locking. A failure in one source is contained: it is logged, surfaces as a
// failed LoadResult, and never cancels or corrupts sibling ingestions.
package loader

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/core/errors"
	"github.com/scriptoria/witness/internal/formats/annot"
	"github.com/scriptoria/witness/internal/formats/wxml"
	"github.com/scriptoria/witness/internal/logging"
	"github.com/scriptoria/witness/internal/pool"
)

// Source configures one witness to ingest. Order of sources establishes
// corpus order.
type Source struct {
	// MarkupPath is the witness markup file. A ".xz" suffix is decompressed
	// transparently.
	MarkupPath string `json:"markup"`

	// AnnotationPath is the optional annotation table. A missing or
	// unreadable table is not an error; the witness keeps its
	// markup-derived annotations.
	AnnotationPath string `json:"annotations,omitempty"`

	// Title overrides the markup header title when non-empty.
	Title string `json:"title,omitempty"`

	// ChapterMarker overrides the chapter-opening literal for this witness.
	ChapterMarker string `json:"chapter_marker,omitempty"`
}

// Manifest is the on-disk ingestion configuration.
type Manifest struct {
	Sources []Source `json:"sources"`
}

// ReadManifest loads an ingestion manifest from a JSON file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &errors.ParseError{Format: "manifest", Input: path, Message: "bad JSON", Err: err}
	}
	return &m, nil
}

// Workers caps ingestion parallelism. Witness counts are small; the default
// keeps file handles modest while still overlapping I/O and parsing.
const Workers = 4

// Load ingests every source concurrently and aggregates the successes in
// configured order. It never fails as a whole: the worst outcome is an
// emptier-than-expected corpus.
func Load(ctx context.Context, sources []Source) *edition.Corpus {
	results := LoadResults(ctx, sources)
	return edition.Aggregate(results)
}

// LoadResults ingests every source concurrently and returns one result per
// source, in configured order, failures included. Callers that only want
// the corpus use Load.
func LoadResults(ctx context.Context, sources []Source) []edition.LoadResult {
	results := pool.Map(sources, Workers, func(src Source) edition.LoadResult {
		return loadOne(ctx, src)
	})
	for _, r := range results {
		if r.Err != nil {
			logging.IngestFailure(r.Identifier, r.Err)
		}
	}
	return results
}

// loadOne ingests a single witness: read markup, parse, reconcile against
// the annotation table when one is configured.
func loadOne(ctx context.Context, src Source) edition.LoadResult {
	id := identifierFor(src.MarkupPath)
	if err := ctx.Err(); err != nil {
		return edition.LoadResult{Identifier: id, Err: err}
	}

	data, err := readSource(src.MarkupPath)
	if err != nil {
		return edition.LoadResult{Identifier: id, Err: err}
	}

	doc := wxml.Parse(data, id)
	doc.Digest = digest(data)
	if src.Title != "" {
		doc.Title = src.Title
	}
	if src.ChapterMarker != "" {
		doc.ChapterMarker = src.ChapterMarker
	}

	if src.AnnotationPath != "" {
		if table, err := readSource(src.AnnotationPath); err != nil {
			// Recovered locally: the witness keeps its parsed annotations.
			logging.Warn("annotation_table_missing", "witness", id, "path", src.AnnotationPath, "error", err.Error())
		} else {
			edition.Reconcile(doc, annot.ReadTable(table))
		}
	}

	logging.IngestEvent(id, len(doc.Units), wordCount(doc))
	return edition.LoadResult{Identifier: id, Document: doc}
}

// readSource reads a source file, decompressing ".xz" sources.
func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return data, nil
}

// digest returns the hex BLAKE3 digest of the raw markup bytes. The
// presentation layer uses it as a cache validator for a witness.
func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// identifierFor derives the stable witness identifier from its markup path:
// the base name with compression and markup extensions stripped.
func identifierFor(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".xz")
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func wordCount(doc *edition.Document) int {
	n := 0
	for _, u := range doc.Units {
		n += len(u.Words)
	}
	return n
}
