package server

import (
	"encoding/json"
	"net/http"

	"github.com/scriptoria/witness/core/concord"
	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/core/errors"
	"github.com/scriptoria/witness/core/locus"
	"github.com/scriptoria/witness/internal/logging"
)

// ---- JSON response types ------------------------------------------------

type documentSummaryJSON struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Units  int    `json:"units"`
	Words  int    `json:"words"`
	Digest string `json:"digest,omitempty"`
}

type documentsResponse struct {
	Documents []documentSummaryJSON `json:"documents"`
}

type chaptersResponse struct {
	Document string   `json:"document"`
	Chapters []string `json:"chapters"`
}

type unitsResponse struct {
	Document string          `json:"document"`
	Ref      string          `json:"ref,omitempty"`
	Units    []*edition.Unit `json:"units"`
}

type hitJSON struct {
	Document    string               `json:"document"`
	Title       string               `json:"title"`
	Count       int                  `json:"count"`
	Occurrences []concord.Occurrence `json:"occurrences"`
}

type searchResponse struct {
	Query string    `json:"query"`
	Hits  []hitJSON `json:"hits"`
	Total int       `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- handlers -----------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "witnesses": s.corpus.Len()})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	resp := documentsResponse{Documents: []documentSummaryJSON{}}
	for _, doc := range s.corpus.Documents() {
		resp.Documents = append(resp.Documents, summarize(doc))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.corpus.ByIdentifier(r.PathValue("id"))
	if doc == nil {
		writeError(w, errors.NewNotFound("document", r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	doc := s.corpus.ByIdentifier(r.PathValue("id"))
	if doc == nil {
		writeError(w, errors.NewNotFound("document", r.PathValue("id")))
		return
	}
	chapters := edition.Chapters(doc, s.cfg.ChapterMarker)
	if chapters == nil {
		chapters = []string{}
	}
	writeJSON(w, http.StatusOK, chaptersResponse{Document: doc.Identifier, Chapters: chapters})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	doc := s.corpus.ByIdentifier(r.PathValue("id"))
	if doc == nil {
		writeError(w, errors.NewNotFound("document", r.PathValue("id")))
		return
	}

	ref := r.URL.Query().Get("ref")
	if ref == "" {
		writeJSON(w, http.StatusOK, unitsResponse{Document: doc.Identifier, Units: doc.Units})
		return
	}

	loc, err := locus.Parse(ref)
	if err != nil {
		writeError(w, err)
		return
	}
	units, err := locus.Resolve(doc, s.cfg.ChapterMarker, loc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unitsResponse{Document: doc.Identifier, Ref: loc.String(), Units: units})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	hits := s.engine.Search(query)

	resp := searchResponse{Query: query, Hits: []hitJSON{}}
	for _, h := range hits {
		resp.Hits = append(resp.Hits, hitToJSON(h))
		resp.Total += h.Count
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- helpers ------------------------------------------------------------

func summarize(doc *edition.Document) documentSummaryJSON {
	words := 0
	for _, u := range doc.Units {
		words += len(u.Words)
	}
	return documentSummaryJSON{
		ID:     doc.Identifier,
		Title:  doc.Title,
		Units:  len(doc.Units),
		Words:  words,
		Digest: doc.Digest,
	}
}

func hitToJSON(h concord.ManuscriptHit) hitJSON {
	out := hitJSON{Count: h.Count, Occurrences: h.Occurrences}
	if h.Document != nil {
		out.Document = h.Document.Identifier
		out.Title = h.Document.Title
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("response_encode_failed", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
