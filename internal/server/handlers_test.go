package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scriptoria/witness/core/edition"
)

func testCorpus() *edition.Corpus {
	verse := func(index string, surfaces ...string) *edition.Unit {
		u := &edition.Unit{Index: index}
		for _, s := range surfaces {
			u.Words = append(u.Words, &edition.Word{SurfaceForm: s})
		}
		return u
	}
	docA := &edition.Document{
		Identifier: "codex-a",
		Title:      "Codex A",
		Digest:     "abc123",
		Units: []*edition.Unit{
			{Index: "I"},
			verse("I.1", "a", "b"),
			verse("I.2", "b", "c"),
		},
	}
	docB := &edition.Document{
		Identifier: "codex-b",
		Title:      "Codex B",
		Units:      []*edition.Unit{verse("1", "d")},
	}
	return edition.Aggregate([]edition.LoadResult{
		{Document: docA},
		{Document: docB},
	})
}

func newTestServer() *httptest.Server {
	s := New(Config{Addr: ":0"}, testCorpus())
	return httptest.NewServer(s.Handler())
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHandleDocuments(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var resp documentsResponse
	getJSON(t, ts.URL+"/api/documents", http.StatusOK, &resp)

	if len(resp.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(resp.Documents))
	}
	first := resp.Documents[0]
	if first.ID != "codex-a" || first.Units != 3 || first.Words != 4 || first.Digest != "abc123" {
		t.Errorf("summary = %+v", first)
	}
}

func TestHandleDocument(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var doc edition.Document
	getJSON(t, ts.URL+"/api/documents/codex-a", http.StatusOK, &doc)
	if doc.Title != "Codex A" || len(doc.Units) != 3 {
		t.Errorf("document = %+v", doc)
	}

	getJSON(t, ts.URL+"/api/documents/ghost", http.StatusNotFound, nil)
}

func TestHandleChapters(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var resp chaptersResponse
	getJSON(t, ts.URL+"/api/documents/codex-a/chapters", http.StatusOK, &resp)
	if len(resp.Chapters) != 1 || resp.Chapters[0] != "I" {
		t.Errorf("chapters = %v", resp.Chapters)
	}

	// A witness with no boundary still answers with an empty list.
	getJSON(t, ts.URL+"/api/documents/codex-b/chapters", http.StatusOK, &resp)
	if len(resp.Chapters) != 0 {
		t.Errorf("chapters = %v, want empty", resp.Chapters)
	}
}

func TestHandleUnits(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var resp unitsResponse
	getJSON(t, ts.URL+"/api/documents/codex-a/units", http.StatusOK, &resp)
	if len(resp.Units) != 3 {
		t.Errorf("got %d units, want all 3", len(resp.Units))
	}

	getJSON(t, ts.URL+"/api/documents/codex-a/units?ref=I.2", http.StatusOK, &resp)
	if len(resp.Units) != 1 || resp.Units[0].Index != "I.2" {
		t.Errorf("ref I.2 resolved to %+v", resp.Units)
	}

	getJSON(t, ts.URL+"/api/documents/codex-a/units?ref=%5Bbad", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/documents/codex-a/units?ref=IX.1", http.StatusNotFound, nil)
}

func TestHandleSearch(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var resp searchResponse
	getJSON(t, ts.URL+"/api/search?q=b", http.StatusOK, &resp)

	if resp.Total != 2 || len(resp.Hits) != 1 {
		t.Fatalf("search response = %+v", resp)
	}
	hit := resp.Hits[0]
	if hit.Document != "codex-a" || hit.Count != 2 {
		t.Errorf("hit = %+v", hit)
	}
	if hit.Occurrences[0].LeftContext != "a" || hit.Occurrences[0].RightContext != "" {
		t.Errorf("occurrence 1 = %+v", hit.Occurrences[0])
	}
	if hit.Occurrences[1].LeftContext != "" || hit.Occurrences[1].RightContext != "c" {
		t.Errorf("occurrence 2 = %+v", hit.Occurrences[1])
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var resp searchResponse
	getJSON(t, ts.URL+"/api/search?q=", http.StatusOK, &resp)
	if resp.Total != 0 || len(resp.Hits) != 0 {
		t.Errorf("empty query matched: %+v", resp)
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	var resp map[string]any
	getJSON(t, ts.URL+"/healthz", http.StatusOK, &resp)
	if resp["status"] != "ok" {
		t.Errorf("health = %+v", resp)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
