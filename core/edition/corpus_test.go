package edition

import (
	"errors"
	"testing"
)

func TestAggregate_DropsFailuresKeepsOrder(t *testing.T) {
	results := []LoadResult{
		{Identifier: "a", Document: &Document{Identifier: "a"}},
		{Identifier: "b", Err: errors.New("fetch failed")},
		{Identifier: "c", Document: &Document{Identifier: "c"}},
		{Identifier: "d", Document: &Document{Identifier: "d"}},
	}

	corpus := Aggregate(results)

	if corpus.Len() != 3 {
		t.Fatalf("Len = %d, want 3", corpus.Len())
	}
	want := []string{"a", "c", "d"}
	for i, id := range want {
		if got := corpus.Document(i).Identifier; got != id {
			t.Errorf("document %d = %q, want %q", i, got, id)
		}
	}
}

func TestAggregate_AllFailed(t *testing.T) {
	corpus := Aggregate([]LoadResult{
		{Identifier: "a", Err: errors.New("boom")},
	})
	if corpus.Len() != 0 {
		t.Errorf("Len = %d, want 0", corpus.Len())
	}
	if corpus.Documents() != nil && len(corpus.Documents()) != 0 {
		t.Error("Documents should be empty")
	}
}

func TestCorpus_ByIdentifier(t *testing.T) {
	corpus := Aggregate([]LoadResult{
		{Document: &Document{Identifier: "sinait"}},
		{Document: &Document{Identifier: "vatic"}},
	})

	if d := corpus.ByIdentifier("vatic"); d == nil || d.Identifier != "vatic" {
		t.Errorf("ByIdentifier(vatic) = %v", d)
	}
	if d := corpus.ByIdentifier("nope"); d != nil {
		t.Errorf("ByIdentifier(nope) = %v, want nil", d)
	}
}

func TestCorpus_DocumentsIsACopy(t *testing.T) {
	corpus := Aggregate([]LoadResult{
		{Document: &Document{Identifier: "a"}},
		{Document: &Document{Identifier: "b"}},
	})

	docs := corpus.Documents()
	docs[0], docs[1] = docs[1], docs[0]

	if corpus.Document(0).Identifier != "a" {
		t.Error("reordering the returned slice mutated the corpus")
	}
}
