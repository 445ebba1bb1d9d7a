package edition

import "testing"

func TestIsChapterBoundary_ExactMarker(t *testing.T) {
	// Rule (a) holds regardless of word count.
	u := &Unit{
		Index:      "12",
		SourceText: "Chapter",
		Words:      []*Word{word("a"), word("b"), word("c"), word("d"), word("e")},
	}
	if !IsChapterBoundary(u, "Chapter") {
		t.Error("exact marker text should always be a boundary")
	}
}

func TestIsChapterBoundary_RomanIndex(t *testing.T) {
	tests := []struct {
		name string
		unit *Unit
		want bool
	}{
		{"roman index, zero words", &Unit{Index: "III"}, true},
		{"roman index, five words", &Unit{Index: "III", Words: []*Word{word("a"), word("b"), word("c"), word("d"), word("e")}}, false},
		{"lowercase roman", &Unit{Index: "xiv"}, true},
		{"subtractive notation", &Unit{Index: "XC"}, true},
		{"malformed repetition", &Unit{Index: "IIII"}, false},
		{"arabic index", &Unit{Index: "14"}, false},
		{"empty index", &Unit{Index: ""}, false},
		{"non-numeral label", &Unit{Index: "prol"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChapterBoundary(tt.unit, "Chapter"); got != tt.want {
				t.Errorf("IsChapterBoundary(%+v) = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}
}

func TestIsChapterBoundary_InlineMarker(t *testing.T) {
	short := &Unit{SourceText: "Chapter the second", Words: []*Word{word("a"), word("b")}}
	if !IsChapterBoundary(short, "Chapter") {
		t.Error("marker substring with two words should be a boundary")
	}

	long := &Unit{SourceText: "and in that Chapter it is written", Words: []*Word{word("a"), word("b"), word("c")}}
	if IsChapterBoundary(long, "Chapter") {
		t.Error("marker substring with three words is a genuine verse, not a boundary")
	}
}

func TestIsChapterBoundary_CustomMarker(t *testing.T) {
	u := &Unit{SourceText: "CAPUT"}
	if IsChapterBoundary(u, "Chapter") {
		t.Error("default marker should not match a different convention")
	}
	if !IsChapterBoundary(u, "CAPUT") {
		t.Error("custom marker should match")
	}
}

func TestIsChapterBoundary_NilUnit(t *testing.T) {
	if IsChapterBoundary(nil, "Chapter") {
		t.Error("nil unit is never a boundary")
	}
}

func TestChapters(t *testing.T) {
	doc := docWithUnits(
		&Unit{Index: "I"},
		&Unit{Index: "I.1", SourceText: "verse text", Words: []*Word{word("a"), word("b"), word("c")}},
		&Unit{Index: "I.2", SourceText: "more text", Words: []*Word{word("d"), word("e"), word("f")}},
		&Unit{Index: "II"},
		&Unit{Index: "II.1", SourceText: "text", Words: []*Word{word("g"), word("h"), word("i")}},
	)

	got := Chapters(doc, "")
	want := []string{"I", "II"}
	if len(got) != len(want) {
		t.Fatalf("Chapters = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Chapters[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChapters_DocumentMarkerUsed(t *testing.T) {
	doc := docWithUnits(
		&Unit{Index: "1", SourceText: "CAPUT"},
		&Unit{Index: "2", SourceText: "verse", Words: []*Word{word("a"), word("b"), word("c")}},
	)
	doc.ChapterMarker = "CAPUT"

	if got := Chapters(doc, ""); len(got) != 1 || got[0] != "1" {
		t.Errorf("Chapters with document marker = %v, want [1]", got)
	}
}

func TestChapters_NilDocument(t *testing.T) {
	if got := Chapters(nil, "Chapter"); got != nil {
		t.Errorf("Chapters(nil) = %v, want nil", got)
	}
}
