package edition

import (
	"regexp"
	"strings"
)

// DefaultChapterMarker is the chapter-opening literal assumed when a witness
// configures none. Witnesses that mark chapters with a different convention
// set Document.ChapterMarker at ingestion time.
const DefaultChapterMarker = "Chapter"

// romanNumeralPattern matches a roman numeral in standard subtractive
// notation, case-insensitively. It intentionally rejects the empty string
// and malformed repetitions such as "IIII".
var romanNumeralPattern = regexp.MustCompile(`^(?i)M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// IsChapterBoundary reports whether u opens a new chapter rather than
// carrying verse text. The source markup is inconsistent across witnesses:
// some mark chapters with a dedicated label, some repurpose the index field
// with roman numerals, some mix the label into running text. One rule per
// convention; a unit is a boundary if any rule matches. The numeral and
// inline rules require near-zero word content so that genuine short verses
// are not misclassified.
func IsChapterBoundary(u *Unit, marker string) bool {
	if u == nil {
		return false
	}
	if marker == "" {
		marker = DefaultChapterMarker
	}
	return markerExact(u, marker) || romanHeading(u) || markerInline(u, marker)
}

// markerExact: the unit's source text is exactly the chapter marker.
// Word count does not matter for this rule.
func markerExact(u *Unit, marker string) bool {
	return u.SourceText == marker
}

// romanHeading: the unit's index is a valid roman numeral and the unit
// carries no words at all.
func romanHeading(u *Unit) bool {
	if len(u.Words) != 0 {
		return false
	}
	ix := strings.TrimSpace(u.Index)
	return ix != "" && romanNumeralPattern.MatchString(ix)
}

// markerInline: the chapter marker appears inside the source text and the
// unit carries at most two words.
func markerInline(u *Unit, marker string) bool {
	return len(u.Words) <= 2 && strings.Contains(u.SourceText, marker)
}

// Chapters returns the navigation index for doc: the Index values of its
// chapter-boundary units, in document order. The document text itself is
// left unaltered. An empty marker falls back to the document's configured
// marker, then to DefaultChapterMarker.
func Chapters(doc *Document, marker string) []string {
	if doc == nil {
		return nil
	}
	if marker == "" {
		marker = doc.ChapterMarker
	}
	var out []string
	for _, u := range doc.Units {
		if IsChapterBoundary(u, marker) {
			out = append(out, u.Index)
		}
	}
	return out
}
