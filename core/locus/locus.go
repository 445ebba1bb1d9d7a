// Package locus parses unit references used for navigation: a chapter label
// optionally followed by a unit position or range within the chapter.
//
// Supported forms:
//
//	"III"      whole chapter III
//	"III.12"   unit 12 of chapter III
//	"III.2-5"  units 2 through 5 of chapter III
//	"2:4"      unit 4 of chapter 2 (colon and dot are interchangeable)
//	"2:4-7"    units 4 through 7 of chapter 2
//
// Unit positions are 1-based within the chapter, counted from the unit after
// the chapter boundary.
package locus

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/core/errors"
)

// Locus is a parsed unit reference.
type Locus struct {
	// Chapter is the chapter label: a roman or arabic numeral. Matched
	// case-insensitively against chapter-boundary unit indexes.
	Chapter string `parser:"@(Roman | Number)"`

	// UnitStart is the 1-based unit position within the chapter, nil for a
	// whole-chapter reference.
	UnitStart *int `parser:"( Sep @Number"`

	// UnitEnd is the inclusive range end, nil for a single unit.
	UnitEnd *int `parser:"  ( Dash @Number )? )?"`
}

// locusLexer tokenizes locus references. Roman must precede Number so mixed
// labels like "III" are not split.
var locusLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Roman", Pattern: `(?i)[IVXLCDM]+`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Sep", Pattern: `[.:]`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var locusParser = participle.MustBuild[Locus](
	participle.Lexer(locusLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a locus reference string.
func Parse(input string) (*Locus, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errors.NewParse("locus", input, "empty reference")
	}
	loc, err := locusParser.ParseString("", trimmed)
	if err != nil {
		return nil, &errors.ParseError{Format: "locus", Input: input, Message: "bad reference syntax", Err: err}
	}
	if loc.UnitStart != nil && loc.UnitEnd != nil && *loc.UnitEnd < *loc.UnitStart {
		return nil, errors.NewParse("locus", input, "range end precedes range start")
	}
	return loc, nil
}

// String returns the canonical form of the locus.
func (l *Locus) String() string {
	var b strings.Builder
	b.WriteString(l.Chapter)
	if l.UnitStart != nil {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(*l.UnitStart))
		if l.UnitEnd != nil {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(*l.UnitEnd))
		}
	}
	return b.String()
}

// Resolve returns the units of doc addressed by loc. The chapter label is
// matched case-insensitively against the Index of chapter-boundary units
// (see edition.IsChapterBoundary); the chapter's units are those between its
// boundary unit (exclusive) and the next boundary. When loc has a unit
// position or range, only those 1-based positions within the chapter are
// returned. Unknown chapters and out-of-range positions yield a
// NotFoundError.
func Resolve(doc *edition.Document, marker string, loc *Locus) ([]*edition.Unit, error) {
	if doc == nil {
		return nil, errors.NewNotFound("document", "")
	}
	if marker == "" {
		marker = doc.ChapterMarker
	}

	var chapter []*edition.Unit
	inChapter := false
	for _, u := range doc.Units {
		if edition.IsChapterBoundary(u, marker) {
			if inChapter {
				break
			}
			inChapter = strings.EqualFold(strings.TrimSpace(u.Index), loc.Chapter)
			continue
		}
		if inChapter {
			chapter = append(chapter, u)
		}
	}
	if !inChapter {
		return nil, errors.NewNotFound("chapter", loc.Chapter)
	}
	if loc.UnitStart == nil {
		return chapter, nil
	}

	start := *loc.UnitStart
	end := start
	if loc.UnitEnd != nil {
		end = *loc.UnitEnd
	}
	if start < 1 || start > len(chapter) {
		return nil, errors.NewNotFound("unit", loc.String())
	}
	if end > len(chapter) {
		end = len(chapter)
	}
	return chapter[start-1 : end], nil
}
