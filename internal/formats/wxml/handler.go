// Package wxml parses the witness XML markup into the edition model.
//
// The markup has a header section with descriptive metadata and a body
// section holding the ordered content units:
//
//	<witness>
//	  <header>
//	    <title/> <editor/> <contact/> <publisher/> <pubPlace/> <pubDate/>
//	    <sourceStatus/> <location/> <origin/> <notes/>
//	  </header>
//	  <body>
//	    <unit n="III.1">
//	      <source>…</source>
//	      <translation>…</translation>
//	      <w lemma="…" grammar="…" en="…" grc="…">surface</w>
//	    </unit>
//	  </body>
//	</witness>
//
// Every field is optional; absence degrades to the empty string. Parsing is
// total: markup with no recognizable structure still yields a valid, empty
// Document, never an error.
package wxml

import (
	"strconv"

	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/core/xml"
)

// Parse converts one witness's markup into a Document. It never fails:
// malformed or empty input produces a Document with default fields, which
// downstream code renders as a "not found" state.
func Parse(data []byte, identifier string) *edition.Document {
	doc := &edition.Document{Identifier: identifier}

	x, err := xml.Parse(data)
	if err != nil {
		return doc
	}

	parseHeader(x, doc)
	parseBody(x, doc)
	return doc
}

// parseHeader extracts each descriptive field independently, so the absence
// of one never affects the others.
func parseHeader(x *xml.Document, doc *edition.Document) {
	doc.Title = x.FindText("//header/title")
	doc.Editor = x.FindText("//header/editor")
	doc.Contact = x.FindText("//header/contact")
	doc.Publisher = x.FindText("//header/publisher")
	doc.PubPlace = x.FindText("//header/pubPlace")
	doc.PubDate = x.FindText("//header/pubDate")
	doc.SourceStatus = x.FindText("//header/sourceStatus")
	doc.Location = x.FindText("//header/location")
	doc.Origin = x.FindText("//header/origin")
	doc.Notes = x.FindText("//header/notes")
}

// parseBody reads the content units. Only DIRECT children of the body
// element count as units: unit elements nested inside quotations or other
// sections belong to those sections and must not be hoisted into the
// document sequence.
func parseBody(x *xml.Document, doc *edition.Document) {
	body := x.First("//body")
	if body == nil {
		return
	}

	for i, un := range body.DirectChildren("unit") {
		unit := &edition.Unit{
			Index:       un.Attr("n"),
			SourceText:  un.ChildText("source"),
			Translation: un.ChildText("translation"),
		}
		if unit.Index == "" {
			// Fall back to the unit's 1-based position in the sequence.
			unit.Index = strconv.Itoa(i + 1)
		}
		for _, w := range un.DirectChildren("w") {
			unit.Words = append(unit.Words, &edition.Word{
				SurfaceForm:  w.Text(),
				Lemma:        w.Attr("lemma"),
				Grammar:      w.Attr("grammar"),
				EnglishGloss: w.Attr("en"),
				GreekGloss:   w.Attr("grc"),
			})
		}
		doc.Units = append(doc.Units, unit)
	}
}
