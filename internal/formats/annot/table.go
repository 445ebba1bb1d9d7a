// Package annot reads the external per-witness annotation table: a tabular
// file with a header row and columns {surface-form key, lemma, grammar,
// English gloss, Greek gloss}. Tables are hand-maintained and messy, so the
// reader is total: the worst malformed input yields zero rows, never an
// error.
package annot

import (
	"encoding/csv"
	"strings"

	"github.com/scriptoria/witness/core/edition"
)

// columnCount is the fixed column layout: key, lemma, grammar, en, grc.
const columnCount = 5

// ReadTable parses annotation table data into rows. The first line is a
// header and is skipped. The delimiter is sniffed from the header: tab when
// the header contains one, comma otherwise. Rows with an empty key are
// ignored; short rows are padded with empty fields; unparsable lines are
// dropped.
func ReadTable(data []byte) []edition.AnnotationRow {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	// No TrimLeadingSpace: with a tab delimiter it swallows empty leading
	// fields and shifts the row's columns. recordToRow trims field by field.

	var rows []edition.AnnotationRow
	first := true
	for {
		record, err := r.Read()
		if err != nil {
			if _, parseErr := err.(*csv.ParseError); parseErr {
				continue // drop the bad line, keep scanning
			}
			break // io.EOF or an unrecoverable reader state
		}
		if first {
			first = false
			continue
		}
		row := recordToRow(record)
		if row.Key == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// sniffDelimiter picks the field delimiter from the header line.
func sniffDelimiter(text string) rune {
	header := text
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	if strings.ContainsRune(header, '\t') {
		return '\t'
	}
	return ','
}

// recordToRow maps a record onto the fixed column layout, padding short
// records with empty fields.
func recordToRow(record []string) edition.AnnotationRow {
	fields := make([]string, columnCount)
	for i := 0; i < columnCount && i < len(record); i++ {
		fields[i] = strings.TrimSpace(record[i])
	}
	return edition.AnnotationRow{
		Key:          fields[0],
		Lemma:        fields[1],
		Grammar:      fields[2],
		EnglishGloss: fields[3],
		GreekGloss:   fields[4],
	}
}
