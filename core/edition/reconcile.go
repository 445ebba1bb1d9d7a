package edition

// annotationQueue is a FIFO cursor over the rows sharing one surface-form
// key, in the annotation table's original row order. The consume-exactly-one
// contract of Reconcile lives here rather than in ad hoc slice mutation
// during the traversal.
type annotationQueue struct {
	rows []AnnotationRow
	next int
}

// pop dequeues the front row. ok is false once the queue is exhausted.
func (q *annotationQueue) pop() (AnnotationRow, bool) {
	if q.next >= len(q.rows) {
		return AnnotationRow{}, false
	}
	r := q.rows[q.next]
	q.next++
	return r, true
}

// Reconcile merges an external annotation table into doc and returns doc.
//
// Rows are grouped by Key into queues preserving table order. Words are
// visited in document order (unit order, then word order within the unit);
// each word whose SurfaceForm has a non-exhausted queue consumes exactly one
// row from the front. The queues are shared across the whole document, so
// two occurrences of the same surface form in different units draw the first
// and second row for that key, in that order. Row fields overwrite word
// fields only when non-empty; an empty row field never erases a parsed
// value. Words with no queue, or an exhausted one, are left untouched.
//
// Reconcile must be applied at most once per document: a second run with the
// same table consumes the queues again and misassigns rows. A nil or empty
// rows slice is a no-op.
func Reconcile(doc *Document, rows []AnnotationRow) *Document {
	if doc == nil || len(rows) == 0 {
		return doc
	}

	queues := make(map[string]*annotationQueue)
	for _, row := range rows {
		if row.Key == "" {
			continue
		}
		q := queues[row.Key]
		if q == nil {
			q = &annotationQueue{}
			queues[row.Key] = q
		}
		q.rows = append(q.rows, row)
	}

	for _, unit := range doc.Units {
		for _, word := range unit.Words {
			q := queues[word.SurfaceForm]
			if q == nil {
				continue
			}
			row, ok := q.pop()
			if !ok {
				continue
			}
			applyRow(word, row)
		}
	}
	return doc
}

// applyRow overwrites word fields from row, skipping empty row fields.
func applyRow(w *Word, row AnnotationRow) {
	if row.Lemma != "" {
		w.Lemma = row.Lemma
	}
	if row.Grammar != "" {
		w.Grammar = row.Grammar
	}
	if row.EnglishGloss != "" {
		w.EnglishGloss = row.EnglishGloss
	}
	if row.GreekGloss != "" {
		w.GreekGloss = row.GreekGloss
	}
}
