package edition

// LoadResult is the outcome of one witness ingestion attempt. Exactly one of
// Document and Err is meaningful.
type LoadResult struct {
	// Identifier names the source that was loaded, for logging.
	Identifier string

	// Document is the ingested witness, nil when ingestion failed.
	Document *Document

	// Err is the ingestion failure, nil on success.
	Err error
}

// Corpus is the ordered collection of successfully ingested witnesses.
// Order is the configured load order, not alphabetical. A Corpus is
// immutable after Aggregate and safe for concurrent reads.
type Corpus struct {
	documents []*Document
}

// Aggregate builds a Corpus from per-witness load results. Failed loads are
// dropped; the relative order of the surviving documents matches the order
// of results. One witness failing never blocks the others.
func Aggregate(results []LoadResult) *Corpus {
	c := &Corpus{}
	for _, r := range results {
		if r.Err != nil || r.Document == nil {
			continue
		}
		c.documents = append(c.documents, r.Document)
	}
	return c
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.documents)
}

// Document returns the i-th document in corpus order.
func (c *Corpus) Document(i int) *Document {
	return c.documents[i]
}

// Documents returns the documents in corpus order. The returned slice is a
// copy; the corpus itself cannot be reordered through it.
func (c *Corpus) Documents() []*Document {
	out := make([]*Document, len(c.documents))
	copy(out, c.documents)
	return out
}

// ByIdentifier returns the document with the given identifier, or nil.
func (c *Corpus) ByIdentifier(id string) *Document {
	for _, d := range c.documents {
		if d.Identifier == id {
			return d
		}
	}
	return nil
}
