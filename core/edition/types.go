package edition

// Word is one tokenized, annotatable unit of source-language text.
//
// SurfaceForm is the word exactly as it appears in the source script and is
// the identity key used by annotation reconciliation. It is never changed
// after parsing. The four linguistic fields default to empty and may be
// filled or overridden by Reconcile.
type Word struct {
	// SurfaceForm is the text as written in the manuscript.
	SurfaceForm string `json:"surface"`

	// Lemma is the dictionary form (optional).
	Lemma string `json:"lemma,omitempty"`

	// Grammar is the grammatical form description (optional).
	Grammar string `json:"grammar,omitempty"`

	// EnglishGloss is the English gloss (optional).
	EnglishGloss string `json:"en,omitempty"`

	// GreekGloss is the Greek gloss (optional).
	GreekGloss string `json:"grc,omitempty"`
}

// Unit is one verse-level segment of a Document.
type Unit struct {
	// Index is the unit label: a numeral, a roman numeral, or a structural
	// label. Not guaranteed unique or numeric.
	Index string `json:"index"`

	// SourceText is the raw source-language text. When Words is non-empty,
	// SourceText is advisory only and rendering prefers Words.
	SourceText string `json:"source,omitempty"`

	// Translation is the translation text (optional).
	Translation string `json:"translation,omitempty"`

	// Words is the word-level breakdown in reading order. May be empty.
	Words []*Word `json:"words,omitempty"`
}

// Document is one manuscript witness of the edited text.
//
// A Document is constructed once per ingestion pass, mutated exactly once by
// Reconcile, and treated as immutable for the remainder of the process
// lifetime. All descriptive fields are optional and default to empty.
type Document struct {
	// Identifier is the stable key for this witness (typically the source
	// filename).
	Identifier string `json:"id"`

	// Title is the display title.
	Title string `json:"title,omitempty"`

	// Editor is the responsible editor.
	Editor string `json:"editor,omitempty"`

	// Contact is the editor or distributor contact.
	Contact string `json:"contact,omitempty"`

	// Publisher is the publishing institution.
	Publisher string `json:"publisher,omitempty"`

	// PubPlace is the place of publication.
	PubPlace string `json:"pub_place,omitempty"`

	// PubDate is the date of publication.
	PubDate string `json:"pub_date,omitempty"`

	// SourceStatus describes the state of the transcription source.
	SourceStatus string `json:"source_status,omitempty"`

	// Location is the physical location of the manuscript.
	Location string `json:"location,omitempty"`

	// Origin is the date or region of origin of the manuscript.
	Origin string `json:"origin,omitempty"`

	// Notes is free-text commentary from the header.
	Notes string `json:"notes,omitempty"`

	// ChapterMarker is the literal this witness uses to mark chapter
	// openings. Empty means DefaultChapterMarker.
	ChapterMarker string `json:"chapter_marker,omitempty"`

	// Digest is the BLAKE3 digest of the raw markup source, set by the
	// loader. Presentation layers use it for cache validation.
	Digest string `json:"digest,omitempty"`

	// Units holds the content units in document order.
	Units []*Unit `json:"units,omitempty"`

	// AnnotationNotes holds commentary entries. Currently always empty;
	// reserved for apparatus extensions.
	AnnotationNotes []string `json:"annotation_notes,omitempty"`
}

// AnnotationRow is one record of an external annotation table. Key
// corresponds to a Word's SurfaceForm.
type AnnotationRow struct {
	Key          string `json:"key"`
	Lemma        string `json:"lemma,omitempty"`
	Grammar      string `json:"grammar,omitempty"`
	EnglishGloss string `json:"en,omitempty"`
	GreekGloss   string `json:"grc,omitempty"`
}
