// Package edition defines the in-memory model for a multi-witness digital
// edition: annotated words, verse-level units, per-manuscript documents, and
// the corpus that aggregates them.
//
// The model is built once per process by the ingestion pipeline
// (internal/loader) and is treated as immutable afterwards. The only
// sanctioned mutation is Reconcile, which merges an external annotation
// table into a freshly parsed Document exactly once. Everything downstream
// (concordance search, chapter navigation, the HTTP API) reads the model
// concurrently without synchronization.
package edition
