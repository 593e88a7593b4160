// Package export walks and parses a raw personal-data conversation export.
//
// An export is a directory tree of JSON conversation files in the shape
// produced by the major "download your data" exporters: one conversation
// per file, with a message list carrying sender names, timestamps and
// text content. Parsing normalises each file into domain types: text is
// repaired for the exporter's known UTF-8-as-Latin-1 mangling, timestamps
// are coerced to epoch milliseconds, and messages sharing a timestamp get
// stable ordinals so their derived identifiers stay unique.
//
// Parse failures are per-file: the walker keeps streaming and the caller
// decides what to do with the failed path.
package export
