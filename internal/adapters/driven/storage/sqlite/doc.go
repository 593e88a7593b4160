// Package sqlite implements the pack store on SQLite via modernc.org/sqlite
// (no CGo). One database file holds the canonical schema (messages,
// documents, source_files) and the derived FTS5 index, so a single
// transaction can cover a file's rows, its index entries and its
// fingerprint — the property the ingestion invariants rest on.
//
// The Store type exposes the driven port interfaces through small wrapper
// types, mirroring the one-database many-interfaces layout of the rest of
// the adapters.
package sqlite
