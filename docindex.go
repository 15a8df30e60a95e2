// Package docindex builds a local full-text search index from a tree of
// Markdown documentation. Documents are split into header-scoped chunks,
// normalized into a search corpus and written to a single SQLite file that
// a downstream assistant or search client can query offline.
//
// This package contains domain types, interfaces and pure functions
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goldmark/, http/).
package docindex
