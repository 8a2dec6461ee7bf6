// Package sqlite provides the SQLite-based catalog store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// Float columns are nullable. SQLite has no NaN, so a NaN price or
// measurement is stored as NULL and read back as NaN.
//
// # Data Location
//
// By default, the database is stored at ~/.sourcy/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
