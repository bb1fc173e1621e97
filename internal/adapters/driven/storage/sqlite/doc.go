// Package sqlite provides a SQLite-based implementation of the driven
// storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. A single Store
// implements two port interfaces through wrapper accessors:
//
//   - DocumentStore: schema bootstrap, batched inserts, backfill reads
//     and writes, direct document reads
//   - SearchIndex: keyword (FTS5/bm25), semantic (vec_cosine) and hybrid
//     ranked retrieval
//
// # Schema
//
// The bootstrap script lives in schema/documents.sql and is embedded at
// compile time. CreateSchema executes it destructively: it is a one-time
// bootstrap, not a migration.
//
// # Vector distance
//
// Cosine similarity is computed inside SQL by vec_cosine, a deterministic
// scalar function registered with the driver. Embeddings are stored as
// little-endian float32 BLOBs.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
