// Package store provides SQLite-backed durable storage for brilir conversion runs.
//
// Every conversion the CLI performs with --db is appended to the runs table:
// the hash of the input bytes, the feature string it ran under, and either the
// resolved program (with its fingerprint) or the error code and display text.
// A later run with the same source hash and feature string is served from the
// most recent successful record.
//
// # Ordering
//
// All queries order by seq, the AUTOINCREMENT rowid. Run IDs are UUIDv7 strings
// and are never used for ordering.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Program hashes are computed by ir.Fingerprint and source hashes by
// ir.SourceHash, both SHA-256 with domain separation.
package store
