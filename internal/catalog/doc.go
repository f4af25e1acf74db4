// Package catalog persists a record of every rendered subtitle track.
//
// The catalog is a SQLite database stored in the configured data directory.
// A file lock next to the database enforces single-writer access across
// processes. If you change the track schema, update schema.sql and bump
// schemaVersion.
package catalog
