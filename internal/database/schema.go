package database

import _ "embed"

// Schema is the full store schema as generated from the migration files.
// Tests apply it directly to in-memory databases instead of running the
// migration machinery.
//
//go:embed sqlc/schema.sql
var Schema string
