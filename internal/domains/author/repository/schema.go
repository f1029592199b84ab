package repository

import (
	_ "embed"
)

// Schema is the DDL for the author table. It runs unchanged on PostgreSQL and SQLite.
//
//go:embed schema.sql
var Schema string
