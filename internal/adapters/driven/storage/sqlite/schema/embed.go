// Package schema embeds the SQL bootstrap script for the SQLite store.
package schema

import "embed"

// FS contains the schema SQL embedded at compile time.
//
//go:embed *.sql
var FS embed.FS

// DocumentsFile is the bootstrap script that (re)creates the documents
// table, its full-text index and the maintenance triggers.
const DocumentsFile = "documents.sql"
