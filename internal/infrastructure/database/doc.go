// Package database manages the SQLite connection backing the credential
// and audit tables.
//
// It opens the database with WAL mode and a busy timeout, constrains the
// pool to SQLite's single-writer model, and applies embedded SQL
// migrations at startup. The migrations package registers its embedded
// filesystem here via init().
package database
