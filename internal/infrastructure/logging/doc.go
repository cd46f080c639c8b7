// Package logging provides structured logging for the storeapp server.
//
// It wraps log/slog with configuration-driven format and level selection
// and stamps every record with the service name and build version.
package logging
