// Package api implements the HTTP REST API for the store catalogue backend.
//
// This package provides:
//   - Token issuance (login) and bearer-token authentication
//   - Role-gated admin account management
//   - Catalogue read/write endpoints (public reads, admin writes)
//   - Middleware stack (request ID, logging, recovery, CORS, body limits)
//   - TLS support for production deployments
//
// # Security
//
// Authentication uses stateless HS256 JWT tokens carrying the account id
// and role. There is no revocation: a token stays valid until it expires.
// Catalogue reads are public; all writes require at least the admin role
// and account management requires superadmin.
//
// # Auditing
//
// Write and sign-in activity is recorded asynchronously through a
// buffered channel so audit persistence never back-pressures requests.
package api
