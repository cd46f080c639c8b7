// Package auth provides authentication and authorisation for the storeapp
// server.
//
// It implements a 2-tier role model (admin < superadmin) with:
//   - Argon2id password hashing in PHC string format
//   - Stateless HS256 access tokens binding (user id, role, expiry)
//   - A SQLite-backed user repository with a reserved superadmin id
//   - Idempotent superadmin bootstrap on startup
//
// Tokens are verified by signature and expiry only - there is no session
// table and no revocation. Role escalation therefore requires forging the
// token MAC, which requires the server secret.
package auth
