// Package auth provides password hashing and bearer-token issuance.
//
// Passwords are stored as bcrypt digests. Access tokens are self-contained
// HS256 JWTs carrying the user's id, email and role; the guard middleware can
// validate them without a store lookup.
package auth
