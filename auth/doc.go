// Package auth implements the authentication pipeline for the movie
// backend: bcrypt credential verification, HS256 token issuance and
// validation, and the HTTP endpoints that expose them. The per-request
// bearer filter lives in middleware/jwtware.
package auth
