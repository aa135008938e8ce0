// Package auth issues and verifies bearer tokens and hashes passwords.
//
// Tokens are HS256-signed JWTs whose subject is the decimal user ID. They are
// stateless: there is no server-side revocation, so a token stays valid until
// it expires. TokenVerifier is the single gate protected routes go through; it
// validates the token and then confirms the subject still names a stored user.
package auth
