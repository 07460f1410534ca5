// Package credentials derives and compares the peppered digests that stand in
// for ownership on the board. Passwords here are throwaway per-post tokens,
// not account credentials, so a deployment-wide pepper without per-record
// salts is an accepted simplification.
package credentials

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex SHA-256 of "secret:pepper". The pepper is
// a server-side value; a leaked digest table alone cannot be dictionary
// attacked without it.
func Digest(secret, pepper string) string {
	sum := sha256.Sum256([]byte(secret + ":" + pepper))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest for password and compares it with the stored
// one in constant time.
func Verify(password, pepper, storedDigest string) bool {
	return hmac.Equal([]byte(Digest(password, pepper)), []byte(storedDigest))
}
