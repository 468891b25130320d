// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random hex string.
//
// byteLength is the entropy in bytes; the returned string is twice as long
// after hex encoding. Used for refresh tokens, password reset tokens and
// email verification tokens.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Refresh tokens are stored only as digests so a database leak never exposes
// usable credentials. SHA-256 (not bcrypt) is intentional here: the input is
// already high-entropy, so brute-force cost is irrelevant and lookups must be
// deterministic for indexed retrieval.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
