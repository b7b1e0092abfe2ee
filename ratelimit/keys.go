package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
)

// ActivateKey throttles activation attempts per client IP.
func ActivateKey(clientIP string) string {
	return "activate:" + clientIP
}

// ValidateKey throttles validation per token. The token is hashed so the key
// differs per token (JWT headers are identical) and the token never lands in the limiter.
func ValidateKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "validate:" + hex.EncodeToString(sum[:])[:16]
}
