package auth

import (
	"crypto/rand"

	"bazar/internal/domain/service"
	"bazar/internal/errors"
)

const (
	// tokenLength is the number of characters in a session token.
	tokenLength = 128

	// tokenAlphabet is the set of characters tokens are drawn from.
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// maxUnbiasedByte is the largest multiple of len(tokenAlphabet) below 256.
// Bytes at or above it are rejected so every character stays equally likely.
const maxUnbiasedByte = byte(256 - (256 % len(tokenAlphabet)))

// alnumTokenGenerator implements TokenService with random alphanumeric tokens.
type alnumTokenGenerator struct{}

// NewTokenGenerator is the constructor for alnumTokenGenerator.
func NewTokenGenerator() service.TokenService {
	return &alnumTokenGenerator{}
}

// GenerateToken returns a 128-character alphanumeric token from crypto/rand.
// Rejection sampling keeps the mapping from bytes to characters bias-free.
func (g *alnumTokenGenerator) GenerateToken() (string, error) {
	token := make([]byte, 0, tokenLength)
	buf := make([]byte, tokenLength)

	for len(token) < tokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", errors.Wrap(err, "failed to read token bytes from entropy source")
		}

		for _, b := range buf {
			if b >= maxUnbiasedByte {
				continue
			}
			token = append(token, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(token) == tokenLength {
				break
			}
		}
	}

	return string(token), nil
}
