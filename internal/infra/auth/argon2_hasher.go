// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"bazar/internal/domain/service"
	"bazar/internal/errors"
)

const (
	argon2SaltLength = 16
	argon2KeyLength  = 32

	defaultArgon2MemoryKiB   = 64 * 1024
	defaultArgon2Iterations  = 3
	defaultArgon2Parallelism = 2
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface using argon2id.
// The encoded record is self-describing: parameters and salt travel with the
// hash, so records survive later parameter changes.
type argon2Hasher struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
}

// NewArgon2Hasher is the constructor for argon2Hasher with default parameters.
// It returns the implementation as a service.PasswordHasher interface.
func NewArgon2Hasher() service.PasswordHasher {
	return NewArgon2HasherWithParams(defaultArgon2MemoryKiB, defaultArgon2Iterations, defaultArgon2Parallelism)
}

// NewArgon2HasherWithParams creates a hasher with explicit tuning parameters.
// Zero values fall back to the defaults.
func NewArgon2HasherWithParams(memoryKiB, iterations uint32, parallelism uint8) service.PasswordHasher {
	if memoryKiB == 0 {
		memoryKiB = defaultArgon2MemoryKiB
	}
	if iterations == 0 {
		iterations = defaultArgon2Iterations
	}
	if parallelism == 0 {
		parallelism = defaultArgon2Parallelism
	}

	return &argon2Hasher{
		memoryKiB:   memoryKiB,
		iterations:  iterations,
		parallelism: parallelism,
	}
}

// Hash generates a salted argon2id record from a plaintext password.
// Every call draws a fresh salt from crypto/rand.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to read salt from entropy source")
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memoryKiB, h.parallelism, argon2KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memoryKiB,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Check compares a plaintext password with an encoded argon2id record.
// The key is re-derived with the parameters embedded in the record and
// compared in constant time. Malformed records return false, never an error.
func (h *argon2Hasher) Check(password, encoded string) bool {
	memoryKiB, iterations, parallelism, salt, key, err := decodeArgon2Record(encoded)
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, iterations, memoryKiB, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(derived, key) == 1
}

// decodeArgon2Record parses a "$argon2id$v=19$m=..,t=..,p=..$salt$hash" record.
func decodeArgon2Record(encoded string) (memoryKiB, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, errors.New("malformed argon2id record")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, errors.Wrap(err, "malformed version segment")
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, errors.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKiB, &iterations, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, errors.Wrap(err, "malformed parameter segment")
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.Wrap(err, "malformed salt segment")
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.Wrap(err, "malformed hash segment")
	}
	if len(key) == 0 {
		return 0, 0, 0, nil, nil, errors.New("empty hash segment")
	}

	return memoryKiB, iterations, parallelism, salt, key, nil
}
