// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted, self-describing encoded record from a plaintext password.
	// Each call draws a fresh random salt, so hashing the same password twice
	// yields different records.
	Hash(password string) (string, error)

	// Check compares a plaintext password with an encoded record.
	// It returns false for malformed records instead of erroring, so a
	// corrupted row behaves like a wrong password.
	Check(password, encoded string) bool
}
