package service

// TokenService defines the interface for generating opaque session tokens.
// Tokens carry no claims; their only property is unguessability.
type TokenService interface {
	// GenerateToken returns a fresh random bearer token.
	// A failure of the entropy source is fatal to the operation; the caller
	// must never fall back to a weaker token.
	GenerateToken() (string, error)
}
