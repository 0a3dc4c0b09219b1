package jwt

import (
	"fmt"
	"strings"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Algorithm is the signing capability behind a token. An instance pairs a
// stable name (written to the header and matched on decode) with key
// material for signing and a verification primitive.
//
// Sign uses the key material the Algorithm was constructed with. Verify is
// handed one candidate key at a time by the Decoder, which trials the
// configured keys in order.
type Algorithm interface {
	// Name returns the stable algorithm name, e.g. "HS256".
	Name() string

	// Sign produces the signature over signingInput.
	Sign(signingInput []byte) ([]byte, error)

	// Verify reports whether signature matches signingInput under key.
	Verify(signingInput, signature, key []byte) bool
}

// AlgorithmNone is the name of the unsigned variant.
const AlgorithmNone = "none"

// ResolveAlgorithm maps an algorithm name to a concrete Algorithm using
// signingKey as its key material, failing closed on unknown names. For the
// HMAC family signingKey is the shared secret; for RSA and ECDSA it is a
// PEM or DER encoded private key and may be nil for a verify-only instance.
//
// The name must come from configuration, never from a token header: the
// Decoder only ever compares the header's name against the configured
// Algorithm and rejects on mismatch.
func ResolveAlgorithm(name string, signingKey []byte) (Algorithm, error) {
	switch name {
	case "HS256":
		return HS256(signingKey), nil
	case "HS384":
		return HS384(signingKey), nil
	case "HS512":
		return HS512(signingKey), nil
	case "RS256":
		return RS256(signingKey)
	case "RS384":
		return RS384(signingKey)
	case "RS512":
		return RS512(signingKey)
	case "ES256":
		return ES256(signingKey)
	case "ES384":
		return ES384(signingKey)
	case "ES512":
		return ES512(signingKey)
	case AlgorithmNone:
		return None(), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm name %q", ErrUnsupportedAlgorithm, name)
	}
}

// isNoneName matches the unsigned algorithm name case-insensitively, so a
// header declaring "None" or "NONE" cannot slip past the gate.
func isNoneName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), AlgorithmNone)
}
