package jwt

import (
	"fmt"
)

// Encoder assembles signed three-segment tokens from a header and a claim
// set. It is stateless per call; the collaborators captured at construction
// are treated as read-only, so a single Encoder is safe for concurrent use
// as long as they are.
type Encoder struct {
	alg        Algorithm
	serializer Serializer
	codec      Codec
}

// NewEncoder builds an Encoder from its collaborators. Every collaborator
// is required; a missing one is a ConfigurationError and no Encoder is
// returned, so a partially wired Encoder is never observable.
func NewEncoder(alg Algorithm, serializer Serializer, codec Codec) (*Encoder, error) {
	switch {
	case alg == nil:
		return nil, &ConfigurationError{Reason: "algorithm not set (call WithAlgorithm)"}
	case serializer == nil:
		return nil, &ConfigurationError{Reason: "serializer not set (call WithSerializer)"}
	case codec == nil:
		return nil, &ConfigurationError{Reason: "codec not set (call WithCodec)"}
	}

	return &Encoder{alg: alg, serializer: serializer, codec: codec}, nil
}

// Encode produces the signed token for header and claims. The header's
// "alg" entry is forced to the configured algorithm's name and "typ"
// defaults to "JWT"; the caller's mappings are not mutated.
func (e *Encoder) Encode(header Header, claims Claims) (string, error) {
	h := make(Header, len(header)+2)
	for k, v := range header {
		h[k] = v
	}
	if _, ok := h[HeaderType]; !ok {
		h[HeaderType] = TypeJWT
	}
	// The alg entry always names the algorithm that signs, regardless of
	// what the caller put there.
	h[HeaderAlgorithm] = e.alg.Name()

	if claims == nil {
		claims = Claims{}
	}

	headerJSON, err := e.serializer.Serialize(h)
	if err != nil {
		return "", fmt.Errorf("failed to serialize header: %w", err)
	}
	claimsJSON, err := e.serializer.Serialize(claims)
	if err != nil {
		return "", fmt.Errorf("failed to serialize claims: %w", err)
	}

	signingInput := e.codec.Encode(headerJSON) + "." + e.codec.Encode(claimsJSON)

	signature, err := e.alg.Sign([]byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	// The trailing dot is always present; with the none algorithm the
	// third segment is empty.
	return signingInput + "." + e.codec.Encode(signature), nil
}
