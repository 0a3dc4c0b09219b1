package jwt

// One-shot helpers for the common cases. Each call assembles a fresh
// engine; configure a Builder directly when encoding or decoding
// repeatedly with the same setup.

// SignClaims encodes claims into a token signed with alg.
func SignClaims(alg Algorithm, claims Claims) (string, error) {
	return NewBuilder().
		WithAlgorithm(alg).
		WithClaims(claims).
		Encode()
}

// ParseClaims verifies token with alg against the candidate keys, validates
// its time claims, and returns the claims.
func ParseClaims(alg Algorithm, token string, keys ...[]byte) (Claims, error) {
	return NewBuilder().
		WithAlgorithm(alg).
		WithKeys(keys...).
		MustVerifySignature().
		Decode(token)
}

// PeekHeader decodes only the token header, without any verification. It is
// typically used to read the "kid" header before choosing a key for a full
// decode.
func PeekHeader(token string) (Header, error) {
	return NewBuilder().
		DoNotVerifySignature().
		DecodeHeader(token)
}
