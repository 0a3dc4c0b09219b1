package jwt

import "time"

// Well-known header keys.
const (
	HeaderAlgorithm   = "alg"
	HeaderType        = "typ"
	HeaderContentType = "cty"
	HeaderKeyID       = "kid"
)

// TypeJWT is the conventional value of the "typ" header.
const TypeJWT = "JWT"

// Registered claim keys as defined in RFC 7519.
const (
	ClaimIssuer     = "iss"
	ClaimSubject    = "sub"
	ClaimAudience   = "aud"
	ClaimExpiration = "exp"
	ClaimNotBefore  = "nbf"
	ClaimIssuedAt   = "iat"
	ClaimID         = "jti"
)

// Header holds the token header fields. Additional non-standard keys are
// carried verbatim. The "alg" entry is owned by the Encoder and always
// reflects the algorithm that actually signed the token.
type Header map[string]any

// Algorithm returns the "alg" header value, or "" when absent or not a
// string.
func (h Header) Algorithm() string {
	v, _ := h[HeaderAlgorithm].(string)
	return v
}

// Type returns the "typ" header value, or "" when absent.
func (h Header) Type() string {
	v, _ := h[HeaderType].(string)
	return v
}

// KeyID returns the "kid" header value, or "" when absent. Commonly used to
// pick a verification key after a header-only decode.
func (h Header) KeyID() string {
	v, _ := h[HeaderKeyID].(string)
	return v
}

// Claims holds the token payload as a claim name to value mapping.
type Claims map[string]any

// ID returns the "jti" claim, or "" when absent.
func (c Claims) ID() string {
	v, _ := c[ClaimID].(string)
	return v
}

// Subject returns the "sub" claim, or "" when absent.
func (c Claims) Subject() string {
	v, _ := c[ClaimSubject].(string)
	return v
}

// Issuer returns the "iss" claim, or "" when absent.
func (c Claims) Issuer() string {
	v, _ := c[ClaimIssuer].(string)
	return v
}

// Expiration returns the "exp" claim as a time. ok is false when the claim
// is absent; an error means the claim is present but not a valid timestamp.
func (c Claims) Expiration() (t time.Time, ok bool, err error) {
	return c.timeClaim(ClaimExpiration)
}

// NotBefore returns the "nbf" claim as a time.
func (c Claims) NotBefore() (t time.Time, ok bool, err error) {
	return c.timeClaim(ClaimNotBefore)
}

// IssuedAt returns the "iat" claim as a time.
func (c Claims) IssuedAt() (t time.Time, ok bool, err error) {
	return c.timeClaim(ClaimIssuedAt)
}

func (c Claims) timeClaim(name string) (time.Time, bool, error) {
	v, ok := c[name]
	if !ok {
		return time.Time{}, false, nil
	}

	t, err := timestampValue(name, v)
	if err != nil {
		return time.Time{}, true, err
	}
	return t, true, nil
}

// ValidationParameters configure the decode-side policy: whether the
// signature is checked at all and how much clock skew the time-claim checks
// absorb. Use DefaultValidationParameters for the engine defaults; the zero
// value skips signature verification.
type ValidationParameters struct {
	// ValidateSignature controls whether Decode verifies the signature.
	// Disabling it is an explicit opt-out; it is required to accept tokens
	// signed with the None algorithm.
	ValidateSignature bool

	// Leeway is the tolerance applied to expiration and not-before checks.
	Leeway time.Duration
}

// DefaultValidationParameters returns the engine defaults: signature
// validation on, zero leeway.
func DefaultValidationParameters() ValidationParameters {
	return ValidationParameters{ValidateSignature: true}
}
