package jwt

import (
	"errors"
	"fmt"
	"time"
)

// Category sentinels. Every typed error below unwraps to exactly one of
// these, so callers can branch with errors.Is without inspecting details.
var (
	// ErrConfiguration indicates a required collaborator is missing or the
	// configuration combines options that are rejected up front.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrMalformedToken indicates structurally invalid input: wrong segment
	// count, bad base64url, invalid JSON, or wrong JSON shape.
	ErrMalformedToken = errors.New("malformed token")

	// ErrUnsupportedAlgorithm indicates the token header names an algorithm
	// other than the one configured for verification.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrSignatureVerification indicates no candidate key verified the
	// token signature.
	ErrSignatureVerification = errors.New("signature verification failed")

	// ErrTokenExpired indicates the expiration claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenNotYetValid indicates the not-before claim is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrTokenRevoked indicates the token ID is on the configured denylist.
	ErrTokenRevoked = errors.New("token revoked")
)

// ConfigurationError reports a missing or invalid engine configuration. It
// names the setup call that would fix it.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// MalformedTokenError reports untrusted input that failed structural
// parsing. It is never used for cryptographic failures.
type MalformedTokenError struct {
	Reason string
	Err    error
}

func (e *MalformedTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed token: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed token: %s", e.Reason)
}

func (e *MalformedTokenError) Unwrap() error { return ErrMalformedToken }

// UnsupportedAlgorithmError reports a mismatch between the header's
// algorithm name and the configured algorithm.
type UnsupportedAlgorithmError struct {
	HeaderAlgorithm     string
	ConfiguredAlgorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm: token header declares %q, configured algorithm is %q",
		e.HeaderAlgorithm, e.ConfiguredAlgorithm)
}

func (e *UnsupportedAlgorithmError) Unwrap() error { return ErrUnsupportedAlgorithm }

// SignatureVerificationError reports that every candidate key was tried
// without a match.
type SignatureVerificationError struct {
	KeysTried int
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("signature verification failed after trying %d key(s)", e.KeysTried)
}

func (e *SignatureVerificationError) Unwrap() error { return ErrSignatureVerification }

// TokenExpiredError reports an expiration claim violation.
type TokenExpiredError struct {
	ExpiredAt time.Time
	Now       time.Time
}

func (e *TokenExpiredError) Error() string {
	return fmt.Sprintf("token expired: expired at %s, now is %s",
		e.ExpiredAt.UTC().Format(time.RFC3339), e.Now.UTC().Format(time.RFC3339))
}

func (e *TokenExpiredError) Unwrap() error { return ErrTokenExpired }

// TokenNotYetValidError reports a not-before claim violation.
type TokenNotYetValidError struct {
	NotBefore time.Time
	Now       time.Time
}

func (e *TokenNotYetValidError) Error() string {
	return fmt.Sprintf("token not yet valid: valid from %s, now is %s",
		e.NotBefore.UTC().Format(time.RFC3339), e.Now.UTC().Format(time.RFC3339))
}

func (e *TokenNotYetValidError) Unwrap() error { return ErrTokenNotYetValid }

// TokenRevokedError reports a denylist hit for the token's ID.
type TokenRevokedError struct {
	TokenID string
}

func (e *TokenRevokedError) Error() string {
	return fmt.Sprintf("token revoked: ID %q is denylisted", e.TokenID)
}

func (e *TokenRevokedError) Unwrap() error { return ErrTokenRevoked }
