package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"configuration", &ConfigurationError{Reason: "algorithm not set"}, ErrConfiguration},
		{"malformed", &MalformedTokenError{Reason: "expected 3 segments"}, ErrMalformedToken},
		{"unsupported algorithm", &UnsupportedAlgorithmError{HeaderAlgorithm: "none", ConfiguredAlgorithm: "HS256"}, ErrUnsupportedAlgorithm},
		{"signature", &SignatureVerificationError{KeysTried: 2}, ErrSignatureVerification},
		{"expired", &TokenExpiredError{ExpiredAt: now, Now: now.Add(time.Hour)}, ErrTokenExpired},
		{"not yet valid", &TokenNotYetValidError{NotBefore: now, Now: now.Add(-time.Hour)}, ErrTokenNotYetValid},
		{"revoked", &TokenRevokedError{TokenID: "tok-1"}, ErrTokenRevoked},
	}

	sentinels := []error{
		ErrConfiguration, ErrMalformedToken, ErrUnsupportedAlgorithm,
		ErrSignatureVerification, ErrTokenExpired, ErrTokenNotYetValid,
		ErrTokenRevoked,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.NotEmpty(t, tt.err.Error())

			// Each category matches exactly one sentinel.
			for _, s := range sentinels {
				if s == tt.sentinel {
					continue
				}
				assert.NotErrorIs(t, tt.err, s)
			}
		})
	}
}

func TestErrorDetailsViaAs(t *testing.T) {
	var sigErr *SignatureVerificationError
	err := error(&SignatureVerificationError{KeysTried: 3})
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, 3, sigErr.KeysTried)

	var algErr *UnsupportedAlgorithmError
	err = error(&UnsupportedAlgorithmError{HeaderAlgorithm: "none", ConfiguredAlgorithm: "HS256"})
	require.True(t, errors.As(err, &algErr))
	assert.Equal(t, "none", algErr.HeaderAlgorithm)
	assert.Equal(t, "HS256", algErr.ConfiguredAlgorithm)
}
