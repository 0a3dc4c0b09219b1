package jwt

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderRoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)

	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithSubject("user-42").
		WithIssuer("auth-service").
		WithExpiration(testNow.Add(time.Hour)).
		AddClaim("role", "admin").
		Encode()
	require.NoError(t, err)

	claims, err := NewBuilder().
		WithAlgorithm(HS256(nil)).
		WithKey(testKey).
		WithClock(clock).
		Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.Subject())
	assert.Equal(t, "auth-service", claims.Issuer())
	assert.Equal(t, "admin", claims["role"])

	exp, ok, err := claims.Expiration()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), exp.Unix())
}

func TestBuilderMissingAlgorithm(t *testing.T) {
	_, err := NewBuilder().WithSubject("user-42").Encode()
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "algorithm not set (call WithAlgorithm)")
}

func TestBuilderVerifyRequiresKeys(t *testing.T) {
	b := NewBuilder().WithAlgorithm(HS256(testKey)).MustVerifySignature()

	// Encoding works without candidate keys...
	token, err := b.Encode()
	require.NoError(t, err)

	// ...but decoding with verification requested does not.
	_, err = b.Decode(token)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "no verification keys")
}

func TestBuilderRejectsVerifiedNoneEagerly(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
	}{
		{
			"WithAlgorithm after MustVerifySignature",
			func() *Builder {
				return NewBuilder().MustVerifySignature().WithAlgorithm(None())
			},
		},
		{
			"MustVerifySignature after WithAlgorithm",
			func() *Builder {
				return NewBuilder().WithAlgorithm(None()).MustVerifySignature()
			},
		},
		{
			"name-based selection",
			func() *Builder {
				return NewBuilder().WithAlgorithmName("none").MustVerifySignature()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build()
			require.NotNil(t, b.noneConflict, "conflict must be recorded at configuration time")

			_, err := b.Encode()
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestBuilderNoneWithExplicitOptOut(t *testing.T) {
	// The opt-out clears the conflict regardless of call order: only the
	// final configuration counts.
	builders := []struct {
		name  string
		build func() *Builder
	}{
		{
			"opt-out after algorithm",
			func() *Builder {
				return NewBuilder().WithAlgorithm(None()).DoNotVerifySignature()
			},
		},
		{
			"opt-out before algorithm",
			func() *Builder {
				return NewBuilder().DoNotVerifySignature().WithAlgorithm(None())
			},
		},
		{
			"name-based selection",
			func() *Builder {
				return NewBuilder().WithAlgorithmName("none").DoNotVerifySignature()
			},
		},
	}

	for _, tt := range builders {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build().WithSubject("user-42")
			assert.Nil(t, b.noneConflict)

			token, err := b.Encode()
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(token, "."))

			claims, err := NewBuilder().
				DoNotVerifySignature().
				Decode(token)
			require.NoError(t, err)
			assert.Equal(t, "user-42", claims.Subject())
		})
	}
}

func TestBuilderDuplicateKeysOverwrite(t *testing.T) {
	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		AddClaim("role", "viewer").
		AddClaim("role", "admin").
		AddHeader("x-env", "staging").
		AddHeader("x-env", "prod").
		Encode()
	require.NoError(t, err)

	claims, err := ParseClaims(HS256(nil), token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])

	header, err := PeekHeader(token)
	require.NoError(t, err)
	assert.Equal(t, "prod", header["x-env"])
}

func TestBuilderWithPayloadFlattening(t *testing.T) {
	type payload struct {
		Subject string `json:"sub"`
		Role    string `json:"role"`
		Tier    int    `json:"tier"`
	}

	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithPayload(payload{Subject: "user-42", Role: "viewer", Tier: 3}).
		AddClaim("role", "admin"). // explicit claims win over flattened fields
		Encode()
	require.NoError(t, err)

	claims, err := ParseClaims(HS256(nil), token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject())
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, float64(3), claims["tier"])
}

func TestBuilderWithAlgorithmName(t *testing.T) {
	t.Run("signs with first key", func(t *testing.T) {
		k1 := []byte("first-rotation-key-aaaaaaaaaaaaa")
		k2 := []byte("second-rotation-key-bbbbbbbbbbbb")

		token, err := NewBuilder().
			WithAlgorithmName("HS256").
			WithKeys(k1, k2).
			WithSubject("user-42").
			Encode()
		require.NoError(t, err)

		// Only k1 verifies: the first configured key signed.
		_, err = ParseClaims(HS256(nil), token, k1)
		require.NoError(t, err)
		_, err = ParseClaims(HS256(nil), token, k2)
		require.ErrorIs(t, err, ErrSignatureVerification)
	})

	t.Run("unknown name fails closed", func(t *testing.T) {
		_, err := NewBuilder().
			WithAlgorithmName("HS1").
			WithKey(testKey).
			Encode()
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestBuilderGeneratedID(t *testing.T) {
	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithGeneratedID().
		Encode()
	require.NoError(t, err)

	claims, err := ParseClaims(HS256(nil), token, testKey)
	require.NoError(t, err)

	_, err = uuid.Parse(claims.ID())
	require.NoError(t, err)
}

func TestBuilderLeeway(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)

	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithExpiration(testNow.Add(-time.Second)).
		Encode()
	require.NoError(t, err)

	_, err = NewBuilder().
		WithAlgorithm(HS256(nil)).
		WithKey(testKey).
		WithClock(clock).
		Decode(token)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = NewBuilder().
		WithAlgorithm(HS256(nil)).
		WithKey(testKey).
		WithClock(clock).
		WithLeeway(2 * time.Second).
		Decode(token)
	require.NoError(t, err)
}

func TestBuilderValidatorDisabled(t *testing.T) {
	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithExpiration(testNow.Add(-time.Hour)).
		Encode()
	require.NoError(t, err)

	claims, err := NewBuilder().
		WithAlgorithm(HS256(nil)).
		WithKey(testKey).
		WithClock(clockwork.NewFakeClockAt(testNow)).
		WithValidator(nil).
		Decode(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestBuilderDecodeHeaderWithoutAlgorithm(t *testing.T) {
	token, err := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithKeyID("key-7").
		Encode()
	require.NoError(t, err)

	// Default parameters require verification, but header inspection must
	// still work with nothing configured.
	header, err := NewBuilder().DecodeHeader(token)
	require.NoError(t, err)
	assert.Equal(t, "key-7", header.KeyID())
	assert.Equal(t, "HS256", header.Algorithm())
}

func TestBuilderRevocation(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)
	deny := NewDenylist(DenylistConfig{MaxSize: 16, Clock: clock})
	defer deny.Close()

	issue := func() string {
		token, err := NewBuilder().
			WithAlgorithm(HS256(testKey)).
			WithGeneratedID().
			WithExpiration(testNow.Add(time.Hour)).
			Encode()
		require.NoError(t, err)
		return token
	}

	verifier := func() *Builder {
		return NewBuilder().
			WithAlgorithm(HS256(nil)).
			WithKey(testKey).
			WithClock(clock).
			WithDenylist(deny)
	}

	token := issue()
	other := issue()

	_, err := verifier().Decode(token)
	require.NoError(t, err)

	require.NoError(t, verifier().Revoke(token))

	_, err = verifier().Decode(token)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// Unrelated tokens are unaffected.
	_, err = verifier().Decode(other)
	require.NoError(t, err)
}

func TestBuilderRevokeWithoutDenylist(t *testing.T) {
	err := NewBuilder().WithAlgorithm(HS256(testKey)).Revoke("a.b.c")
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "denylist not set")
}

func TestBuilderConcurrentUse(t *testing.T) {
	issuer := NewBuilder().
		WithAlgorithm(HS256(testKey)).
		WithSubject("user-42")

	verifier := NewBuilder().
		WithAlgorithm(HS256(nil)).
		WithKey(testKey)

	token, err := issuer.Encode()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			got, err := issuer.Encode()
			assert.NoError(t, err)
			assert.Equal(t, token, got)

			claims, err := verifier.Decode(token)
			assert.NoError(t, err)
			assert.Equal(t, "user-42", claims.Subject())
		}()
	}
	wg.Wait()
}
