package jwt

import (
	"crypto"
	"crypto/hmac"

	"github.com/signkit/jwt/internal/secmem"
)

type hmacAlgorithm struct {
	name string
	hash crypto.Hash
	key  *secmem.Buffer
}

// HS256 returns an HMAC-SHA256 algorithm with key as its shared secret.
// A nil key yields a verify-only instance.
func HS256(key []byte) Algorithm { return newHMAC("HS256", crypto.SHA256, key) }

// HS384 returns an HMAC-SHA384 algorithm with key as its shared secret.
func HS384(key []byte) Algorithm { return newHMAC("HS384", crypto.SHA384, key) }

// HS512 returns an HMAC-SHA512 algorithm with key as its shared secret.
func HS512(key []byte) Algorithm { return newHMAC("HS512", crypto.SHA512, key) }

func newHMAC(name string, hash crypto.Hash, key []byte) Algorithm {
	a := &hmacAlgorithm{name: name, hash: hash}
	if key != nil {
		a.key = secmem.NewBuffer(key)
	}
	return a
}

func (a *hmacAlgorithm) Name() string { return a.name }

func (a *hmacAlgorithm) Sign(signingInput []byte) ([]byte, error) {
	if a.key == nil || a.key.Len() == 0 {
		return nil, &ConfigurationError{Reason: a.name + " signing key not set"}
	}

	mac := hmac.New(a.hash.New, a.key.Bytes())
	mac.Write(signingInput)
	return mac.Sum(nil), nil
}

func (a *hmacAlgorithm) Verify(signingInput, signature, key []byte) bool {
	if len(key) == 0 {
		return false
	}

	mac := hmac.New(a.hash.New, key)
	mac.Write(signingInput)
	expected := mac.Sum(nil)
	defer secmem.Zero(expected)

	return secmem.Equal(signature, expected)
}
