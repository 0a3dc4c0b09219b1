package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

type rsaAlgorithm struct {
	name string
	hash crypto.Hash
	priv *rsa.PrivateKey
}

// RS256 returns an RSASSA-PKCS1-v1_5 SHA-256 algorithm. privateKey is a PEM
// or DER encoded RSA private key and may be nil for a verify-only instance.
func RS256(privateKey []byte) (Algorithm, error) { return newRSA("RS256", crypto.SHA256, privateKey) }

// RS384 returns an RSASSA-PKCS1-v1_5 SHA-384 algorithm.
func RS384(privateKey []byte) (Algorithm, error) { return newRSA("RS384", crypto.SHA384, privateKey) }

// RS512 returns an RSASSA-PKCS1-v1_5 SHA-512 algorithm.
func RS512(privateKey []byte) (Algorithm, error) { return newRSA("RS512", crypto.SHA512, privateKey) }

func newRSA(name string, hash crypto.Hash, privateKey []byte) (Algorithm, error) {
	a := &rsaAlgorithm{name: name, hash: hash}

	if privateKey != nil {
		key, err := parsePrivateKey(privateKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%s: private key is %T, want *rsa.PrivateKey", name, key)
		}
		a.priv = rsaKey
	}

	return a, nil
}

func (a *rsaAlgorithm) Name() string { return a.name }

func (a *rsaAlgorithm) Sign(signingInput []byte) ([]byte, error) {
	if a.priv == nil {
		return nil, &ConfigurationError{Reason: a.name + " signing key not set"}
	}

	hasher := a.hash.New()
	hasher.Write(signingInput)

	sig, err := rsa.SignPKCS1v15(rand.Reader, a.priv, a.hash, hasher.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to sign: %w", a.name, err)
	}
	return sig, nil
}

func (a *rsaAlgorithm) Verify(signingInput, signature, key []byte) bool {
	pub, err := parsePublicKey(key)
	if err != nil {
		return false
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return false
	}

	hasher := a.hash.New()
	hasher.Write(signingInput)

	return rsa.VerifyPKCS1v15(rsaPub, a.hash, hasher.Sum(nil), signature) == nil
}
