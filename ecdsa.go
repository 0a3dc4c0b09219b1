package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"
)

type ecdsaAlgorithm struct {
	name    string
	hash    crypto.Hash
	curve   elliptic.Curve
	keySize int
	priv    *ecdsa.PrivateKey
}

// ES256 returns an ECDSA P-256 SHA-256 algorithm. privateKey is a PEM or
// DER encoded EC private key and may be nil for a verify-only instance.
func ES256(privateKey []byte) (Algorithm, error) {
	return newECDSA("ES256", crypto.SHA256, elliptic.P256(), 32, privateKey)
}

// ES384 returns an ECDSA P-384 SHA-384 algorithm.
func ES384(privateKey []byte) (Algorithm, error) {
	return newECDSA("ES384", crypto.SHA384, elliptic.P384(), 48, privateKey)
}

// ES512 returns an ECDSA P-521 SHA-512 algorithm.
func ES512(privateKey []byte) (Algorithm, error) {
	return newECDSA("ES512", crypto.SHA512, elliptic.P521(), 66, privateKey)
}

func newECDSA(name string, hash crypto.Hash, curve elliptic.Curve, keySize int, privateKey []byte) (Algorithm, error) {
	a := &ecdsaAlgorithm{name: name, hash: hash, curve: curve, keySize: keySize}

	if privateKey != nil {
		key, err := parsePrivateKey(privateKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%s: private key is %T, want *ecdsa.PrivateKey", name, key)
		}
		if ecKey.Curve != curve {
			return nil, fmt.Errorf("%s: private key curve %s does not match", name, ecKey.Curve.Params().Name)
		}
		a.priv = ecKey
	}

	return a, nil
}

func (a *ecdsaAlgorithm) Name() string { return a.name }

// Sign produces a JWS-style signature: r and s big-endian, each padded to
// the curve's key size and concatenated.
func (a *ecdsaAlgorithm) Sign(signingInput []byte) ([]byte, error) {
	if a.priv == nil {
		return nil, &ConfigurationError{Reason: a.name + " signing key not set"}
	}

	hasher := a.hash.New()
	hasher.Write(signingInput)

	r, s, err := ecdsa.Sign(rand.Reader, a.priv, hasher.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to sign: %w", a.name, err)
	}

	sig := make([]byte, 2*a.keySize)
	r.FillBytes(sig[:a.keySize])
	s.FillBytes(sig[a.keySize:])
	return sig, nil
}

func (a *ecdsaAlgorithm) Verify(signingInput, signature, key []byte) bool {
	if len(signature) != 2*a.keySize {
		return false
	}

	pub, err := parsePublicKey(key)
	if err != nil {
		return false
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok || ecPub.Curve != a.curve {
		return false
	}

	r := new(big.Int).SetBytes(signature[:a.keySize])
	s := new(big.Int).SetBytes(signature[a.keySize:])

	hasher := a.hash.New()
	hasher.Write(signingInput)

	return ecdsa.Verify(ecPub, hasher.Sum(nil), r, s)
}
