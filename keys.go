package jwt

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// keyDER strips an optional PEM envelope, returning the raw DER bytes.
func keyDER(key []byte) []byte {
	if block, _ := pem.Decode(key); block != nil {
		return block.Bytes
	}
	return key
}

// parsePrivateKey parses a PEM or DER encoded private key in PKCS#8, PKCS#1
// or EC form.
func parsePrivateKey(key []byte) (crypto.PrivateKey, error) {
	der := keyDER(key)

	if k, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParseECPrivateKey(der); err == nil {
		return k, nil
	}

	return nil, fmt.Errorf("unable to parse private key")
}

// parsePublicKey parses a PEM or DER encoded public key in PKIX or PKCS#1
// form. A private key is also accepted; its public half is returned, which
// lets one key set serve both directions.
func parsePublicKey(key []byte) (crypto.PublicKey, error) {
	der := keyDER(key)

	if k, err := x509.ParsePKIXPublicKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return k, nil
	}

	if priv, err := parsePrivateKey(key); err == nil {
		if signer, ok := priv.(crypto.Signer); ok {
			return signer.Public(), nil
		}
	}

	return nil, fmt.Errorf("unable to parse public key")
}
