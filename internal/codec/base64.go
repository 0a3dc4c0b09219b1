// Package codec provides the default collaborator implementations consumed
// by the token engine: unpadded base64url text encoding and JSON
// serialization.
package codec

import (
	"encoding/base64"
	"fmt"
)

const (
	// maxSegmentLength bounds a single encoded segment before decoding.
	maxSegmentLength = 8192

	// maxDecodedLength bounds the decoded form of a segment.
	maxDecodedLength = 6144
)

// Base64URL encodes and decodes unpadded base64url text as used by the token
// wire format. The zero value is ready to use.
type Base64URL struct{}

// NewBase64URL returns the default base64url codec.
func NewBase64URL() Base64URL {
	return Base64URL{}
}

// Encode returns the unpadded base64url form of data.
func (Base64URL) Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode decodes an unpadded base64url segment. The alphabet is checked
// up front so malformed input is rejected before any buffer is allocated.
func (Base64URL) Decode(text string) ([]byte, error) {
	if len(text) > maxSegmentLength {
		return nil, fmt.Errorf("segment too large: maximum %d characters", maxSegmentLength)
	}

	if !isValidBase64URL(text) {
		return nil, fmt.Errorf("invalid base64url character in segment")
	}

	decodedLen := base64.RawURLEncoding.DecodedLen(len(text))
	if decodedLen > maxDecodedLength {
		return nil, fmt.Errorf("decoded segment too large: maximum %d bytes", maxDecodedLength)
	}

	buf := make([]byte, decodedLen)
	n, err := base64.RawURLEncoding.Decode(buf, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}

	return buf[:n], nil
}

func isValidBase64URL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_') {
			return false
		}
	}
	return true
}
