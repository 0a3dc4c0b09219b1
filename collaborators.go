package jwt

import (
	"github.com/signkit/jwt/internal/codec"
)

// Serializer turns header and claim mappings into JSON text and back. The
// engine never assumes serialization is canonical: verification always runs
// over the original encoded segments, not re-serialized ones.
type Serializer interface {
	Serialize(v any) ([]byte, error)
	Deserialize(data []byte, v any) error
}

// Codec converts raw bytes to the token's text segments and back. The wire
// format requires unpadded base64url.
type Codec interface {
	Encode(data []byte) string
	Decode(text string) ([]byte, error)
}

// DefaultSerializer returns the goccy/go-json backed serializer used when a
// Builder is not given one explicitly.
func DefaultSerializer() Serializer {
	return codec.NewJSON()
}

// DefaultCodec returns the unpadded base64url codec used when a Builder is
// not given one explicitly.
func DefaultCodec() Codec {
	return codec.NewBase64URL()
}
