package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64URLRoundTrip(t *testing.T) {
	c := NewBase64URL()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"json", []byte(`{"alg":"HS256","typ":"JWT"}`)},
		{"binary", []byte{0x00, 0xff, 0x10, 0x80, 0x7f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := c.Encode(tt.data)
			assert.NotContains(t, encoded, "=")
			assert.NotContains(t, encoded, "+")
			assert.NotContains(t, encoded, "/")

			decoded, err := c.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestBase64URLDecodeRejections(t *testing.T) {
	c := NewBase64URL()

	tests := []struct {
		name string
		text string
	}{
		{"padding", "YWJj="},
		{"standard alphabet plus", "a+b"},
		{"standard alphabet slash", "a/b"},
		{"whitespace", "ab c"},
		{"control character", "ab\x00c"},
		{"too large", strings.Repeat("A", maxSegmentLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.text)
			require.Error(t, err)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := NewJSON()

	in := map[string]any{"sub": "abc", "exp": float64(9999999999), "admin": true}
	data, err := s.Serialize(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, s.Deserialize(data, &out))
	assert.Equal(t, in, out)
}

func TestJSONDeserializeErrors(t *testing.T) {
	s := NewJSON()

	var out map[string]any
	require.Error(t, s.Deserialize([]byte(`{"sub":`), &out))
	require.Error(t, s.Deserialize([]byte(`[1,2,3]`), &out))
	require.Error(t, s.Deserialize([]byte(`"plain"`), &out))
}
