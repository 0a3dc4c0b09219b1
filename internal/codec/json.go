package codec

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSON serializes and deserializes values using goccy/go-json. The zero
// value is ready to use.
type JSON struct{}

// NewJSON returns the default JSON serializer.
func NewJSON() JSON {
	return JSON{}
}

// Serialize renders v as JSON text.
func (JSON) Serialize(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// Deserialize parses JSON text into v.
func (JSON) Deserialize(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}
