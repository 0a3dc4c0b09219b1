package jwt

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// maxUnixSeconds is 9999-12-31T23:59:59Z, the upper bound accepted for
// timestamp claims.
const maxUnixSeconds = 253402300799

// NumericDate represents a JSON numeric date value as specified in RFC 7519:
// a non-negative count of seconds since the Unix epoch.
type NumericDate struct {
	time.Time
}

// NewNumericDate creates a NumericDate from t.
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{Time: t}
}

// MarshalJSON renders the date as Unix seconds, or null when zero.
func (d NumericDate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, d.Unix(), 10), nil
}

// UnmarshalJSON parses Unix seconds into the date. null yields the zero
// time; negative or out-of-range values are rejected.
func (d *NumericDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	unix, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some issuers emit fractional seconds.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid numeric date: expected unix seconds, got %s", s)
		}
		unix = int64(f)
	}

	if unix < 0 || unix > maxUnixSeconds {
		return fmt.Errorf("numeric date out of range: %d", unix)
	}

	d.Time = time.Unix(unix, 0).UTC()
	return nil
}

// timestampValue coerces a decoded claim value into a time. JSON numbers
// arrive as float64 from the serializer; the other cases cover values placed
// into a Claims map directly by callers.
func timestampValue(name string, v any) (time.Time, error) {
	var unix int64

	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return time.Time{}, fmt.Errorf("claim %q is not an integer timestamp: %v", name, n)
		}
		unix = int64(n)
	case int64:
		unix = n
	case int:
		unix = int64(n)
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("claim %q is not an integer timestamp: %v", name, n)
		}
		unix = parsed
	case NumericDate:
		return n.Time, nil
	case time.Time:
		return n, nil
	default:
		return time.Time{}, fmt.Errorf("claim %q has non-numeric type %T", name, v)
	}

	if unix < 0 || unix > maxUnixSeconds {
		return time.Time{}, fmt.Errorf("claim %q out of range: %d", name, unix)
	}

	return time.Unix(unix, 0).UTC(), nil
}
