package jwt

import (
	"strings"
)

// maxTokenLength bounds accepted token input. Larger input is rejected
// before any decoding work.
const maxTokenLength = 8192

// DecoderConfig collects the collaborators and policy for a Decoder.
type DecoderConfig struct {
	// Algorithm is the algorithm tokens must have been signed with. It is
	// required when Parameters.ValidateSignature is true; the header's
	// algorithm name is only ever compared against it, never used to pick
	// a verifier.
	Algorithm Algorithm

	// Serializer and Codec are required.
	Serializer Serializer
	Codec      Codec

	// Keys are the candidate verification keys, trialled in order. At
	// least one is required when signatures are validated.
	Keys [][]byte

	// Parameters hold the signature-validation flag and leeway.
	Parameters ValidationParameters

	// Validator checks time-based claims after signature verification.
	// Nil skips semantic claim validation.
	Validator *ClaimsValidator

	// Denylist, when set, rejects tokens whose "jti" claim is revoked.
	Denylist *Denylist
}

// Decoder parses tokens, verifies their signature against the configured
// algorithm and keys, and validates time-based claims. It is stateless per
// call and safe for concurrent use.
type Decoder struct {
	cfg DecoderConfig
}

// NewDecoder builds a Decoder, failing with a ConfigurationError before any
// token is touched when the configuration cannot support the requested
// operations.
func NewDecoder(cfg DecoderConfig) (*Decoder, error) {
	switch {
	case cfg.Serializer == nil:
		return nil, &ConfigurationError{Reason: "serializer not set (call WithSerializer)"}
	case cfg.Codec == nil:
		return nil, &ConfigurationError{Reason: "codec not set (call WithCodec)"}
	}

	if cfg.Parameters.ValidateSignature {
		switch {
		case cfg.Algorithm == nil:
			return nil, &ConfigurationError{Reason: "algorithm not set (call WithAlgorithm)"}
		case isNoneName(cfg.Algorithm.Name()):
			return nil, &ConfigurationError{
				Reason: "signature validation requested with the none algorithm (call DoNotVerifySignature to accept unsigned tokens)",
			}
		case len(cfg.Keys) == 0:
			return nil, &ConfigurationError{Reason: "no verification keys set (call WithKey)"}
		}
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode parses token, verifies its signature when configured to, runs the
// claims validator, and returns the decoded claims. It never returns a
// partial result: any failure yields a nil claim set.
func (d *Decoder) Decode(token string) (Claims, error) {
	headerSeg, claimsSeg, sigSeg, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	var header Header
	if err := d.decodeSegment(headerSeg, "header", &header); err != nil {
		return nil, err
	}

	var claims Claims
	if err := d.decodeSegment(claimsSeg, "claims", &claims); err != nil {
		return nil, err
	}

	if d.cfg.Parameters.ValidateSignature {
		if err := d.verifySignature(header, headerSeg, claimsSeg, sigSeg); err != nil {
			return nil, err
		}
	}

	if d.cfg.Validator != nil {
		if err := d.cfg.Validator.Validate(claims); err != nil {
			return nil, err
		}
	}

	if d.cfg.Denylist != nil {
		if err := d.checkDenylist(claims); err != nil {
			return nil, err
		}
	}

	return claims, nil
}

// DecodeHeader parses only the header segment. It needs no algorithm or
// keys and never looks at the signature segment, which makes it the cheap
// way to inspect a token (e.g. to pick a key by "kid") before a full
// decode. The three-segment structure is still required.
func (d *Decoder) DecodeHeader(token string) (Header, error) {
	headerSeg, _, _, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	var header Header
	if err := d.decodeSegment(headerSeg, "header", &header); err != nil {
		return nil, err
	}

	return header, nil
}

func (d *Decoder) decodeSegment(segment, what string, dest any) error {
	raw, err := d.cfg.Codec.Decode(segment)
	if err != nil {
		return &MalformedTokenError{Reason: "invalid " + what + " encoding", Err: err}
	}
	if err := d.cfg.Serializer.Deserialize(raw, dest); err != nil {
		return &MalformedTokenError{Reason: "invalid " + what + " JSON", Err: err}
	}
	return nil
}

// verifySignature checks the header's algorithm name against the configured
// algorithm and trials each candidate key in order. Verification runs over
// the original encoded segments: serialization is not canonical, so the
// signing input is never re-derived from the decoded mappings.
func (d *Decoder) verifySignature(header Header, headerSeg, claimsSeg, sigSeg string) error {
	headerAlg := header.Algorithm()

	// The unsigned variant is rejected here outright, before the name
	// comparison, so a registered none algorithm can never satisfy a
	// decoder that was asked to validate signatures.
	if isNoneName(headerAlg) {
		return &UnsupportedAlgorithmError{
			HeaderAlgorithm:     headerAlg,
			ConfiguredAlgorithm: d.cfg.Algorithm.Name(),
		}
	}

	if headerAlg != d.cfg.Algorithm.Name() {
		return &UnsupportedAlgorithmError{
			HeaderAlgorithm:     headerAlg,
			ConfiguredAlgorithm: d.cfg.Algorithm.Name(),
		}
	}

	signature, err := d.cfg.Codec.Decode(sigSeg)
	if err != nil {
		return &MalformedTokenError{Reason: "invalid signature encoding", Err: err}
	}

	signingInput := []byte(headerSeg + "." + claimsSeg)

	for _, key := range d.cfg.Keys {
		if d.cfg.Algorithm.Verify(signingInput, signature, key) {
			return nil
		}
	}

	return &SignatureVerificationError{KeysTried: len(d.cfg.Keys)}
}

func (d *Decoder) checkDenylist(claims Claims) error {
	tokenID := claims.ID()
	if tokenID == "" {
		return nil
	}

	revoked, err := d.cfg.Denylist.IsRevoked(tokenID)
	if err != nil {
		return err
	}
	if revoked {
		return &TokenRevokedError{TokenID: tokenID}
	}
	return nil
}

// splitToken splits a token into its three segments, rejecting anything
// with fewer or more dots before any decoding is attempted.
func splitToken(token string) (header, claims, signature string, err error) {
	if token == "" {
		return "", "", "", &MalformedTokenError{Reason: "empty token"}
	}
	if len(token) > maxTokenLength {
		return "", "", "", &MalformedTokenError{Reason: "token too large"}
	}

	first := strings.IndexByte(token, '.')
	if first < 0 {
		return "", "", "", &MalformedTokenError{Reason: "expected 3 segments"}
	}
	second := strings.IndexByte(token[first+1:], '.')
	if second < 0 {
		return "", "", "", &MalformedTokenError{Reason: "expected 3 segments"}
	}
	second += first + 1

	rest := token[second+1:]
	if strings.IndexByte(rest, '.') >= 0 {
		return "", "", "", &MalformedTokenError{Reason: "expected 3 segments"}
	}

	return token[:first], token[first+1 : second], rest, nil
}
