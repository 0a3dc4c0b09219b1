package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Builder is a fluent configuration accumulator that assembles the Encoder,
// Decoder and ClaimsValidator from the supplied collaborators, defaulting
// the optional ones. Required pieces are the Algorithm (for encoding, and
// for decoding with signature validation) and at least one key when
// signature validation is requested.
//
// Configuration is captured on the first Encode/Decode call; the assembled
// engine is immutable and safe for concurrent use afterwards. Collaborator
// and parameter setters made after the first operation have no effect. The
// header and claim mutators are not frozen: they write to the maps later
// Encode calls read, so they must not race a concurrent Encode.
type Builder struct {
	header   Header
	claims   Claims
	payloads []any

	alg        Algorithm
	algName    string
	serializer Serializer
	codec      Codec
	clock      clockwork.Clock
	params     ValidationParameters
	validator  *ClaimsValidator
	valSet     bool
	keys       [][]byte
	deny       *Denylist

	errs         []error
	noneConflict *ConfigurationError

	once    sync.Once
	cfgErr  error
	enc     *Encoder
	encErr  error
	dec     *Decoder
	decErr  error
	peekDec *Decoder
}

// NewBuilder returns an empty Builder with default validation parameters
// (signature validation on, zero leeway).
func NewBuilder() *Builder {
	return &Builder{
		header: Header{},
		claims: Claims{},
		params: DefaultValidationParameters(),
	}
}

// WithAlgorithm sets the signing/verification algorithm.
func (b *Builder) WithAlgorithm(alg Algorithm) *Builder {
	b.alg = alg
	b.algName = ""
	b.refreshNoneConflict()
	return b
}

// WithAlgorithmName selects the algorithm by name; it is resolved at
// assembly time with the first configured key as signing key material.
// Unknown names fail closed.
func (b *Builder) WithAlgorithmName(name string) *Builder {
	b.algName = name
	b.alg = nil
	b.refreshNoneConflict()
	return b
}

// WithKey appends a key to the configured key set. The first key signs;
// every key is a verification candidate, which is how rotated keys stay
// valid.
func (b *Builder) WithKey(key []byte) *Builder {
	b.keys = append(b.keys, key)
	return b
}

// WithKeys appends several keys at once.
func (b *Builder) WithKeys(keys ...[]byte) *Builder {
	b.keys = append(b.keys, keys...)
	return b
}

// WithSerializer replaces the default JSON serializer.
func (b *Builder) WithSerializer(s Serializer) *Builder {
	b.serializer = s
	return b
}

// WithCodec replaces the default base64url codec.
func (b *Builder) WithCodec(c Codec) *Builder {
	b.codec = c
	return b
}

// WithClock replaces the real clock used for claim validation.
func (b *Builder) WithClock(clock clockwork.Clock) *Builder {
	b.clock = clock
	return b
}

// WithValidationParameters replaces the validation parameters wholesale.
func (b *Builder) WithValidationParameters(p ValidationParameters) *Builder {
	b.params = p
	b.refreshNoneConflict()
	return b
}

// WithLeeway sets the clock-skew tolerance for time-claim checks.
func (b *Builder) WithLeeway(leeway time.Duration) *Builder {
	b.params.Leeway = leeway
	return b
}

// MustVerifySignature requires signature validation on decode (the
// default).
func (b *Builder) MustVerifySignature() *Builder {
	b.params.ValidateSignature = true
	b.refreshNoneConflict()
	return b
}

// DoNotVerifySignature disables signature validation on decode. This is an
// explicit opt-out and the only way tokens signed with the none algorithm
// are accepted.
func (b *Builder) DoNotVerifySignature() *Builder {
	b.params.ValidateSignature = false
	b.refreshNoneConflict()
	return b
}

// WithValidator replaces the default claims validator. Passing nil disables
// semantic claim validation entirely.
func (b *Builder) WithValidator(v *ClaimsValidator) *Builder {
	b.validator = v
	b.valSet = true
	return b
}

// WithDenylist attaches a revocation denylist checked on decode.
func (b *Builder) WithDenylist(d *Denylist) *Builder {
	b.deny = d
	return b
}

// AddHeader sets a header field. Adding the same key twice overwrites.
// The "alg" entry is overwritten by the Encoder regardless.
func (b *Builder) AddHeader(key string, value any) *Builder {
	b.header[key] = value
	return b
}

// WithKeyID sets the "kid" header.
func (b *Builder) WithKeyID(kid string) *Builder {
	b.header[HeaderKeyID] = kid
	return b
}

// AddClaim sets a claim. Adding the same claim twice overwrites.
func (b *Builder) AddClaim(name string, value any) *Builder {
	b.claims[name] = value
	return b
}

// WithClaims merges a claim mapping into the accumulated claims, later
// writes winning.
func (b *Builder) WithClaims(claims Claims) *Builder {
	for k, v := range claims {
		b.claims[k] = v
	}
	return b
}

// WithPayload flattens a structured value into claims through the
// configured serializer (field name to field value) at encode time.
// Explicitly added claims win over flattened ones.
func (b *Builder) WithPayload(payload any) *Builder {
	b.payloads = append(b.payloads, payload)
	return b
}

// WithIssuer sets the "iss" claim.
func (b *Builder) WithIssuer(issuer string) *Builder {
	b.claims[ClaimIssuer] = issuer
	return b
}

// WithSubject sets the "sub" claim.
func (b *Builder) WithSubject(subject string) *Builder {
	b.claims[ClaimSubject] = subject
	return b
}

// WithAudience sets the "aud" claim.
func (b *Builder) WithAudience(audience ...string) *Builder {
	b.claims[ClaimAudience] = audience
	return b
}

// WithExpiration sets the "exp" claim.
func (b *Builder) WithExpiration(t time.Time) *Builder {
	b.claims[ClaimExpiration] = NewNumericDate(t)
	return b
}

// WithNotBefore sets the "nbf" claim.
func (b *Builder) WithNotBefore(t time.Time) *Builder {
	b.claims[ClaimNotBefore] = NewNumericDate(t)
	return b
}

// WithIssuedAt sets the "iat" claim.
func (b *Builder) WithIssuedAt(t time.Time) *Builder {
	b.claims[ClaimIssuedAt] = NewNumericDate(t)
	return b
}

// WithID sets the "jti" claim.
func (b *Builder) WithID(id string) *Builder {
	b.claims[ClaimID] = id
	return b
}

// WithGeneratedID sets a random UUID as the "jti" claim.
func (b *Builder) WithGeneratedID() *Builder {
	b.claims[ClaimID] = uuid.NewString()
	return b
}

// Encode assembles the engine on first use and produces the signed token
// from the accumulated header and claims.
func (b *Builder) Encode() (string, error) {
	b.assemble()
	if b.cfgErr != nil {
		return "", b.cfgErr
	}
	if b.encErr != nil {
		return "", b.encErr
	}

	claims, err := b.mergedClaims()
	if err != nil {
		return "", err
	}

	return b.enc.Encode(b.header, claims)
}

// Decode assembles the engine on first use, then parses, verifies and
// validates token, returning its claims.
func (b *Builder) Decode(token string) (Claims, error) {
	b.assemble()
	if b.cfgErr != nil {
		return nil, b.cfgErr
	}
	if b.decErr != nil {
		return nil, b.decErr
	}

	return b.dec.Decode(token)
}

// DecodeHeader parses only the token header. It works without an algorithm
// or keys, which makes it usable for key selection before a full Decode.
func (b *Builder) DecodeHeader(token string) (Header, error) {
	b.assemble()
	if b.cfgErr != nil {
		return nil, b.cfgErr
	}

	return b.peekDec.DecodeHeader(token)
}

// Revoke adds the token's "jti" to the configured denylist without
// verifying the signature, lasting until the token's expiration claim.
func (b *Builder) Revoke(token string) error {
	b.assemble()
	if b.cfgErr != nil {
		return b.cfgErr
	}
	if b.deny == nil {
		return &ConfigurationError{Reason: "denylist not set (call WithDenylist)"}
	}

	claims, err := b.peekDec.Decode(token)
	if err != nil {
		return err
	}

	return b.deny.RevokeClaims(claims)
}

// assemble captures the configuration and constructs the underlying
// Encoder, Decoder and ClaimsValidator exactly once. All configuration
// errors recorded so far surface here, before any cryptographic work.
func (b *Builder) assemble() {
	b.once.Do(func() {
		if b.serializer == nil {
			b.serializer = DefaultSerializer()
		}
		if b.codec == nil {
			b.codec = DefaultCodec()
		}
		if b.clock == nil {
			b.clock = clockwork.NewRealClock()
		}

		if b.alg == nil && b.algName != "" {
			var signingKey []byte
			if len(b.keys) > 0 {
				signingKey = b.keys[0]
			}
			alg, err := ResolveAlgorithm(b.algName, signingKey)
			if err != nil {
				b.errs = append(b.errs, err)
			} else {
				b.alg = alg
			}
		}

		b.refreshNoneConflict()
		if b.noneConflict != nil {
			b.errs = append(b.errs, b.noneConflict)
		}

		if len(b.errs) > 0 {
			b.cfgErr = errors.Join(b.errs...)
			return
		}

		if !b.valSet {
			b.validator = NewClaimsValidator(b.clock, b.params.Leeway)
		}

		if b.alg != nil {
			b.enc, b.encErr = NewEncoder(b.alg, b.serializer, b.codec)
		} else {
			b.encErr = &ConfigurationError{Reason: "algorithm not set (call WithAlgorithm)"}
		}

		b.dec, b.decErr = NewDecoder(DecoderConfig{
			Algorithm:  b.alg,
			Serializer: b.serializer,
			Codec:      b.codec,
			Keys:       b.keys,
			Parameters: b.params,
			Validator:  b.validator,
			Denylist:   b.deny,
		})

		// The peek decoder backs DecodeHeader and Revoke; it needs no
		// algorithm or keys and applies no policy.
		b.peekDec, _ = NewDecoder(DecoderConfig{
			Serializer: b.serializer,
			Codec:      b.codec,
			Parameters: ValidationParameters{ValidateSignature: false},
		})
	})
}

// refreshNoneConflict recomputes the validate-signature-with-none invariant
// after every configuration call that can create or resolve the conflict, so
// it is rejected eagerly yet a later opt-out clears it. The recorded state is
// surfaced at assembly.
func (b *Builder) refreshNoneConflict() {
	name := b.algName
	if b.alg != nil {
		name = b.alg.Name()
	}

	if b.params.ValidateSignature && isNoneName(name) {
		b.noneConflict = &ConfigurationError{
			Reason: "signature validation requested with the none algorithm (call DoNotVerifySignature to accept unsigned tokens)",
		}
	} else {
		b.noneConflict = nil
	}
}

// mergedClaims flattens any structured payloads and overlays the explicit
// claims, later writes winning.
func (b *Builder) mergedClaims() (Claims, error) {
	if len(b.payloads) == 0 {
		return b.claims, nil
	}

	merged := Claims{}
	for _, payload := range b.payloads {
		data, err := b.serializer.Serialize(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to flatten payload: %w", err)
		}
		var fields Claims
		if err := b.serializer.Deserialize(data, &fields); err != nil {
			return nil, fmt.Errorf("failed to flatten payload: %w", err)
		}
		for k, v := range fields {
			merged[k] = v
		}
	}
	for k, v := range b.claims {
		merged[k] = v
	}

	return merged, nil
}
