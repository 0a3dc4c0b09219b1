package jwt

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// ClaimsValidator applies time-based policy to decoded claims. It reads the
// current time from an injected clock, never from the system clock, so
// validation stays deterministic under test.
//
// Validate is a pure function of (claims, leeway, now) and the validator is
// safe for concurrent use.
type ClaimsValidator struct {
	clock  clockwork.Clock
	leeway time.Duration
}

// NewClaimsValidator builds a validator with the given clock and leeway. A
// nil clock falls back to the real one.
func NewClaimsValidator(clock clockwork.Clock, leeway time.Duration) *ClaimsValidator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ClaimsValidator{clock: clock, leeway: leeway}
}

// Validate checks the expiration and not-before claims against the current
// time, absorbing up to the configured leeway of clock skew in each
// direction. Absent claims impose no constraint. Expiration is checked
// before not-before, so when both are violated only the expiry error
// surfaces; callers should not rely on seeing both in one call.
func (v *ClaimsValidator) Validate(claims Claims) error {
	now := v.clock.Now()

	exp, ok, err := claims.Expiration()
	if err != nil {
		return &MalformedTokenError{Reason: "invalid exp claim", Err: err}
	}
	if ok && now.After(exp.Add(v.leeway)) {
		return &TokenExpiredError{ExpiredAt: exp, Now: now}
	}

	nbf, ok, err := claims.NotBefore()
	if err != nil {
		return &MalformedTokenError{Reason: "invalid nbf claim", Err: err}
	}
	if ok && now.Before(nbf.Add(-v.leeway)) {
		return &TokenNotYetValidError{NotBefore: nbf, Now: now}
	}

	return nil
}
