package jwt

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/signkit/jwt/internal/denylist"
)

// DenylistConfig configures a revocation denylist.
type DenylistConfig struct {
	// MaxSize bounds the number of revoked token IDs held in memory.
	MaxSize int

	// CleanupInterval is how often expired revocations are swept. Zero or
	// negative disables the background sweeper.
	CleanupInterval time.Duration

	// Clock drives expiry decisions. Nil falls back to the real clock.
	Clock clockwork.Clock
}

// DefaultDenylistConfig returns the denylist defaults.
func DefaultDenylistConfig() DenylistConfig {
	return DenylistConfig{
		MaxSize:         100000,
		CleanupInterval: 5 * time.Minute,
	}
}

// defaultRevocationTTL bounds a revocation for tokens that carry no
// expiration claim.
const defaultRevocationTTL = 7 * 24 * time.Hour

// Denylist tracks revoked token IDs ("jti" claims). A Decoder configured
// with one rejects revoked tokens after signature and claims validation.
type Denylist struct {
	store *denylist.Store
	clock clockwork.Clock
}

// NewDenylist creates a denylist with the given configuration.
func NewDenylist(cfg DenylistConfig) *Denylist {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Denylist{
		store: denylist.NewStore(denylist.Config{
			MaxSize:         cfg.MaxSize,
			CleanupInterval: cfg.CleanupInterval,
		}, clock),
		clock: clock,
	}
}

// Revoke marks tokenID as revoked until expiresAt, after which the entry is
// eligible for eviction.
func (d *Denylist) Revoke(tokenID string, expiresAt time.Time) error {
	return d.store.Add(tokenID, expiresAt)
}

// RevokeClaims revokes the token identified by the claim set's "jti". The
// revocation lasts until the expiration claim, or a bounded default when
// the token carries none.
func (d *Denylist) RevokeClaims(claims Claims) error {
	tokenID := claims.ID()
	if tokenID == "" {
		return &MalformedTokenError{Reason: "token has no jti claim to revoke"}
	}

	expiresAt, ok, err := claims.Expiration()
	if err != nil || !ok {
		expiresAt = d.clock.Now().Add(defaultRevocationTTL)
	}

	return d.store.Add(tokenID, expiresAt)
}

// IsRevoked reports whether tokenID is currently revoked.
func (d *Denylist) IsRevoked(tokenID string) (bool, error) {
	return d.store.Contains(tokenID)
}

// Close stops background cleanup and releases the stored entries.
func (d *Denylist) Close() error {
	return d.store.Close()
}
