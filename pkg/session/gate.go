// Package session decides whether continuing a flow is currently permitted.
//
// The gate inspects the expiry claim embedded in a bearer token. It runs on
// the client side of the trust boundary, so the token signature is not
// verified here; the remote engine remains the authority and will reject a
// forged token on its own. The gate only answers "is it worth trying".
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Decision is the gate's answer for one token.
type Decision int

const (
	// Allowed means continuation may proceed.
	Allowed Decision = iota

	// Expired means the token's expiry claim lies in the past.
	Expired

	// Indeterminate means the token carries no expiry claim; the gate cannot
	// decide and the caller must apply its own policy.
	Indeterminate
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Expired:
		return "expired"
	default:
		return "indeterminate"
	}
}

// Gate evaluates session tokens. The zero value uses no leeway and the real
// clock.
type Gate struct {
	leeway time.Duration
	now    func() time.Time
}

// Option configures the Gate.
type Option func(*Gate)

// WithLeeway tolerates clock skew between client and engine when comparing
// the expiry claim.
func WithLeeway(d time.Duration) Option {
	return func(g *Gate) {
		g.leeway = d
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates a session gate.
func NewGate(opts ...Option) *Gate {
	g := &Gate{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check reports whether continuation is permitted for the given token.
//
// When checkExpiry is false the gate always allows, without touching the
// token. When true, an unparseable token or one whose expiry lies in the past
// yields Expired with domain.ErrSessionExpired; a token without an expiry
// claim yields Indeterminate with domain.ErrSessionIndeterminate.
func (g *Gate) Check(token string, checkExpiry bool) (Decision, error) {
	if !checkExpiry {
		return Allowed, nil
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Expired, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Indeterminate, domain.ErrSessionIndeterminate
	}

	if g.now().After(exp.Add(g.leeway)) {
		return Expired, domain.ErrSessionExpired
	}
	return Allowed, nil
}
