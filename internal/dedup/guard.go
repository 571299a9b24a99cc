// In file: internal/dedup/guard.go

// Package dedup rejects bursts of identical chat requests from the same
// caller. It is best-effort loop prevention (double clicks, client retries),
// not a correctness guarantee.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"
)

const (
	// DefaultWindow is how long an identical request is rejected for.
	DefaultWindow = 2 * time.Second
	// DefaultMaxEntries is the table size above which the in-memory store is cleared.
	DefaultMaxEntries = 100
)

// Store records when a fingerprint was last accepted.
type Store interface {
	// CheckAndSet atomically decides whether fingerprint is accepted at now.
	// A fingerprint seen less than window ago is rejected and its timestamp
	// is left untouched; otherwise the timestamp is (re)written to now.
	CheckAndSet(ctx context.Context, fingerprint string, now time.Time, window time.Duration) (bool, error)
}

// Guard fronts the orchestration pipeline.
type Guard struct {
	store  Store
	window time.Duration
	now    func() time.Time
}

// Option customizes a Guard.
type Option func(*Guard)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithWindow overrides DefaultWindow.
func WithWindow(window time.Duration) Option {
	return func(g *Guard) { g.window = window }
}

// NewGuard creates a Guard backed by store.
func NewGuard(store Store, opts ...Option) *Guard {
	g := &Guard{store: store, window: DefaultWindow, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fingerprint is the hex SHA-256 of the message and caller identity. A NUL
// separator keeps ("ab","c") and ("a","bc") apart.
func Fingerprint(message, caller string) string {
	hasher := sha256.New()
	hasher.Write([]byte(message))
	hasher.Write([]byte{0})
	hasher.Write([]byte(caller))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ShouldAccept reports whether the request may proceed. Store failures fail
// open: the request is accepted and the failure logged.
func (g *Guard) ShouldAccept(ctx context.Context, message, caller string) bool {
	fp := Fingerprint(message, caller)
	ok, err := g.store.CheckAndSet(ctx, fp, g.now(), g.window)
	if err != nil {
		log.Printf("WARNING: dedup store unavailable, accepting request %.12s: %v", fp, err)
		return true
	}
	if !ok {
		log.Printf("🚫 Duplicate request detected and blocked (fingerprint %.12s)", fp)
	}
	return ok
}
