package push

import (
	"sync"
	"time"
)

const dayFormat = "2006-01-02"

// GuardKey identifies one notification decision: one user, one kind, one
// calendar day. The day is part of the key, so yesterday's entries are
// simply never looked up again.
type GuardKey struct {
	UserID int64
	Kind   string
	Day    string
}

// NewGuardKey builds a key for the given user, kind, and the calendar day
// containing at.
func NewGuardKey(userID int64, kind string, at time.Time) GuardKey {
	return GuardKey{UserID: userID, Kind: kind, Day: at.Format(dayFormat)}
}

// SendGuard tracks which notifications have already gone out today, so a
// reminder whose window spans several scheduler ticks is sent once.
//
// The guard is in-memory only and is lost on restart; duplicate
// suppression does not survive the process. Callers must mark a key only
// after a successful delivery, so a failed attempt retries on the next
// tick.
type SendGuard struct {
	mu   sync.Mutex
	sent map[GuardKey]struct{}
}

func NewSendGuard() *SendGuard {
	return &SendGuard{sent: make(map[GuardKey]struct{})}
}

// ShouldSend reports whether the key has not yet been marked sent.
func (g *SendGuard) ShouldSend(key GuardKey) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, sent := g.sent[key]
	return !sent
}

// MarkSent records the key and drops entries from previous days while the
// lock is held anyway.
func (g *SendGuard) MarkSent(key GuardKey) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.sent {
		if k.Day != key.Day {
			delete(g.sent, k)
		}
	}
	g.sent[key] = struct{}{}
}
