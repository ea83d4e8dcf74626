package auth

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Throttle counts failed logins per email and locks the email out once
// maxAttempts is reached. The counter expires lockout after the first failure.
type Throttle struct {
	attempts    *cache.Cache
	maxAttempts int
	lockout     time.Duration
}

func NewThrottle(maxAttempts int, lockout time.Duration) *Throttle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockout <= 0 {
		lockout = 15 * time.Minute
	}
	return &Throttle{
		attempts:    cache.New(lockout, lockout*2),
		maxAttempts: maxAttempts,
		lockout:     lockout,
	}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (t *Throttle) Locked(email string) bool {
	v, found := t.attempts.Get(key(email))
	return found && v.(int) >= t.maxAttempts
}

func (t *Throttle) Fail(email string) {
	k := key(email)
	if err := t.attempts.Add(k, 1, t.lockout); err != nil {
		_, _ = t.attempts.IncrementInt(k, 1)
	}
}

func (t *Throttle) Reset(email string) {
	t.attempts.Delete(key(email))
}
