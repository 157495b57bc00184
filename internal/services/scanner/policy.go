package scanner

import (
	"errors"
	"time"
)

const (
	DefaultCacheWindow   = 7 * 24 * time.Hour
	DefaultForceCooldown = 10 * time.Minute
)

// ErrScanTooRecent is the soft warning attached to a forced rescan that was
// served from cache because the last scan is too fresh.
var ErrScanTooRecent = errors.New("fresh scan denied: the last scan is too recent")

// Policy decides when a cached scan is served instead of a fresh one.
type Policy struct {
	CacheWindow   time.Duration
	ForceCooldown time.Duration
}

type Decision struct {
	UseCache bool
	// Warning is set when a forced scan was downgraded to the cache.
	Warning error
}

// Decide applies the cache policy. lastScan is nil when there is no
// preceding scan.
func (p Policy) Decide(now time.Time, lastScan *time.Time, force bool) Decision {
	if lastScan == nil {
		return Decision{}
	}
	age := now.Sub(*lastScan)
	if force {
		if age < p.ForceCooldown {
			return Decision{UseCache: true, Warning: ErrScanTooRecent}
		}
		return Decision{}
	}
	return Decision{UseCache: age < p.CacheWindow}
}
