package domain

import "time"

// SyncState is the per-project synchronization watermark. It is created on
// first sync, updated after every successful merge, and consulted to derive
// the "since" cutoff of an incremental fetch.
type SyncState struct {
	ProjectID   int
	LastFetchAt time.Time
	LastSeq     int64
	LastSyncID  string
	UpdatedAt   time.Time
}

// Stale reports whether the last fetch is older than the given TTL.
// Staleness is a recommendation to resync, never an error and never a
// trigger for an automatic write.
func (s *SyncState) Stale(ttl time.Duration, now time.Time) bool {
	if s.LastFetchAt.IsZero() {
		return true
	}
	return now.Sub(s.LastFetchAt) > ttl
}
