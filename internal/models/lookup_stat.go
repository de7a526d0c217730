package models

import "time"

// LookupStat is a per-keyword resolution count by outcome. Outcomes are
// the ranking result statuses (checked, no-rank, not-target).
type LookupStat struct {
	Keyword    string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
