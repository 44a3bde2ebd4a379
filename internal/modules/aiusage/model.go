package aiusage

import "time"

// Record is the accounting for one successful itinerary generation.
type Record struct {
	RequestID    string
	Destination  string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	GeneratedAt  time.Time
}

// DailyKeyTTL bounds how long the per-day Redis totals are kept.
const DailyKeyTTL = 35 * 24 * time.Hour
