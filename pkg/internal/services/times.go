package services

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeTime renders t against the current clock, e.g. "3 minutes ago".
func RelativeTime(t time.Time) string {
	return humanize.Time(t)
}
