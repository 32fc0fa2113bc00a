package kma

import (
	"fmt"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	// KST is Korea Standard Time, in which release times are scheduled
	KST = time.FixedZone("KST", 9*60*60)

	// Hours at which the short-term forecast is released
	releaseHours = []int{2, 5, 8, 11, 14, 17, 20, 23}
)

const (
	// Data for a release is available this many minutes after the hour
	releaseDelay = 10
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// BaseDateTime returns the base_date (YYYYMMDD) and base_time (HHMM) of the
// most recent forecast release available at the given time. Before the first
// release of the day, the last release of the previous day is used.
func BaseDateTime(now time.Time) (string, string) {
	now = now.In(KST)
	for i := len(releaseHours) - 1; i >= 0; i-- {
		hour := releaseHours[i]
		if now.Hour() > hour || (now.Hour() == hour && now.Minute() >= releaseDelay) {
			return now.Format("20060102"), fmt.Sprintf("%02d00", hour)
		}
	}
	return now.AddDate(0, 0, -1).Format("20060102"), "2300"
}
