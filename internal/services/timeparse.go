package services

import (
	"regexp"
	"strconv"
	"time"
)

// minLeadTime is the shortest gap between ordering and pickup the shop can
// handle.
const minLeadTime = 10 * time.Minute

var (
	relativeTimePattern = regexp.MustCompile(`(?i)через (\d+)`)
	absoluteTimePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// parsePickupTime understands two inputs: "через N" as now plus N minutes,
// and "H:MM"/"HH:MM" as today's wall clock, rolled to tomorrow when already
// past. Anything else fails.
func parsePickupTime(text string, now time.Time) (time.Time, bool) {
	if m := relativeTimePattern.FindStringSubmatch(text); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return now.Add(time.Duration(minutes) * time.Minute), true
	}

	if m := absoluteTimePattern.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if hours > 23 || minutes > 59 {
			return time.Time{}, false
		}
		pickup := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
		if pickup.Before(now) {
			pickup = pickup.AddDate(0, 0, 1)
		}
		return pickup, true
	}

	return time.Time{}, false
}

// isValidPickupTime checks the minimum lead time. It is independent of
// parsing: a perfectly parsed time can still be too soon.
func isValidPickupTime(pickup, now time.Time) bool {
	return !pickup.Before(now.Add(minLeadTime))
}
