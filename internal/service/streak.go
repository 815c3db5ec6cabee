// ABOUTME: Consecutive-day streak recalculation from the full workout date set.
// ABOUTME: Always derived fresh, never incremented, so edits of past days stay correct.
package service

import (
	"sort"
	"time"

	"github.com/harperreed/heat/internal/models"
)

// RecalculateStreak derives the streak from every workout date. Dates are
// deduplicated and walked newest-first; the streak ends at the first gap
// wider than one day. An empty set yields streak 0 and a zero last date.
func RecalculateStreak(dates []time.Time) (int, time.Time) {
	if len(dates) == 0 {
		return 0, time.Time{}
	}

	seen := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		day := d.Truncate(24 * time.Hour)
		seen[day.Format(models.DateLayout)] = day
	}

	unique := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].After(unique[j]) })

	streak := 1
	for i := 1; i < len(unique); i++ {
		if unique[i-1].Sub(unique[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}

	return streak, unique[0]
}

// StreakBroken reports whether the streak has lapsed: more than one full day
// has passed since the last workout. Used by the startup check so a user who
// stays away loses the streak without logging anything.
func StreakBroken(lastWorkout *time.Time, today time.Time) bool {
	if lastWorkout == nil {
		return false
	}
	last := lastWorkout.Truncate(24 * time.Hour)
	return today.Truncate(24 * time.Hour).Sub(last) > 24*time.Hour
}
