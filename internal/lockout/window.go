// Package lockout implements the lockdown engine: recurring schedule
// enforcement, jail countdown timers driven by voice-channel presence, and the
// live status board. The periodic reconciler and the voice event handler both
// funnel through the primitives here so their interleavings stay correct.
package lockout

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

// ParseClock parses a wall-clock time "HH:MM" into a minute-of-day (0-1439).
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("hora inválida %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("hora fuera de rango: %q", s)
	}
	return h*60 + m, nil
}

// IsWithinWindow reports whether now falls inside the [start, end] window.
// All three are minutes-of-day. Windows where start >= end wrap past
// midnight: 23:00-07:00 covers 23:30 and 06:00 but not 12:00.
func IsWithinWindow(start, end, now int) bool {
	if start < end {
		return start <= now && now <= end
	}
	return now >= start || now <= end
}

// IsActiveDay reports whether a schedule applies on the given local weekday.
func IsActiveDay(repeat models.RepeatMode, weekday time.Weekday) bool {
	switch repeat {
	case models.RepeatWeekdays:
		return weekday != time.Saturday && weekday != time.Sunday
	case models.RepeatWeekends:
		return weekday == time.Saturday || weekday == time.Sunday
	default: // daily
		return true
	}
}

// LocalClock shifts a UTC instant by a fixed hour offset and returns the
// resulting minute-of-day and weekday. Timezone bindings carry plain UTC
// offsets, not IANA zones, so this is simple clock arithmetic.
func LocalClock(utcNow time.Time, offsetHours int) (int, time.Weekday) {
	local := utcNow.UTC().Add(time.Duration(offsetHours) * time.Hour)
	return local.Hour()*60 + local.Minute(), local.Weekday()
}

// ShouldBeLocked evaluates a schedule against a local wall clock.
func ShouldBeLocked(sched *models.UserSchedule, localMinute int, weekday time.Weekday) (bool, error) {
	start, err := ParseClock(sched.Start)
	if err != nil {
		return false, err
	}
	end, err := ParseClock(sched.End)
	if err != nil {
		return false, err
	}
	return IsActiveDay(sched.Repeat, weekday) && IsWithinWindow(start, end, localMinute), nil
}
