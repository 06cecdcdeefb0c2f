package scheduling

import "time"

// IsDateBookable gates whether a calendar date falls inside the doctor's
// booking window. The window is [today+StartBufferDays, today+EndBufferDays],
// compared at day granularity. The sentinel doctor accepts today or later and
// ignores buffers entirely. Dates outside the window never reach GenerateSlots.
func IsDateBookable(doctor *Doctor, date time.Time, now time.Time) bool {
	if doctor == nil {
		return false
	}

	day := truncateToDay(date)
	today := truncateToDay(now)

	if doctor.Sentinel {
		return !day.Before(today)
	}

	endBuffer := doctor.EndBufferDays
	if endBuffer <= 0 {
		endBuffer = DefaultEndBufferDays
	}

	minDate := today.AddDate(0, 0, doctor.StartBufferDays)
	maxDate := today.AddDate(0, 0, endBuffer)

	return !day.Before(minDate) && !day.After(maxDate)
}

// BookableDates filters a span of consecutive dates down to the ones inside
// the doctor's booking window. Used for calendar-cell enablement.
func BookableDates(doctor *Doctor, from time.Time, days int, now time.Time) []time.Time {
	dates := make([]time.Time, 0, days)
	start := truncateToDay(from)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		if IsDateBookable(doctor, date, now) {
			dates = append(dates, date)
		}
	}
	return dates
}
