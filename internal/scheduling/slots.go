package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var errBadTimeOfDay = errors.New("time of day must be HH:MM or hh:mm AM/PM")

// ParseTimeOfDay converts a time-of-day string into minutes since midnight.
// Both 24-hour ("14:30") and 12-hour ("02:30 PM") forms are accepted so that
// capacity matching works on the instant rather than on the raw label text.
func ParseTimeOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)

	meridiem := ""
	if n := len(s); n >= 3 {
		switch strings.ToUpper(s[n-2:]) {
		case "AM", "PM":
			meridiem = strings.ToUpper(s[n-2:])
			s = strings.TrimSpace(s[:n-2])
		}
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("%w: %q", errBadTimeOfDay, s)
		}
	}

	return hour*60 + minute, nil
}

// GenerateSlots produces the ordered list of bookable time slots for a doctor
// on a given date and mode. Slots whose capacity is exhausted by approved or
// pending appointments come back with Disabled set; the caller decides how to
// render them. A nil doctor yields no slots.
//
// Slots from overlapping windows are sorted by instant and deduplicated by
// label; the earlier window decides the Disabled flag for a duplicate label.
func GenerateSlots(doctor *Doctor, date time.Time, existing []BookedAppointment, mode Mode, now time.Time) []TimeSlot {
	if doctor == nil {
		return []TimeSlot{}
	}

	day := truncateToDay(date)

	if doctor.Sentinel {
		return sentinelSlots(day, now)
	}

	booked := bookedCounts(doctor.ID, day, existing)

	slots := make([]TimeSlot, 0)
	for _, window := range doctor.Availability {
		if window.Closed || window.Day != day.Weekday() {
			continue
		}
		if mode == ModeClinic && !window.ClinicTime {
			continue
		}
		if mode == ModeVideo && !window.VideoTime {
			continue
		}
		slots = append(slots, windowSlots(window, day, booked)...)
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Time.Before(slots[j].Time) })
	return dedupeByLabel(slots)
}

// windowSlots steps through one availability window, emitting a slot every
// SlotDuration minutes while the start stays strictly before EndTime. A window
// whose width is not a multiple of the duration simply stops at the last start
// that still fits.
func windowSlots(window Availability, day time.Time, booked map[int]int) []TimeSlot {
	start, err := ParseTimeOfDay(window.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseTimeOfDay(window.EndTime)
	if err != nil {
		return nil
	}
	if window.SlotDuration <= 0 || window.Persons <= 0 || start >= end {
		return nil
	}

	slots := make([]TimeSlot, 0, (end-start+window.SlotDuration-1)/window.SlotDuration)
	for minute := start; minute < end; minute += window.SlotDuration {
		instant := atMinute(day, minute)
		slots = append(slots, TimeSlot{
			Time:     instant,
			Label:    instant.Format(LabelFormat),
			Disabled: booked[minute] >= window.Persons,
		})
	}
	return slots
}

// sentinelSlots generates the generic "no doctor" grid: half-hour slots from
// 08:00 to 20:00, past starts dropped when the date is today, no capacity cap.
func sentinelSlots(day time.Time, now time.Time) []TimeSlot {
	slots := make([]TimeSlot, 0, (sentinelEndMinute-sentinelStartMinute)/sentinelSlotDuration)
	today := sameDay(day, now)
	for minute := sentinelStartMinute; minute < sentinelEndMinute; minute += sentinelSlotDuration {
		instant := atMinute(day, minute)
		if today && !instant.After(now) {
			continue
		}
		slots = append(slots, TimeSlot{Time: instant, Label: instant.Format(LabelFormat)})
	}
	return slots
}

// bookedCounts maps minute-of-day to the number of seat-consuming appointments
// for one doctor and date. Matching is done on the parsed instant, not the raw
// label text, so 24-hour and 12-hour labels count against the same slot.
func bookedCounts(doctorID string, day time.Time, existing []BookedAppointment) map[int]int {
	dateKey := day.Format(DateFormat)
	counts := make(map[int]int)
	for _, appt := range existing {
		if appt.DoctorID != doctorID || appt.Date != dateKey {
			continue
		}
		if !CountsTowardCapacity(appt.Status) {
			continue
		}
		minute, err := ParseTimeOfDay(appt.TimeLabel)
		if err != nil {
			continue
		}
		counts[minute]++
	}
	return counts
}

func dedupeByLabel(slots []TimeSlot) []TimeSlot {
	seen := make(map[string]struct{}, len(slots))
	out := slots[:0]
	for _, slot := range slots {
		if _, dup := seen[slot.Label]; dup {
			continue
		}
		seen[slot.Label] = struct{}{}
		out = append(out, slot)
	}
	return out
}
