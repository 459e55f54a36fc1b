package utils

import (
	"fmt"
	"time"
)

// ParseSlotDate validates a calendar day in "YYYY-MM-DD" form.
func ParseSlotDate(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// ParseSlotTime converts an "HH:MM" slot start into minutes from midnight.
func ParseSlotTime(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("time must be in HH:MM format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatSlotTime renders minutes from midnight back to "HH:MM".
func FormatSlotTime(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// SlotStartTime resolves a date string and minute-of-day to an absolute UTC instant.
func SlotStartTime(date string, minute int) (time.Time, error) {
	d, err := ParseSlotDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(minute) * time.Minute), nil
}
