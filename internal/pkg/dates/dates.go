package dates

import (
	"fmt"
	"strings"
	"time"

	"eventplanner-backend/internal/domain"
)

// Canonical is the stored representation of every normalized date.
const Canonical = time.RFC3339

// layouts are tried in order and the first successful parse wins. The order is
// load-bearing: "03-04-2025" is read as 3 April (day-month-year) even when the
// caller meant 4 March, because day-month-year is attempted before month/day/year.
var layouts = []string{
	"2-1-2006",          // DD-MM-YYYY
	"1/2/2006",          // MM/DD/YYYY
	"2006-1-2",          // YYYY-MM-DD
	"2-1-2006 15:04:05", // DD-MM-YYYY HH:MM:SS
}

// Normalize parses raw with the accepted layouts and returns it in canonical form (UTC).
func Normalize(raw string) (string, error) {
	t, err := parse(raw)
	if err != nil {
		return "", err
	}
	return t.Format(Canonical), nil
}

// Parse reads a canonical date back into a time.
func Parse(canonical string) (time.Time, error) {
	t, err := time.Parse(Canonical, canonical)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, canonical)
	}
	return t.UTC(), nil
}

// NormalizeOrNow is used for timestamps that default to the current time when absent.
// An already canonical value is accepted unchanged.
func NormalizeOrNow(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC().Format(Canonical), nil
	}
	if t, err := time.Parse(Canonical, raw); err == nil {
		return t.UTC().Format(Canonical), nil
	}
	return Normalize(raw)
}

func parse(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, raw)
}
