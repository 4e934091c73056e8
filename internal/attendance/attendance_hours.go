package attendance

import (
	"math"
	"os"
	"strconv"
	"time"
)

// Config holds the office-hours thresholds. They are plain configuration
// so the state machine stays testable across time zones.
type Config struct {
	OfficeStartHour int
	OfficeEndHour   int
	Location        *time.Location
}

func DefaultConfig() Config {
	return Config{
		OfficeStartHour: 9,
		OfficeEndHour:   17,
		Location:        time.Local,
	}
}

// ConfigFromEnv reads OFFICE_START_HOUR / OFFICE_END_HOUR / OFFICE_TZ,
// falling back to 09:00 / 17:00 local.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, err := strconv.Atoi(os.Getenv("OFFICE_START_HOUR")); err == nil && v >= 0 && v < 24 {
		cfg.OfficeStartHour = v
	}
	if v, err := strconv.Atoi(os.Getenv("OFFICE_END_HOUR")); err == nil && v >= 0 && v < 24 {
		cfg.OfficeEndHour = v
	}
	if tz := os.Getenv("OFFICE_TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Location = loc
		}
	}
	return cfg
}

// StartOfDay normalizes t to midnight in the configured zone.
func (c Config) StartOfDay(t time.Time) time.Time {
	local := t.In(c.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.Location)
}

// OfficeStart returns the late-arrival threshold for the record's day.
func (c Config) OfficeStart(day time.Time) time.Time {
	d := c.StartOfDay(day)
	return d.Add(time.Duration(c.OfficeStartHour) * time.Hour)
}

// OfficeEnd returns the early-departure threshold for the record's day.
func (c Config) OfficeEnd(day time.Time) time.Time {
	d := c.StartOfDay(day)
	return d.Add(time.Duration(c.OfficeEndHour) * time.Hour)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func msToHours(ms int64) float64 {
	return float64(ms) / (1000 * 60 * 60)
}

// workingDaysBetween counts calendar days in [start, end] excluding
// Saturdays and Sundays. Holidays are deliberately not consulted here.
func workingDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func parseDate(v string) (time.Time, error) {
	return time.Parse("2006-01-02", v)
}
