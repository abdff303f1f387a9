package scheduler

import (
	"time"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
)

// Trigger decides when a job fires next.
type Trigger interface {
	// Next returns the first fire time strictly after after.
	Next(after time.Time) time.Time
	// Previous returns the latest fire time at or before at.
	Previous(at time.Time) time.Time
}

// Daily fires once a day at Hour:Minute wall-clock time in Location.
type Daily struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// DailyAt parses an HH:MM wall-clock time.
func DailyAt(hhmm string, loc *time.Location) (Daily, error) {
	hour, minute, err := config.ParseClock(hhmm)
	if err != nil {
		return Daily{}, err
	}
	return Daily{Hour: hour, Minute: minute, Location: loc}, nil
}

func (d Daily) Next(after time.Time) time.Time {
	candidate := clock.At(clock.Date(after, d.Location), d.Hour, d.Minute, d.Location)
	for !candidate.After(after) {
		candidate = clock.At(clock.Date(candidate, d.Location).AddDate(0, 0, 1), d.Hour, d.Minute, d.Location)
	}
	return candidate
}

func (d Daily) Previous(at time.Time) time.Time {
	candidate := clock.At(clock.Date(at, d.Location), d.Hour, d.Minute, d.Location)
	if candidate.After(at) {
		candidate = clock.At(clock.Date(at, d.Location).AddDate(0, 0, -1), d.Hour, d.Minute, d.Location)
	}
	return candidate
}

// Every fires at a fixed interval.
type Every struct {
	Interval time.Duration
}

func (e Every) Next(after time.Time) time.Time {
	return after.Add(e.Interval)
}

func (e Every) Previous(at time.Time) time.Time {
	return at
}
