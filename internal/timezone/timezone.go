package timezone

import (
	"sync/atomic"
	"time"
)

const DateLayout = "2006-01-02"

var defaultTZ atomic.Value

func init() {
	defaultTZ.Store("UTC")
}

// SetDefault replaces the fallback used for businesses without a valid
// timezone. Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultTZ.Store(tz)
	}
}

func Default() string {
	return defaultTZ.Load().(string)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Default())
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DateOf returns t's calendar day in tz as midnight UTC, the form slot
// dates are stored in.
func DateOf(t time.Time, tz string) time.Time {
	y, m, d := t.In(Location(tz)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
