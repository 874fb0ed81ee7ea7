package types

import (
	"context"
	"time"
)

// timeLayout pairs a Go time layout with a constructor for the DateTime type
// the layout denotes.
type timeLayout struct {
	layout string
	build  func(ctx context.Context, t time.Time) DateTime
}

func buildDate(_ context.Context, t time.Time) DateTime      { return NewDate(t) }
func buildTime(_ context.Context, t time.Time) DateTime      { return NewTime(t) }
func buildTimeTZ(_ context.Context, t time.Time) DateTime    { return NewTimeTZ(t) }
func buildTimestamp(_ context.Context, t time.Time) DateTime { return NewTimestamp(t) }
func buildTimestampTZ(ctx context.Context, t time.Time) DateTime {
	return NewTimestampTZ(ctx, t)
}

// timeLayouts lists the formats tried by ParseTime, in the order mandated by
// the SQL/JSON standard: date, time_tz, time, timestamp_tz, timestamp. The
// first layout that parses the entire input wins and determines the type of
// the result.
//
//nolint:gochecknoglobals
var timeLayouts = []timeLayout{
	// date
	{"2006-01-02", buildDate},
	// time with tz
	{"15:04:05Z07", buildTimeTZ},
	{"15:04:05Z07:00", buildTimeTZ},
	{"15:04:05Z07:00:00", buildTimeTZ},
	// time without tz
	{"15:04:05", buildTime},
	// timestamp with tz, with and without "T"
	{"2006-01-02T15:04:05Z07", buildTimestampTZ},
	{"2006-01-02 15:04:05Z07", buildTimestampTZ},
	{"2006-01-02T15:04:05Z07:00", buildTimestampTZ},
	{"2006-01-02 15:04:05Z07:00", buildTimestampTZ},
	{"2006-01-02T15:04:05Z07:00:00", buildTimestampTZ},
	{"2006-01-02 15:04:05Z07:00:00", buildTimestampTZ},
	// timestamp without tz, with and without "T"
	{"2006-01-02T15:04:05", buildTimestamp},
	{"2006-01-02 15:04:05", buildTimestamp},
}

// ParseTime parses src into a [DateTime] by iterating through a list of
// valid time and timestamp formats according to the SQL/JSON standard: date,
// time_tz, time, timestamp_tz, and timestamp. The type of the result is
// determined by the first format to parse the entire string. Returns false
// if the string cannot be parsed by any of the formats.
//
// We also support ISO 8601 format (with "T") for timestamps, because
// PostgreSQL to_json() and to_jsonb() functions use this format, as do
// [Timestamp.MarshalJSON] and [TimestampTZ.MarshalJSON].
//
// Fractional seconds are accepted after the seconds of any time or timestamp
// format. If precision is zero or greater, the result's fractional seconds
// are rounded to that many digits. The time zone in ctx determines the zone
// reported by a timestamptz result's [TimestampTZ.String].
func ParseTime(ctx context.Context, src string, precision int) (DateTime, bool) {
	// Handle infinity and -infinity? 24:00::00 time?
	for _, format := range timeLayouts {
		value, err := time.Parse(format.layout, src)
		if err != nil {
			continue
		}
		return format.build(ctx, roundTime(value, precision)), true
	}
	return nil, false
}

// roundTime rounds the fractional seconds of t to precision digits. A
// negative precision leaves t unchanged.
func roundTime(t time.Time, precision int) time.Time {
	const maxPrecision = 9
	if precision < 0 || precision > maxPrecision {
		return t
	}

	unit := time.Second
	for i := 0; i < precision; i++ {
		unit /= 10
	}
	return t.Round(unit)
}
