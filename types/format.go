package types

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ErrFormat errors are returned for invalid datetime templates.
var ErrFormat = fmt.Errorf("%w: format", ErrSQLType)

// templateField describes one to_char-style template pattern: the Go time
// layout it compiles to and the class of datetime field it populates. The
// field classes determine the type of the parsed value: date fields alone
// produce a date, time fields a time, and so on.
type templateField struct {
	pattern string
	layout  string
	date    bool
	time    bool
	tz      bool
}

// templateFields maps the supported PostgreSQL to_char-style template
// patterns to Go time layouts. Ordered longest-first so that scanning a
// template always consumes the longest matching pattern ("HH24" before
// "HH").
//
//nolint:gochecknoglobals
var templateFields = []templateField{
	{pattern: "TZH:TZM", layout: "Z07:00", tz: true},
	{pattern: "Month", layout: "January", date: true},
	{pattern: "HH24", layout: "15", time: true},
	{pattern: "HH12", layout: "03", time: true},
	{pattern: "YYYY", layout: "2006", date: true},
	{pattern: "Mon", layout: "Jan", date: true},
	{pattern: "TZH", layout: "Z07", tz: true},
	{pattern: "FF1", layout: "0", time: true},
	{pattern: "FF2", layout: "00", time: true},
	{pattern: "FF3", layout: "000", time: true},
	{pattern: "FF4", layout: "0000", time: true},
	{pattern: "FF5", layout: "00000", time: true},
	{pattern: "FF6", layout: "000000", time: true},
	{pattern: "Day", layout: "Monday", date: true},
	{pattern: "HH", layout: "03", time: true},
	{pattern: "MI", layout: "04", time: true},
	{pattern: "SS", layout: "05", time: true},
	{pattern: "MS", layout: "000", time: true},
	{pattern: "US", layout: "000000", time: true},
	{pattern: "YY", layout: "06", date: true},
	{pattern: "MM", layout: "01", date: true},
	{pattern: "DD", layout: "02", date: true},
	{pattern: "DY", layout: "Mon", date: true},
	{pattern: "OF", layout: "Z07:00", tz: true},
	{pattern: "AM", layout: "PM", time: true},
	{pattern: "PM", layout: "PM", time: true},
	{pattern: "am", layout: "pm", time: true},
	{pattern: "pm", layout: "pm", time: true},
}

// templateSeparators are the literal characters passed through from a
// template to the compiled layout unchanged.
const templateSeparators = " -./,':;T"

// compiledTemplate is the result of compiling a datetime template: the Go
// time layout plus the field classes the template populates.
type compiledTemplate struct {
	layout string
	date   bool
	time   bool
	tz     bool
}

// compileTemplate converts a PostgreSQL to_char-style datetime template into
// a compiled Go time layout. Returns an [ErrFormat] error for a pattern it
// does not recognize. Text in double quotes is passed through as a literal.
func compileTemplate(format string) (*compiledTemplate, error) {
	ct := new(compiledTemplate)
	layout := new(strings.Builder)

	rest := format
SCAN:
	for rest != "" {
		// Double-quoted literal text.
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf(`%w: unterminated quoted string in datetime template %q`, ErrFormat, format)
			}
			layout.WriteString(rest[1 : 1+end])
			rest = rest[end+2:]
			continue
		}

		// Match fields before separators: "TZH" must win over a literal "T".
		for _, field := range templateFields {
			if strings.HasPrefix(rest, field.pattern) {
				layout.WriteString(field.layout)
				ct.date = ct.date || field.date
				ct.time = ct.time || field.time
				ct.tz = ct.tz || field.tz
				rest = rest[len(field.pattern):]
				continue SCAN
			}
		}

		if strings.ContainsRune(templateSeparators, rune(rest[0])) {
			layout.WriteByte(rest[0])
			rest = rest[1:]
			continue
		}

		return nil, fmt.Errorf(`%w: unsupported datetime template pattern starting at %q`, ErrFormat, rest)
	}

	if !ct.date && !ct.time {
		return nil, fmt.Errorf(`%w: datetime template %q contains no date or time fields`, ErrFormat, format)
	}

	ct.layout = layout.String()
	return ct, nil
}

// ParseTimeFormat parses src according to the PostgreSQL to_char-style
// datetime template in format, as used by the SQL/JSON .datetime(template)
// method. The type of the result is determined by the fields the template
// names: date fields alone produce a [Date], time fields a [Time] (or
// [TimeTZ] with a time zone field), and both together a [Timestamp] (or
// [TimestampTZ]).
//
// Returns an [ErrFormat] error if the template itself is invalid; returns
// false with no error if the template is valid but src does not match it.
// The time zone in ctx determines the zone reported by a timestamptz
// result's [TimestampTZ.String].
func ParseTimeFormat(ctx context.Context, src, format string) (DateTime, bool, error) {
	ct, err := compileTemplate(format)
	if err != nil {
		return nil, false, err
	}

	value, err := time.Parse(ct.layout, src)
	if err != nil {
		return nil, false, nil
	}

	switch {
	case ct.date && ct.time && ct.tz:
		return NewTimestampTZ(ctx, value), true, nil
	case ct.date && ct.time:
		return NewTimestamp(value), true, nil
	case ct.date:
		return NewDate(value), true, nil
	case ct.tz:
		return NewTimeTZ(value), true, nil
	default:
		return NewTime(value), true, nil
	}
}
