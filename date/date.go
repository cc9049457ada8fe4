package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// DefaultLayout is the layout used to read dates from statement exports
// when the caller does not supply one.
const DefaultLayout = "2006/01/02"

// ofxFormat renders a date as an OFX datetime at wall-clock midnight.
const ofxFormat = "20060102000000"

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// OFX renders the date as an OFX datetime value, at wall-clock midnight.
// OFX datetimes are second-resolution; a date-only value pins to 000000.
func (d Date) OFX() string { return d.time().Format(ofxFormat) }

// Parse parses a Date from a string in the standard ISO-8601 format.
func Parse(str string) (Date, error) {
	return ParseLayout(DateFormat, str)
}

// ParseLayout parses a Date from a string using the given time layout.
// The time-of-day component of the layout, if any, is discarded: a Date
// carries no time.
func ParseLayout(layout, str string) (Date, error) {
	on, err := time.Parse(layout, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, layout, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
