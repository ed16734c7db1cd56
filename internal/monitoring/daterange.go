package monitoring

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format the upstream API expects.
const DateLayout = "02.01.2006"

// DateRange is an inclusive (start, end) calendar date pair, used verbatim in
// outbound requests.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two times, truncated to calendar dates.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
}

// SingleDayRange builds a one-day range covering the given date.
func SingleDayRange(day time.Time) DateRange {
	d := truncateToDay(day)
	return DateRange{Start: d, End: d}
}

// WindowEndingAt builds a range spanning the given number of days back from
// end through end itself.
func WindowEndingAt(end time.Time, daysBack int) DateRange {
	e := truncateToDay(end)
	return DateRange{Start: e.AddDate(0, 0, -daysBack), End: e}
}

// ParseDateRange parses the wire form "DD.MM.YYYY,DD.MM.YYYY".
func ParseDateRange(s string) (DateRange, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return DateRange{}, &MalformedInputError{Field: "range", Detail: "expected start,end"}
	}
	start, err := time.Parse(DateLayout, parts[0])
	if err != nil {
		return DateRange{}, &MalformedInputError{Field: "range", Detail: err.Error()}
	}
	end, err := time.Parse(DateLayout, parts[1])
	if err != nil {
		return DateRange{}, &MalformedInputError{Field: "range", Detail: err.Error()}
	}
	return DateRange{Start: start, End: end}, nil
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Valid reports whether the range is well-formed.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Equal compares two ranges by calendar date.
func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// QueryValue renders the range in the upstream wire form.
func (r DateRange) QueryValue() string {
	return r.Start.Format(DateLayout) + "," + r.End.Format(DateLayout)
}

// Days returns the number of calendar days the range covers, inclusive.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s]", r.QueryValue())
}

// MarshalJSON emits the wire form.
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.QueryValue())
}

// UnmarshalJSON parses the wire form.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
