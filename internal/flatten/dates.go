package flatten

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dayMonthYearLayout = "2 Jan 2006"

var (
	aboutYearPattern = regexp.MustCompile(`^ABT (\d{4})$`)
	yearPattern      = regexp.MustCompile(`^\d{4}$`)
	monthYearPattern = regexp.MustCompile(`^([A-Z]{3}) (\d{4})$`)
)

// ParseDate converts a GEDCOM date into a calendar date. Forms are tried in
// order: "16 AUG 1944", "ABT 1898", "1898", "FEB 1909". Partial dates resolve
// to the first day of the year or month. The bool is false when no form matches.
func ParseDate(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dayMonthYearLayout, value); err == nil {
		return t, true
	}
	if m := aboutYearPattern.FindStringSubmatch(value); m != nil {
		return yearStart(m[1])
	}
	if yearPattern.MatchString(value) {
		return yearStart(value)
	}
	if m := monthYearPattern.FindStringSubmatch(value); m != nil {
		month, err := time.Parse("Jan", m[1])
		if err != nil {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, month.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func yearStart(digits string) (time.Time, bool) {
	year, err := strconv.Atoi(digits)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
}

// UnknownAge is the AGE cell value when the birth date cannot be resolved.
const UnknownAge = "Unknown"

// Age is a whole number of years, or unknown.
type Age struct {
	Years int
	Known bool
}

// String renders the age as written to the person table.
func (a Age) String() string {
	if !a.Known {
		return UnknownAge
	}
	return strconv.Itoa(a.Years)
}

// Value returns the cell value: an int when known, UnknownAge otherwise.
func (a Age) Value() any {
	if !a.Known {
		return UnknownAge
	}
	return a.Years
}

// ComputeAge returns the age at death, or at now when the death date is
// missing or unparseable.
func ComputeAge(birth, death string, now time.Time) Age {
	born, ok := ParseDate(birth)
	if !ok {
		return Age{}
	}
	end, ok := ParseDate(death)
	if !ok {
		end = now
	}
	years := end.Year() - born.Year()
	if end.Month() < born.Month() || (end.Month() == born.Month() && end.Day() < born.Day()) {
		years--
	}
	return Age{Years: years, Known: true}
}
