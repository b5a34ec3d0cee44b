// Package monthkey converts between the human month key used to scope
// every budget view (e.g. "January-2025") and numeric (month, year)
// pairs used for store filtering.
package monthkey

import (
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// now is swapped out in tests.
var now = time.Now

// Decode parses a month key into (month 1..12, year).
//
// The fallback behavior is deliberate policy, not an error path: an
// empty key yields the current month and year, an unrecognized month
// name yields the current month number, and a missing year token
// yields the current year. A usable default beats a failure here.
func Decode(key string) (month, year int) {
	t := now()
	if key == "" {
		return int(t.Month()), t.Year()
	}

	name, yearStr, _ := strings.Cut(key, "-")
	month = int(t.Month())
	for i, m := range monthNames {
		if strings.EqualFold(m, name) {
			month = i + 1
			break
		}
	}

	year = t.Year()
	if yearStr != "" {
		if y, err := strconv.Atoi(yearStr); err == nil {
			year = y
		}
	}
	return month, year
}

// Encode builds a month key from numeric month and year. A month
// outside 1..12 degrades to a year-only string rather than failing.
func Encode(month, year int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(year)
	}
	return monthNames[month-1] + "-" + strconv.Itoa(year)
}

// Current returns the month key for the system clock's current month.
func Current() string {
	t := now()
	return Encode(int(t.Month()), t.Year())
}

// DisplayLabel renders a month key for humans ("January 2025").
// An empty key defaults to the current month.
func DisplayLabel(key string) string {
	if key == "" {
		t := now()
		return monthNames[t.Month()-1] + " " + strconv.Itoa(t.Year())
	}
	return strings.Replace(key, "-", " ", 1)
}

// Next advances one month, wrapping December into January of the next
// year.
func Next(month, year int) (int, int) {
	month++
	if month > 12 {
		return 1, year + 1
	}
	return month, year
}

// Previous steps back one month, wrapping January into December of the
// prior year.
func Previous(month, year int) (int, int) {
	month--
	if month < 1 {
		return 12, year - 1
	}
	return month, year
}
