// Package calendar maps calendar dates and years onto numbered two-year
// Congresses, including the 20th Amendment change from March-start to
// January-start sessions.
package calendar

import (
	"fmt"
	"time"

	"github.com/leveneer/congress-member-data/internal/errors"
)

const (
	// FirstCongressYear is the start year of the 1st Congress.
	FirstCongressYear = 1789

	// firstJanuaryCongress is the first Congress seated under the
	// January-3 rule. Everything below it began in March.
	firstJanuaryCongress = 73

	// amendmentYear is the single year in which both rules applied.
	amendmentYear = 1933
)

// transitionOverrides is consulted before the general rule, but only for
// queries that carry the amendment year as context. The 72nd Congress
// served through March 1933 under the old rule while the 73rd was seated
// in January 1933 under the new one.
var transitionOverrides = map[int]struct {
	name   string
	number int
}{
	72: {"March", 3},
	73: {"January", 1},
}

// CongressForDate returns the Congress number in session on d.
//
// Congresses begin on January 3rd of odd-numbered years. Even years map
// to the Congress seated the previous odd year, and January 1st-2nd of an
// odd year still belong to the outgoing Congress. Results are meaningful
// for dates from March 4, 1789 onward; earlier dates are undefined.
func CongressForDate(d time.Time) int {
	year := d.Year()
	if year%2 == 0 {
		year--
	}
	if year%2 == 1 && d.Month() == time.January && d.Day() < 3 {
		year -= 2
	}
	return 1 + (year-FirstCongressYear)/2
}

// CongressYears returns the start and end calendar years of a Congress.
// Spans are contiguous: each Congress ends the year the next begins.
func CongressYears(n int) (start, end int) {
	start = FirstCongressYear + (n-1)*2
	return start, start + 2
}

// TransitionMonth returns the month a Congress's sessions begin, as a
// name and month number. Pass year 0 when no year context applies; the
// 1933 override table is only consulted for year == 1933.
func TransitionMonth(congress, year int) (string, int) {
	if year == amendmentYear {
		if m, ok := transitionOverrides[congress]; ok {
			return m.name, m.number
		}
	}
	if congress < firstJanuaryCongress {
		return "March", 3
	}
	return "January", 1
}

// FormatOrdinal renders n as an English ordinal: 1st, 2nd, 3rd, 4th.
// Numbers ending in 11-13 take "th" regardless of their last digit.
func FormatOrdinal(n int) string {
	if r := n % 100; r >= 10 && r <= 20 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

// FormatCongressInfo describes the Congress(es) in session during a year.
//
// Odd years see a handover, so both the outgoing and incoming Congresses
// are rendered with their transition months, e.g.
// "117th Congress (2021-January 2023) & 118th Congress (January 2023-2025)".
// Even years fall inside a single Congress: "113th Congress (2013-2015)".
func FormatCongressInfo(year int) string {
	if year%2 == 1 {
		prev := CongressForDate(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		curr := prev + 1

		prevStart, _ := CongressYears(prev)
		_, currEnd := CongressYears(curr)

		prevMonth, _ := TransitionMonth(prev, year)
		currMonth, _ := TransitionMonth(curr, year)

		return fmt.Sprintf("%s Congress (%d-%s %d) & %s Congress (%s %d-%d)",
			FormatOrdinal(prev), prevStart, prevMonth, year,
			FormatOrdinal(curr), currMonth, year, currEnd)
	}

	congress := CongressForDate(time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC))
	start, end := CongressYears(congress)
	return fmt.Sprintf("%s Congress (%d-%d)", FormatOrdinal(congress), start, end)
}

// ValidateYear checks that a user-supplied lookup year falls within
// [1789, current year + 1].
func ValidateYear(year int, now time.Time) error {
	max := now.Year() + 1
	if year < FirstCongressYear || year > max {
		return errors.UsageErrorf("invalid year %d: must be between %d and %d", year, FirstCongressYear, max)
	}
	return nil
}
