package midds

import "fmt"

// Date is a calendar date with explicit year/month/day components.
//
// Invariants:
//   - Year within 1000..9999
//   - Month within 1..12
//   - Day within 1..days(month, year), Gregorian leap rule
type Date struct {
	year  uint16
	month uint8
	day   uint8
}

// NewDate validates the component triple.
func NewDate(year uint16, month, day uint8) (Date, error) {
	if year < 1000 || year > 9999 {
		return Date{}, outOfRange("date.year", fmt.Sprintf("%d", year))
	}
	if month < 1 || month > 12 {
		return Date{}, outOfRange("date.month", fmt.Sprintf("%d", month))
	}
	if day < 1 || day > daysIn(month, year) {
		return Date{}, outOfRange("date.day", fmt.Sprintf("%d", day))
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate creates a Date, panicking if invalid. Test helper.
func MustDate(year uint16, month, day uint8) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() uint16 { return d.year }
func (d Date) Month() uint8 { return d.month }
func (d Date) Day() uint8   { return d.day }
func (d Date) IsZero() bool { return d == Date{} }

// String renders the ISO 8601 calendar form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func daysIn(month uint8, year uint16) uint8 {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	}
	return 0
}

func isLeap(year uint16) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
