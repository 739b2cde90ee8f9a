package model

import "fmt"

// Weekday is a three-letter day tag used on labs and TA unavailability slots.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// AllWeekdays lists every valid weekday tag in calendar order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday validates a raw day string into a Weekday.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range AllWeekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q", s)
}

// DaySet is an unordered set of weekdays. It is parsed once at the request or
// repository boundary and never re-parsed from raw strings downstream.
type DaySet []Weekday

// DaySetFromStrings converts raw day strings into a DaySet.
func DaySetFromStrings(raw []string) (DaySet, error) {
	set := make(DaySet, 0, len(raw))
	for _, s := range raw {
		d, err := ParseWeekday(s)
		if err != nil {
			return nil, err
		}
		set = append(set, d)
	}
	return set, nil
}

// Strings returns the set as raw strings for storage.
func (s DaySet) Strings() []string {
	out := make([]string, len(s))
	for i, d := range s {
		out[i] = string(d)
	}
	return out
}

// Intersects reports whether the two sets share at least one weekday.
func (s DaySet) Intersects(other DaySet) bool {
	for _, a := range s {
		for _, b := range other {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Contains reports whether the set includes the given weekday.
func (s DaySet) Contains(d Weekday) bool {
	for _, a := range s {
		if a == d {
			return true
		}
	}
	return false
}
