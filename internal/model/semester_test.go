package model

import (
	"testing"
	"time"
)

func TestCurrentTerm(t *testing.T) {
	cases := []struct {
		month time.Month
		want  SemesterTime
	}{
		{time.January, SemesterSpring},
		{time.May, SemesterSpring},
		{time.June, SemesterSummer},
		{time.July, SemesterSummer},
		{time.August, SemesterFall},
		{time.November, SemesterFall},
		{time.December, SemesterWinter},
	}
	for _, tc := range cases {
		now := time.Date(2026, tc.month, 15, 12, 0, 0, 0, time.UTC)
		term, year := CurrentTerm(now)
		if term != tc.want || year != 2026 {
			t.Errorf("CurrentTerm(%s) = %s %d, want %s 2026", tc.month, term, year, tc.want)
		}
	}
}

func TestSemesterLabel(t *testing.T) {
	s := &Semester{Time: SemesterSpring, Year: 2026}
	if got := s.Label(); got != "SPR2026" {
		t.Errorf("Label() = %q, want SPR2026", got)
	}
}

func TestParseMinuteOfDay(t *testing.T) {
	got, err := ParseMinuteOfDay("09:30")
	if err != nil || got != 570 {
		t.Errorf("ParseMinuteOfDay(09:30) = %d, %v", got, err)
	}
	if got.String() != "09:30" {
		t.Errorf("String() = %q, want 09:30", got.String())
	}
	if _, err := ParseMinuteOfDay("25:00"); err == nil {
		t.Error("hour out of range accepted")
	}
	if _, err := ParseMinuteOfDay("banana"); err == nil {
		t.Error("garbage accepted")
	}
}

func TestDaySetIntersects(t *testing.T) {
	mwf := DaySet{Monday, Wednesday, Friday}
	tth := DaySet{Tuesday, Thursday}
	if mwf.Intersects(tth) {
		t.Error("disjoint sets reported as intersecting")
	}
	if !mwf.Intersects(DaySet{Friday, Saturday}) {
		t.Error("overlapping sets reported as disjoint")
	}
}
