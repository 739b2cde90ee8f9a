package model

import (
	"fmt"
	"time"
)

// SemesterTime enumerates the four times of year a semester can be held.
type SemesterTime string

const (
	SemesterSpring SemesterTime = "SPR"
	SemesterSummer SemesterTime = "SUM"
	SemesterFall   SemesterTime = "FAL"
	SemesterWinter SemesterTime = "WNT"
)

// Semester partitions labs, TA eligibility, and template schedules.
// At most one semester may exist per (time, year) pair.
type Semester struct {
	ID        int          `json:"id"`
	Time      SemesterTime `json:"time"`
	Year      int          `json:"year"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Label returns the short human-readable semester name, e.g. "SPR2026".
func (s *Semester) Label() string {
	return fmt.Sprintf("%s%d", s.Time, s.Year)
}

// CurrentTerm guesses which semester is in session at the given moment:
// Jan-May Spring, Jun-Jul Summer, Aug-Nov Fall, Dec Winter.
func CurrentTerm(now time.Time) (SemesterTime, int) {
	switch m := now.Month(); {
	case m >= time.January && m <= time.May:
		return SemesterSpring, now.Year()
	case m >= time.June && m <= time.July:
		return SemesterSummer, now.Year()
	case m >= time.August && m <= time.November:
		return SemesterFall, now.Year()
	default:
		return SemesterWinter, now.Year()
	}
}

// CreateSemesterRequest is the payload for creating a semester.
type CreateSemesterRequest struct {
	Time string `json:"time" binding:"required,oneof=SPR SUM FAL WNT"`
	Year int    `json:"year" binding:"required,min=2000,max=2100"`
}
