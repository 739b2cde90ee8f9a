package model

import (
	"encoding/json"
	"fmt"
)

// MinuteOfDay is a wall-clock time expressed as minutes since midnight.
// It marshals to and from "HH:MM" in JSON and is stored as a smallint.
type MinuteOfDay int16

// ParseMinuteOfDay parses an "HH:MM" string.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

// String formats the time as "HH:MM".
func (t MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON implements json.Marshaler.
func (t MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinuteOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
