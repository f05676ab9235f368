package services

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate converts an optional "YYYY-MM-DD" string to a midnight-UTC time.
// nil and "" both mean "not set".
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}
