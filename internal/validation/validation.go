package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
	ErrInvalidDate = fmt.Errorf("invalid date")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format and
// returns it in UTC.
func ParseTime(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD or RFC3339", ErrInvalidDate, str)
		}
	}
	return t.UTC(), nil
}

// checkDate records a field error for a missing or malformed date.
func checkDate(errors map[string]string, field, value string) {
	if value == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := ParseTime(value); err != nil {
		errors[field] = err.Error()
	}
}

func checkName(errors map[string]string, field, value string, maxLen int) {
	switch {
	case value == "":
		errors[field] = field + " is required"
	case len(value) > maxLen:
		errors[field] = fmt.Sprintf("%s must be %d characters or less", field, maxLen)
	}
}
