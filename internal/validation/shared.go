package validation

import (
	"sort"
	"strings"
)

// Error collects per-field messages of a rejected request. Handlers return
// Fields as the error details.
type Error struct {
	Fields map[string]string
}

// Error lists the fields in name order so messages are stable.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = name + ": " + e.Fields[name]
	}
	return strings.Join(msgs, "; ")
}

// orNil returns nil when no field failed, so callers can return it directly.
func orNil(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}
