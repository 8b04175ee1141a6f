package service

import (
	"github.com/google/uuid"
)

// newID returns a fresh row identifier.
func newID() string {
	return uuid.New().String()
}

// patch overwrites *dst with *src when src is set. Update requests use nil
// pointers for fields the client did not send.
func patch[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
