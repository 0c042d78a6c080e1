package usecase

import "errors"

var (
	// ErrEntryNotFound is returned when an entry does not exist or belongs to
	// another user.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryTooLong is returned when the entry text exceeds MaxEntryRunes.
	ErrEntryTooLong = errors.New("entry text exceeds maximum length")
)
