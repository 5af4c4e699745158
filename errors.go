package zipstore

import "github.com/pkg/errors"

var (
	ErrInvalidTimestamp = errors.New("ERROR: timestamp is outside the DOS date range 1980-2107")
	ErrTooManyEntries   = errors.New("ERROR: archive cannot hold more than 65535 entries")
	ErrArchiveTooLarge  = errors.New("ERROR: archive exceeds 4 GiB")
	ErrInvalidName      = errors.New("ERROR: entry name is not a valid UTF-8 string of at most 65535 bytes")
	ErrFinalized        = errors.New("ERROR: archive has already been finalized")
)
