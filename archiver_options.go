package zipstore

import "errors"

const minConcurrency = 1

var (
	ErrMinConcurrency = errors.New("ERROR: concurrency must be 1 or greater")
)

type settings struct {
	concurrency     int
	clampTimestamps bool
	utf8Names       bool
}

type archiverOption func(*settings) error

func newSettings(options []archiverOption) (*settings, error) {
	s := &settings{concurrency: minConcurrency}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Concurrency sets the number of goroutines used to checksum entries before
// they are written. The archive bytes do not depend on n.
// An error is returned if n is less than 1.
func Concurrency(n int) archiverOption {
	return func(s *settings) error {
		if n < minConcurrency {
			return ErrMinConcurrency
		}

		s.concurrency = n
		return nil
	}
}

// ClampTimestamps pins dates outside 1980-2107 to the nearest representable
// DOS timestamp instead of failing with ErrInvalidTimestamp.
func ClampTimestamps() archiverOption {
	return func(s *settings) error {
		s.clampTimestamps = true
		return nil
	}
}

// UTF8Names sets general purpose flag bit 11 on entries whose names are not
// plain ASCII, so that readers decode them as UTF-8 rather than CP437.
func UTF8Names() archiverOption {
	return func(s *settings) error {
		s.utf8Names = true
		return nil
	}
}
