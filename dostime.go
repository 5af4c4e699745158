package zipstore

import (
	"time"

	"github.com/pkg/errors"
)

const (
	dosEpochYear = 1980
	dosMaxYear   = dosEpochYear + 127
)

// dosDateTime packs the wall clock fields of t into MS-DOS time and date
// words. The location of t is used as-is. Seconds have 2s resolution.
func dosDateTime(t time.Time, clamp bool) (dosTime, dosDate uint16, err error) {
	switch year := t.Year(); {
	case year < dosEpochYear:
		if !clamp {
			return 0, 0, errors.Wrapf(ErrInvalidTimestamp, "ERROR: year %d", year)
		}
		t = time.Date(dosEpochYear, time.January, 1, 0, 0, 0, 0, t.Location())
	case year > dosMaxYear:
		if !clamp {
			return 0, 0, errors.Wrapf(ErrInvalidTimestamp, "ERROR: year %d", year)
		}
		t = time.Date(dosMaxYear, time.December, 31, 23, 59, 58, 0, t.Location())
	}

	dosTime = uint16(t.Hour()<<11 | t.Minute()<<5 | t.Second()>>1)
	dosDate = uint16((t.Year()-dosEpochYear)<<9 | int(t.Month())<<5 | t.Day())
	return dosTime, dosDate, nil
}
