package errors

import "time"

// layout of every response timestamp: UTC, second precision, no offset
const TimestampLayout = "2006-01-02T15:04:05"

// formats t in UTC using TimestampLayout
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// returns the current UTC time formatted with TimestampLayout
func Now() string {
	return Timestamp(time.Now())
}

// assembles Response values; the zero value uses the system clock
type Builder struct {
	Clock func() time.Time
}

func (b Builder) now() string {
	if b.Clock == nil {
		return Now()
	}

	return Timestamp(b.Clock())
}

// builds a response stamped with a fresh timestamp. Method and path are copied as
// given: a missing method stays empty and encodes as null, a missing path becomes "".
// An empty error list is replaced by fallback so a response never goes out without errors.
func (b Builder) Build(status Status, req Request, errs []Record, fallback string) Response {
	records := NewRecordSet(errs...).Records()

	if len(records) == 0 {
		if fallback == "" {
			fallback = MessageUnexpected
		}

		records = []Record{{Message: fallback}}
	}

	return Response{
		Method:     req.Method,
		RequestURI: req.Path,
		StatusCode: status.Name(),
		Timestamp:  b.now(),
		Errors:     records,
	}
}
