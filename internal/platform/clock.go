package platform

import "time"

// SystemClock provides current UTC times.
type SystemClock struct{}

// Timestamp return current UTC timestamp in milliseconds.
func (c SystemClock) Timestamp() int64 {
	return time.Now().UTC().UnixMilli()
}

// Now return current time.
func (c SystemClock) Now() *time.Time {
	t := time.Now().UTC()
	return &t
}
