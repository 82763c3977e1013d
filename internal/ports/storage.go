package ports

import "time"

// Storage defines the key-value backend used to persist the document blob
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(key, value string) error
}

// Clock supplies the current time for history timestamps
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock with time.Now
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}
