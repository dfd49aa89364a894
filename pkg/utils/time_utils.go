package utils

import "time"

// Clock returns the current time. Services hold one so tests can move time.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }
