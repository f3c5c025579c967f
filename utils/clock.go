package utils

import (
	"fmt"
	"time"
)

// Clock abstracts wall-clock reads so sampling loops can be driven by a
// fake clock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now. Its readings carry the monotonic component,
// so differences between them never go backwards.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FormatElapsed renders a duration as mm:ss.s for status lines.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%04.1f", m, s)
}
