package editor

import "time"

func mustDate() time.Time {
	return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
}
