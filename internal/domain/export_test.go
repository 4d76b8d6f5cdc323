package domain

import "time"

// SetTimeNow overrides the package clock for tests and returns a restore
// function. Only test code can reach this — the file is excluded from
// regular builds.
func SetTimeNow(fn func() time.Time) (restore func()) {
	prev := timeNow
	timeNow = fn
	return func() { timeNow = prev }
}
