// Package gid reads the current goroutine's ID.
package gid

import "runtime"

// Current returns the calling goroutine's ID, parsed from the first line of
// its stack trace ("goroutine <id> [...]").
func Current() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}
