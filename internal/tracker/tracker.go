package tracker

import "time"

// AccessTracker records when a mask file was last served, so the retention
// sweep can avoid deleting files a client just requested.
type AccessTracker interface {
	Update(name string)
	GetLastAccessed(name string) (time.Time, bool)
	Remove(name string)
}
