package domain

import "time"

// WaitlistEntry represents one viewer queued for a currently-booked slot
// Positions are contiguous from 0 in strict arrival order; promotion is FIFO
// on Position, RequestedAt is kept for display and never re-sorts the queue
type WaitlistEntry struct {
	ID           int64
	TimeslotID   int64
	ViewerUserID int64
	Position     int
	RequestedAt  time.Time
}
