package booking

import "errors"

// ErrInvalidDate is returned when a candidate date falls outside the
// booking window or cannot be parsed. The session keeps its previous
// date (or none) and all fetched seat state; nothing is cleared.
var ErrInvalidDate = errors.New("date outside the booking window")

// ErrNoDate is returned by Confirm when no valid date has been chosen.
var ErrNoDate = errors.New("no date selected")

// ErrEmptySelection is returned by Confirm when no seats are selected.
var ErrEmptySelection = errors.New("no seats selected")

// ErrNotReady is returned when an operation is attempted in a state
// that does not allow it, e.g. toggling seats before a load finished
// or confirming a session that already confirmed.
var ErrNotReady = errors.New("session not ready")
