package model

import (
    "fmt"
    "strconv"
    "strings"
)

// SeatStatus enumerates the two states a seat can be in for a given
// room and date. The upstream reservation list is the source of truth;
// the gateway only marks seats reserved optimistically after its own
// successful submission.
type SeatStatus string

const (
    SeatAvailable SeatStatus = "AVAILABLE"
    SeatReserved  SeatStatus = "RESERVED"
)

// Seat is one bookable cell of a room's grid. Seats have no upstream
// identifier of their own: the identity is the (row, column) pair,
// rendered as the composite key "row-column" (1-based, e.g. "2-5").
//
// Fields:
//  Row    – 1-based row index.
//  Column – 1-based column index.
//  Status – AVAILABLE or RESERVED for the session's current date.
type Seat struct {
    Row    uint32     `json:"row"`
    Column uint32     `json:"column"`
    Status SeatStatus `json:"status"`
}

// ID returns the composite "row-column" key for the seat.
func (s Seat) ID() string {
    return SeatID(s.Row, s.Column)
}

// SeatID builds the composite key for a (row, column) pair. The format
// matches the upstream reservation payloads and is what clients echo
// back when toggling seats.
func SeatID(row, col uint32) string {
    return fmt.Sprintf("%d-%d", row, col)
}

// ParseSeatID splits a composite "row-column" key back into its parts.
// Both components must be positive integers; anything else is rejected
// so malformed client input never reaches the seat grid.
func ParseSeatID(id string) (row, col uint32, err error) {
    parts := strings.SplitN(id, "-", 2)
    if len(parts) != 2 {
        return 0, 0, fmt.Errorf("invalid seat id %q", id)
    }
    r, err := strconv.ParseUint(parts[0], 10, 32)
    if err != nil || r == 0 {
        return 0, 0, fmt.Errorf("invalid seat row in %q", id)
    }
    c, err := strconv.ParseUint(parts[1], 10, 32)
    if err != nil || c == 0 {
        return 0, 0, fmt.Errorf("invalid seat column in %q", id)
    }
    return uint32(r), uint32(c), nil
}
