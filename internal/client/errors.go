// Package client wraps the external cinema API. Every call takes the
// upstream bearer credential explicitly; the client holds no ambient
// authentication state. Sentinel errors let handlers distinguish the
// failure classes the booking flow cares about: transport failures,
// bad room identifiers, rejected credentials and rejected submissions.
package client

import "errors"

// ErrNetwork is returned when the upstream API cannot be reached or
// responds with a server-side failure. Handlers should treat it as
// recoverable via a user-triggered retry.
var ErrNetwork = errors.New("cinema api unreachable")

// ErrInvalidRoom is returned when a room identifier is malformed or
// unknown upstream. Handlers should translate this into a terminal
// error view for the route with a path back to the room listing.
var ErrInvalidRoom = errors.New("invalid room")

// ErrUnauthorized is returned when the upstream API rejects the bearer
// credential. Handlers should end the gateway session and send the
// client back to login.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSubmit is returned when a reservation submission is rejected or
// lost. The caller keeps its selection so the user can retry without
// re-picking seats.
var ErrSubmit = errors.New("reservation submission failed")
