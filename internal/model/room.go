package model

// Room represents a screening room as served by the upstream cinema API.
// A room shows exactly one movie and has a fixed rectangular seat grid.
// Rooms are owned by the upstream service; the gateway treats them as
// immutable for the lifetime of a booking session and caches the copy
// returned at load time so derived values (seat count, totals) stay
// stable while the user is deliberating.
//
// Fields:
//  ID         – upstream room identifier.
//  Name       – display name of the room.
//  MovieName  – title of the movie currently showing.
//  NumRows    – number of seat rows in the grid.
//  NumColumns – number of seats per row.
//  Price      – price per seat; non-negative decimal.
//  Hour       – optional showtime (HH:MM:SS); empty when the upstream
//               room carries no schedule.
//  ScheduleID – optional upstream showtime identifier, forwarded on
//               reservation submission when present.
type Room struct {
    ID         uint64  `json:"id"`          // rooms.id upstream
    Name       string  `json:"name"`        // display name
    MovieName  string  `json:"movie_name"`  // movie title
    NumRows    uint32  `json:"num_rows"`    // grid height
    NumColumns uint32  `json:"num_columns"` // grid width
    Price      float64 `json:"price"`       // price per seat
    Hour       string  `json:"hour,omitempty"`
    ScheduleID uint64  `json:"schedule_id,omitempty"`
}

// TotalSeats returns the capacity of the room's grid.
func (r Room) TotalSeats() uint32 {
    return r.NumRows * r.NumColumns
}
