package model

// ReservationRequest is the payload submitted to the upstream API when
// the user confirms a booking. It is built once at confirm time from
// the session's current state and sent exactly once per confirm
// invocation; a failed submission is never retried automatically.
//
// Fields:
//  UserID     – upstream identifier of the booking user.
//  RoomID     – room being booked.
//  ScheduleID – showtime reference when the room carries one; zero
//               otherwise.
//  Date       – reservation date in YYYY-MM-DD form.
//  Seats      – the full selection as composite "row-column" keys. The
//               whole set is submitted atomically in a single request.
type ReservationRequest struct {
    UserID     uint64   `json:"user_id"`
    RoomID     uint64   `json:"room_id"`
    ScheduleID uint64   `json:"schedule_id,omitempty"`
    Date       string   `json:"date"`
    Seats      []string `json:"seats"`
}

// ReservedSeat is one already-booked (row, column) pair as reported by
// the upstream reservation listing for a room/date.
type ReservedSeat struct {
    Row    uint32 `json:"seat_row"`
    Column uint32 `json:"seat_column"`
}

// ReservationSummary is the projection handed to the receipt renderer
// after a successful confirmation. It is display-only: it never round
// trips to the upstream service and is not persisted anywhere.
//
// Fields:
//  MovieTitle – movie shown in the booked room.
//  RoomName   – display name of the room.
//  Date       – reservation date (YYYY-MM-DD).
//  Hour       – showtime (HH:MM:SS), possibly empty.
//  Seats      – booked seat keys in selection order.
//  Total      – total price paid: seat price times seat count.
type ReservationSummary struct {
    MovieTitle string   `json:"movie_title"`
    RoomName   string   `json:"room_name"`
    Date       string   `json:"date"`
    Hour       string   `json:"hour,omitempty"`
    Seats      []string `json:"seats"`
    Total      float64  `json:"total"`
}
