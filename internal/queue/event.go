// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when the gateway successfully
// submits a reservation upstream. It carries enough for downstream
// consumers (notifications, analytics) to act without calling back into
// the cinema API.
type ReservationConfirmedEvent struct {
    UserID      uint64   `json:"user_id"`
    RoomID      uint64   `json:"room_id"`
    MovieTitle  string   `json:"movie_title"`
    RoomName    string   `json:"room_name"`
    Date        string   `json:"date"`
    Hour        string   `json:"hour,omitempty"`
    Seats       []string `json:"seats"`
    Total       float64  `json:"total"`
    ConfirmedAt string   `json:"confirmed_at"`
}
