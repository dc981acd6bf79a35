// Package seatmap holds the in-memory seat grid for one room/date pair:
// the room snapshot taken at load time, the per-seat status derived from
// the upstream reservation list, and the user's current selection. The
// model is not safe for concurrent use on its own; the owning booking
// session serializes access.
package seatmap

import (
    "sort"

    "github.com/cinereserva/booking-gateway/internal/model"
)

// Model is the seat grid for a single room and date.
type Model struct {
    room     model.Room
    seats    map[string]*model.Seat
    order    []string            // selection in pick order
    selected map[string]struct{} // selection membership
}

// Build constructs a fully populated model from a room snapshot and the
// reserved (row, column) pairs reported for the session's date. Every
// grid cell is materialized up front; reserved pairs outside the grid
// are ignored. Build is the only constructor, which keeps loads
// all-or-nothing: callers that fail to fetch either input never get a
// partially filled model.
func Build(room model.Room, reserved []model.ReservedSeat) *Model {
    m := &Model{
        room:     room,
        seats:    make(map[string]*model.Seat, room.TotalSeats()),
        selected: make(map[string]struct{}),
    }
    for r := uint32(1); r <= room.NumRows; r++ {
        for c := uint32(1); c <= room.NumColumns; c++ {
            s := &model.Seat{Row: r, Column: c, Status: model.SeatAvailable}
            m.seats[s.ID()] = s
        }
    }
    m.applyReserved(reserved)
    return m
}

// Room returns the room snapshot taken at load time. The price on this
// copy is what Total uses, so the figure shown to a deliberating user
// never shifts under them.
func (m *Model) Room() model.Room {
    return m.room
}

// Seat looks up a seat by its composite key.
func (m *Model) Seat(id string) (model.Seat, bool) {
    s, ok := m.seats[id]
    if !ok {
        return model.Seat{}, false
    }
    return *s, true
}

// Toggle flips membership of the seat in the selection. Toggling a
// reserved or unknown seat is a silent no-op: reserved seats are simply
// not togglable. The return value reports whether the seat is selected
// after the call.
func (m *Model) Toggle(id string) bool {
    s, ok := m.seats[id]
    if !ok || s.Status == model.SeatReserved {
        _, in := m.selected[id]
        return in
    }
    if _, in := m.selected[id]; in {
        m.unselect(id)
        return false
    }
    m.selected[id] = struct{}{}
    m.order = append(m.order, id)
    return true
}

// ClearSelection empties the selection unconditionally.
func (m *Model) ClearSelection() {
    m.selected = make(map[string]struct{})
    m.order = nil
}

// Selection returns the selected seat keys in pick order.
func (m *Model) Selection() []string {
    out := make([]string, len(m.order))
    copy(out, m.order)
    return out
}

// SelectionSize returns the number of selected seats.
func (m *Model) SelectionSize() int {
    return len(m.selected)
}

// Total computes the price of the current selection from the snapshot
// price: price per seat times selection size. Zero when nothing is
// selected.
func (m *Model) Total() float64 {
    return m.room.Price * float64(len(m.selected))
}

// AvailableSeats counts seats not currently reserved.
func (m *Model) AvailableSeats() int {
    n := 0
    for _, s := range m.seats {
        if s.Status == model.SeatAvailable {
            n++
        }
    }
    return n
}

// SeatsByRow groups the grid by row for rendering. Rows and columns are
// both in ascending numeric order.
func (m *Model) SeatsByRow() [][]model.Seat {
    rows := make([][]model.Seat, m.room.NumRows)
    for i := range rows {
        rows[i] = make([]model.Seat, 0, m.room.NumColumns)
    }
    for _, s := range m.seats {
        rows[s.Row-1] = append(rows[s.Row-1], *s)
    }
    for i := range rows {
        sort.Slice(rows[i], func(a, b int) bool { return rows[i][a].Column < rows[i][b].Column })
    }
    return rows
}

// Refresh replaces the reserved-seat data with a fresh authoritative
// list from upstream. Any selection member the refresh marks reserved
// is evicted; the evicted keys are returned so the caller can tell the
// user what they lost.
func (m *Model) Refresh(reserved []model.ReservedSeat) []string {
    for _, s := range m.seats {
        s.Status = model.SeatAvailable
    }
    m.applyReserved(reserved)
    var evicted []string
    for _, id := range m.order {
        if m.seats[id].Status == model.SeatReserved {
            evicted = append(evicted, id)
        }
    }
    for _, id := range evicted {
        m.unselect(id)
    }
    return evicted
}

// MarkReserved marks the given seats reserved in place. It is used
// after a successful submission so the grid reflects the user's own
// booking without waiting for a re-fetch.
func (m *Model) MarkReserved(ids []string) {
    for _, id := range ids {
        if s, ok := m.seats[id]; ok {
            s.Status = model.SeatReserved
        }
    }
}

func (m *Model) applyReserved(reserved []model.ReservedSeat) {
    for _, r := range reserved {
        if s, ok := m.seats[model.SeatID(r.Row, r.Column)]; ok {
            s.Status = model.SeatReserved
        }
    }
}

func (m *Model) unselect(id string) {
    delete(m.selected, id)
    for i, v := range m.order {
        if v == id {
            m.order = append(m.order[:i], m.order[i+1:]...)
            break
        }
    }
}
