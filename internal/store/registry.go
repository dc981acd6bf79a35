package store

import (
    "strconv"
    "sync"

    "github.com/cinereserva/booking-gateway/internal/booking"
    "github.com/cinereserva/booking-gateway/internal/model"
)

// BookingRegistry tracks the live reservation sessions per gateway
// session and room, plus the summary handoffs produced by confirmed
// reservations. The staged summary is one-shot: the receipt view
// consumes it exactly once, mirroring an in-memory navigation payload.
// The last confirmed summary is kept separately so the QR image and
// ticket download remain reachable after the receipt has rendered.
type BookingRegistry struct {
    mu       sync.Mutex
    sessions map[string]*booking.Session
    staged   map[string]model.ReservationSummary
    last     map[string]model.ReservationSummary
}

// NewBookingRegistry builds an empty registry.
func NewBookingRegistry() *BookingRegistry {
    return &BookingRegistry{
        sessions: make(map[string]*booking.Session),
        staged:   make(map[string]model.ReservationSummary),
        last:     make(map[string]model.ReservationSummary),
    }
}

func bookingKey(sid string, roomID uint64) string {
    return sid + ":" + strconv.FormatUint(roomID, 10)
}

// Replace installs a fresh session for (gateway session, room),
// discarding any previous one. Every room visit starts clean; a
// Confirmed session is never reused.
func (r *BookingRegistry) Replace(sid string, roomID uint64, s *booking.Session) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.sessions[bookingKey(sid, roomID)] = s
}

// Get returns the live session for (gateway session, room), if any.
func (r *BookingRegistry) Get(sid string, roomID uint64) (*booking.Session, bool) {
    r.mu.Lock()
    defer r.mu.Unlock()
    s, ok := r.sessions[bookingKey(sid, roomID)]
    return s, ok
}

// Remove drops the session for (gateway session, room).
func (r *BookingRegistry) Remove(sid string, roomID uint64) {
    r.mu.Lock()
    defer r.mu.Unlock()
    delete(r.sessions, bookingKey(sid, roomID))
}

// StageSummary records a confirmed reservation's summary for the
// gateway session: once as the pending one-shot handoff and once as the
// durable "last confirmed" copy.
func (r *BookingRegistry) StageSummary(sid string, sum model.ReservationSummary) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.staged[sid] = sum
    r.last[sid] = sum
}

// TakeStaged consumes the pending handoff. False means nothing was
// staged (or it was already consumed) and the caller should redirect to
// the room listing instead of rendering an empty receipt.
func (r *BookingRegistry) TakeStaged(sid string) (model.ReservationSummary, bool) {
    r.mu.Lock()
    defer r.mu.Unlock()
    sum, ok := r.staged[sid]
    if ok {
        delete(r.staged, sid)
    }
    return sum, ok
}

// LastSummary returns the most recently confirmed summary for the
// gateway session without consuming anything.
func (r *BookingRegistry) LastSummary(sid string) (model.ReservationSummary, bool) {
    r.mu.Lock()
    defer r.mu.Unlock()
    sum, ok := r.last[sid]
    return sum, ok
}

// Clear drops all booking state for a gateway session (logout).
func (r *BookingRegistry) Clear(sid string) {
    r.mu.Lock()
    defer r.mu.Unlock()
    for k := range r.sessions {
        if len(k) > len(sid) && k[:len(sid)] == sid && k[len(sid)] == ':' {
            delete(r.sessions, k)
        }
    }
    delete(r.staged, sid)
    delete(r.last, sid)
}
