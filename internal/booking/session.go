// Package booking implements the reservation session: the state machine
// that carries one user from loading a room's seat grid through seat
// selection to a confirmed reservation. A session is scoped to one user,
// one room and (once chosen) one date; a new room visit starts a fresh
// session. The upstream API is the source of truth for seat status; the
// session reconciles its local optimistic state against it on every
// load and refresh.
package booking

import (
    "context"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/cinereserva/booking-gateway/internal/model"
    "github.com/cinereserva/booking-gateway/internal/seatmap"
)

// State names the phases of the reservation flow.
type State string

const (
    StateIdle        State = "IDLE"         // no load attempted yet
    StateLoading     State = "LOADING"      // upstream fetch in flight
    StateReady       State = "READY"        // grid loaded, accepting interaction
    StateSubmitting  State = "SUBMITTING"   // reservation request in flight
    StateConfirmed   State = "CONFIRMED"    // terminal: reservation accepted
    StateLoadError   State = "LOAD_ERROR"   // load failed; user may retry
    StateSubmitError State = "SUBMIT_ERROR" // submit failed; selection retained
)

// Upstream is the slice of the cinema API a session needs. The concrete
// client satisfies it; tests substitute fakes.
type Upstream interface {
    GetRoom(ctx context.Context, token string, roomID uint64) (model.Room, error)
    ListReservedSeats(ctx context.Context, token string, roomID uint64, date string) ([]model.ReservedSeat, error)
    CreateReservation(ctx context.Context, token string, req model.ReservationRequest) error
}

// Session owns all mutable booking state for one user/room pair. The
// browser drives it through one logical writer, but overlapping HTTP
// requests are possible, so every entry point takes the session lock.
// Upstream calls run outside the lock; load responses are applied only
// when their request token still matches the session's current one, so
// a stale response (user changed the date mid-flight) is discarded
// instead of clobbering newer state.
type Session struct {
    mu sync.Mutex

    api        Upstream
    token      string // upstream bearer credential, passed in explicitly
    user       model.User
    roomID     uint64
    windowDays int

    state     State
    date      string // YYYY-MM-DD; empty until a valid date is accepted
    seats     *seatmap.Model
    loadToken string   // identifies the most recent load request
    evicted   []string // selection evicted by the last authoritative refresh

    now func() time.Time // injectable clock for date-window checks
}

// NewSession creates an idle session bound to a user, credential and
// room. windowDays is the inclusive booking horizon (8 for the standard
// window).
func NewSession(api Upstream, token string, user model.User, roomID uint64, windowDays int) *Session {
    return &Session{
        api:        api,
        token:      token,
        user:       user,
        roomID:     roomID,
        windowDays: windowDays,
        state:      StateIdle,
        now:        time.Now,
    }
}

// WithClock overrides the session's clock. Tests use it to pin "today"
// for the booking-window checks.
func (s *Session) WithClock(now func() time.Time) *Session {
    s.now = now
    return s
}

// Start performs the initial load: fetch the room snapshot and, when a
// date is already held, the reserved seats for it. Allowed from Idle and
// from LoadError (user-triggered retry). On success the session is
// Ready; on failure it is LoadError and no partial seat state is kept.
func (s *Session) Start(ctx context.Context) error {
    s.mu.Lock()
    switch s.state {
    case StateIdle, StateLoadError:
    default:
        s.mu.Unlock()
        return ErrNotReady
    }
    s.state = StateLoading
    tok := uuid.NewString()
    s.loadToken = tok
    date := s.date
    s.mu.Unlock()

    room, err := s.api.GetRoom(ctx, s.token, s.roomID)
    var reserved []model.ReservedSeat
    if err == nil && date != "" {
        reserved, err = s.api.ListReservedSeats(ctx, s.token, s.roomID, date)
    }

    s.mu.Lock()
    defer s.mu.Unlock()
    if s.loadToken != tok {
        // A newer load superseded this one; its outcome is irrelevant.
        return nil
    }
    if err != nil {
        s.state = StateLoadError
        s.seats = nil
        return err
    }
    s.seats = seatmap.Build(room, reserved)
    s.evicted = nil
    s.state = StateReady
    return nil
}

// SetDate validates and applies a new reservation date. An invalid or
// out-of-window candidate changes nothing: the previous date and all
// fetched seat state stay put and ErrInvalidDate is returned. A valid
// candidate discards the current selection, re-fetches the reserved
// seats for the new date and treats the response as authoritative.
//
// A date change is also allowed while a previous date's fetch is still
// in flight: picking a date twice quickly must not wedge the session.
// The superseded fetch is recognized by its stale request token and its
// response is dropped on arrival.
func (s *Session) SetDate(ctx context.Context, candidate string) error {
    cand, err := ParseDate(candidate)
    if err != nil {
        return ErrInvalidDate
    }
    s.mu.Lock()
    switch s.state {
    case StateReady, StateSubmitError:
    case StateLoading:
        if s.seats == nil {
            // Initial load not finished; there is no grid to rescope yet.
            s.mu.Unlock()
            return ErrNotReady
        }
    default:
        s.mu.Unlock()
        return ErrNotReady
    }
    if !IsValidDate(cand, s.now(), s.windowDays) {
        s.mu.Unlock()
        return ErrInvalidDate
    }
    s.date = candidate
    s.seats.ClearSelection()
    s.state = StateLoading
    tok := uuid.NewString()
    s.loadToken = tok
    s.mu.Unlock()

    reserved, err := s.api.ListReservedSeats(ctx, s.token, s.roomID, candidate)

    s.mu.Lock()
    defer s.mu.Unlock()
    if s.loadToken != tok {
        return nil
    }
    if err != nil {
        s.state = StateLoadError
        return err
    }
    s.evicted = s.seats.Refresh(reserved)
    s.state = StateReady
    return nil
}

// Toggle flips a seat in or out of the selection. Reserved seats are a
// silent no-op by policy, not a failure.
func (s *Session) Toggle(seatID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.state != StateReady && s.state != StateSubmitError {
        return ErrNotReady
    }
    s.seats.Toggle(seatID)
    return nil
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.state != StateReady && s.state != StateSubmitError {
        return ErrNotReady
    }
    s.seats.ClearSelection()
    return nil
}

// Confirm submits the full selection atomically. Preconditions: a valid
// date is held and the selection is non-empty; violating either returns
// a validation error and leaves the session in Ready. On upstream
// failure the session moves to SubmitError with the selection retained,
// and calling Confirm again retries. On success the submitted seats are
// marked reserved, the selection is cleared, the session becomes
// Confirmed (terminal) and the returned summary is handed to the caller
// to stage for the receipt view.
func (s *Session) Confirm(ctx context.Context) (model.ReservationSummary, error) {
    s.mu.Lock()
    if s.state != StateReady && s.state != StateSubmitError {
        s.mu.Unlock()
        return model.ReservationSummary{}, ErrNotReady
    }
    if s.date == "" {
        s.mu.Unlock()
        return model.ReservationSummary{}, ErrNoDate
    }
    selection := s.seats.Selection()
    if len(selection) == 0 {
        s.mu.Unlock()
        return model.ReservationSummary{}, ErrEmptySelection
    }
    room := s.seats.Room()
    req := model.ReservationRequest{
        UserID:     s.user.ID,
        RoomID:     s.roomID,
        ScheduleID: room.ScheduleID,
        Date:       s.date,
        Seats:      selection,
    }
    s.state = StateSubmitting
    s.mu.Unlock()

    err := s.api.CreateReservation(ctx, s.token, req)

    s.mu.Lock()
    defer s.mu.Unlock()
    if err != nil {
        // Selection stays; the user retries by confirming again.
        s.state = StateSubmitError
        return model.ReservationSummary{}, err
    }
    s.seats.MarkReserved(selection)
    s.seats.ClearSelection()
    s.state = StateConfirmed
    sum := model.ReservationSummary{
        MovieTitle: room.MovieName,
        RoomName:   room.Name,
        Date:       s.date,
        Hour:       room.Hour,
        Seats:      selection,
        Total:      room.Price * float64(len(selection)),
    }
    return sum, nil
}

// View is an immutable snapshot of the session for rendering.
type View struct {
    State      State          `json:"state"`
    Room       model.Room     `json:"room"`
    Date       string         `json:"date,omitempty"`
    SeatRows   [][]model.Seat `json:"seat_rows,omitempty"`
    Selection  []string       `json:"selection"`
    Total      float64        `json:"total"`
    Available  int            `json:"available_seats"`
    TotalSeats uint32         `json:"total_seats"`
    Evicted    []string       `json:"evicted,omitempty"`
}

// Snapshot renders the current state for handlers. Before the first
// successful load only the state field is meaningful.
func (s *Session) Snapshot() View {
    s.mu.Lock()
    defer s.mu.Unlock()
    v := View{State: s.state, Date: s.date, Selection: []string{}}
    if s.seats == nil {
        return v
    }
    room := s.seats.Room()
    v.Room = room
    v.SeatRows = s.seats.SeatsByRow()
    v.Selection = s.seats.Selection()
    v.Total = s.seats.Total()
    v.Available = s.seats.AvailableSeats()
    v.TotalSeats = room.TotalSeats()
    v.Evicted = s.evicted
    return v
}

// State returns the current machine state.
func (s *Session) State() State {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.state
}
