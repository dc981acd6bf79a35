package booking_test

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/cinereserva/booking-gateway/internal/booking"
    "github.com/cinereserva/booking-gateway/internal/client"
    "github.com/cinereserva/booking-gateway/internal/model"
)

// fakeUpstream is a controllable stand-in for the cinema API.
type fakeUpstream struct {
    mu          sync.Mutex
    room        model.Room
    roomErr     error
    reserved    map[string][]model.ReservedSeat // keyed by date
    reservedErr error
    submitErr   error
    submitted   []model.ReservationRequest

    blockDate string        // ListReservedSeats for this date parks on block
    block     chan struct{} // closed to release a parked fetch
    started   chan string   // receives the date of every reserved fetch
}

func (f *fakeUpstream) GetRoom(ctx context.Context, token string, roomID uint64) (model.Room, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.roomErr != nil {
        return model.Room{}, f.roomErr
    }
    return f.room, nil
}

func (f *fakeUpstream) ListReservedSeats(ctx context.Context, token string, roomID uint64, date string) ([]model.ReservedSeat, error) {
    f.mu.Lock()
    res := f.reserved[date]
    err := f.reservedErr
    started := f.started
    var blocker chan struct{}
    if f.blockDate == date {
        blocker = f.block
    }
    f.mu.Unlock()
    if started != nil {
        started <- date
    }
    if blocker != nil {
        <-blocker
    }
    return res, err
}

func (f *fakeUpstream) CreateReservation(ctx context.Context, token string, req model.ReservationRequest) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.submitErr != nil {
        return f.submitErr
    }
    f.submitted = append(f.submitted, req)
    return nil
}

func fixedClock() func() time.Time {
    return func() time.Time { return time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC) }
}

func newTestSession(f *fakeUpstream) *booking.Session {
    user := model.User{ID: 7, Email: "ana@example.com"}
    return booking.NewSession(f, "upstream-token", user, 1, 8).WithClock(fixedClock())
}

func readyFake() *fakeUpstream {
    return &fakeUpstream{
        room:     model.Room{ID: 1, Name: "Sala 1", MovieName: "Dune", NumRows: 2, NumColumns: 2, Price: 10},
        reserved: map[string][]model.ReservedSeat{},
    }
}

func TestSession_FullFlowToConfirmed(t *testing.T) {
    f := readyFake()
    s := newTestSession(f)
    ctx := context.Background()

    require.NoError(t, s.Start(ctx))
    assert.Equal(t, booking.StateReady, s.State())

    require.NoError(t, s.SetDate(ctx, "2025-09-12"))
    require.NoError(t, s.Toggle("1-1"))
    require.NoError(t, s.Toggle("1-2"))

    v := s.Snapshot()
    assert.Equal(t, 20.0, v.Total)
    assert.Equal(t, []string{"1-1", "1-2"}, v.Selection)

    sum, err := s.Confirm(ctx)
    require.NoError(t, err)
    assert.Equal(t, booking.StateConfirmed, s.State())
    assert.Equal(t, "Dune", sum.MovieTitle)
    assert.Equal(t, "Sala 1", sum.RoomName)
    assert.Equal(t, "2025-09-12", sum.Date)
    assert.Equal(t, []string{"1-1", "1-2"}, sum.Seats)
    assert.Equal(t, 20.0, sum.Total)

    // The whole selection went out in a single atomic request.
    require.Len(t, f.submitted, 1)
    assert.Equal(t, []string{"1-1", "1-2"}, f.submitted[0].Seats)
    assert.Equal(t, uint64(7), f.submitted[0].UserID)

    // Confirmed is terminal: the submitted seats are reserved, the
    // selection is gone and no further interaction is accepted.
    v = s.Snapshot()
    assert.Empty(t, v.Selection)
    assert.Equal(t, 2, v.Available)
    assert.Equal(t, booking.ErrNotReady, s.Toggle("2-1"))
    _, err = s.Confirm(ctx)
    assert.Equal(t, booking.ErrNotReady, err)
}

func TestSession_ConfirmRequiresDate(t *testing.T) {
    f := readyFake()
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    require.NoError(t, s.Toggle("1-1"))

    _, err := s.Confirm(ctx)
    assert.Equal(t, booking.ErrNoDate, err)
    assert.Equal(t, booking.StateReady, s.State())
    assert.Empty(t, f.submitted)
}

func TestSession_ConfirmRequiresSelection(t *testing.T) {
    f := readyFake()
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    require.NoError(t, s.SetDate(ctx, "2025-09-12"))

    _, err := s.Confirm(ctx)
    assert.Equal(t, booking.ErrEmptySelection, err)
    assert.Equal(t, booking.StateReady, s.State())
    assert.Empty(t, f.submitted)
}

func TestSession_SubmitFailureRetainsSelectionAndRetries(t *testing.T) {
    f := readyFake()
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    require.NoError(t, s.SetDate(ctx, "2025-09-12"))
    require.NoError(t, s.Toggle("1-1"))
    require.NoError(t, s.Toggle("2-2"))

    f.mu.Lock()
    f.submitErr = client.ErrSubmit
    f.mu.Unlock()

    _, err := s.Confirm(ctx)
    assert.Equal(t, client.ErrSubmit, err)
    assert.Equal(t, booking.StateSubmitError, s.State())
    // Selection survives so the user retries without re-picking.
    assert.Equal(t, []string{"1-1", "2-2"}, s.Snapshot().Selection)

    f.mu.Lock()
    f.submitErr = nil
    f.mu.Unlock()

    sum, err := s.Confirm(ctx)
    require.NoError(t, err)
    assert.Equal(t, []string{"1-1", "2-2"}, sum.Seats)
    assert.Equal(t, booking.StateConfirmed, s.State())
}

func TestSession_InvalidDateChangesNothing(t *testing.T) {
    f := readyFake()
    f.reserved["2025-09-12"] = []model.ReservedSeat{{Row: 2, Column: 1}}
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    require.NoError(t, s.SetDate(ctx, "2025-09-12"))
    require.NoError(t, s.Toggle("1-1"))

    // Ten days out: outside the window.
    err := s.SetDate(ctx, "2025-09-20")
    assert.Equal(t, booking.ErrInvalidDate, err)

    // Garbage input behaves the same.
    assert.Equal(t, booking.ErrInvalidDate, s.SetDate(ctx, "not-a-date"))

    // Previous date, selection and reserved data all stay put.
    v := s.Snapshot()
    assert.Equal(t, "2025-09-12", v.Date)
    assert.Equal(t, []string{"1-1"}, v.Selection)
    assert.Equal(t, 3, v.Available)
    assert.Equal(t, booking.StateReady, v.State)
}

func TestSession_NewDateClearsSelectionAndReservedData(t *testing.T) {
    f := readyFake()
    f.reserved["2025-09-12"] = []model.ReservedSeat{{Row: 2, Column: 2}}
    f.reserved["2025-09-13"] = nil
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    require.NoError(t, s.SetDate(ctx, "2025-09-12"))
    require.NoError(t, s.Toggle("1-1"))

    require.NoError(t, s.SetDate(ctx, "2025-09-13"))

    v := s.Snapshot()
    assert.Empty(t, v.Selection, "selection is scoped to the old date")
    assert.Equal(t, 4, v.Available, "old date's reserved seats must not leak")
    assert.Equal(t, "2025-09-13", v.Date)
}

func TestSession_StaleLoadResponseDiscarded(t *testing.T) {
    f := readyFake()
    f.reserved["2025-09-12"] = []model.ReservedSeat{{Row: 1, Column: 1}}
    f.reserved["2025-09-13"] = []model.ReservedSeat{{Row: 2, Column: 1}}
    f.started = make(chan string, 4)
    f.block = make(chan struct{})
    f.blockDate = "2025-09-12"

    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))

    done := make(chan error, 1)
    go func() { done <- s.SetDate(ctx, "2025-09-12") }()
    require.Equal(t, "2025-09-12", <-f.started)

    // Second date change while the first fetch is parked.
    require.NoError(t, s.SetDate(ctx, "2025-09-13"))
    require.Equal(t, "2025-09-13", <-f.started)

    // Release the stale fetch; its response must be dropped.
    close(f.block)
    require.NoError(t, <-done)

    v := s.Snapshot()
    assert.Equal(t, "2025-09-13", v.Date)
    assert.Equal(t, booking.StateReady, v.State)
    s21, _ := findSeat(v, "2-1")
    assert.Equal(t, model.SeatReserved, s21.Status, "current date's data applied")
    s11, _ := findSeat(v, "1-1")
    assert.Equal(t, model.SeatAvailable, s11.Status, "stale date's data discarded")
}

func TestSession_LoadErrorThenRetry(t *testing.T) {
    f := readyFake()
    f.roomErr = client.ErrNetwork
    s := newTestSession(f)
    ctx := context.Background()

    err := s.Start(ctx)
    assert.Equal(t, client.ErrNetwork, err)
    assert.Equal(t, booking.StateLoadError, s.State())
    assert.Nil(t, s.Snapshot().SeatRows, "no partial state after a failed load")

    // Interaction is rejected until a retry succeeds.
    assert.Equal(t, booking.ErrNotReady, s.Toggle("1-1"))

    f.mu.Lock()
    f.roomErr = nil
    f.mu.Unlock()
    require.NoError(t, s.Start(ctx))
    assert.Equal(t, booking.StateReady, s.State())
}

func TestSession_StartOnlyFromIdleOrLoadError(t *testing.T) {
    f := readyFake()
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    assert.Equal(t, booking.ErrNotReady, s.Start(ctx))
}

func TestSession_ReservedSeatToggleIgnored(t *testing.T) {
    f := readyFake()
    f.reserved["2025-09-12"] = []model.ReservedSeat{{Row: 2, Column: 1}}
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))
    require.NoError(t, s.SetDate(ctx, "2025-09-12"))

    require.NoError(t, s.Toggle("2-1"))
    assert.Empty(t, s.Snapshot().Selection)
}

func TestSession_LoadFailureOnDateChange(t *testing.T) {
    f := readyFake()
    s := newTestSession(f)
    ctx := context.Background()
    require.NoError(t, s.Start(ctx))

    f.mu.Lock()
    f.reservedErr = errors.New("boom")
    f.mu.Unlock()

    err := s.SetDate(ctx, "2025-09-12")
    assert.Error(t, err)
    assert.Equal(t, booking.StateLoadError, s.State())
}

func findSeat(v booking.View, id string) (model.Seat, bool) {
    for _, row := range v.SeatRows {
        for _, s := range row {
            if s.ID() == id {
                return s, true
            }
        }
    }
    return model.Seat{}, false
}
