package handler

import (
    "context"  // timeouts for upstream calls
    "log"      // best-effort event publish logging
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "time"     // event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/cinereserva/booking-gateway/internal/booking"
    "github.com/cinereserva/booking-gateway/internal/client"
    "github.com/cinereserva/booking-gateway/internal/config"
    "github.com/cinereserva/booking-gateway/internal/model"
    "github.com/cinereserva/booking-gateway/internal/queue"
    "github.com/cinereserva/booking-gateway/internal/store"
)

// BookingHandler drives the reservation sessions. Each route resolves
// the caller's session for the addressed room from the registry and
// delegates to the state machine; the handler's job is translating
// machine errors into the HTTP error taxonomy: validation failures are
// 422 (transient, user corrects and retries), load failures are 502
// (blocking error view with manual retry), an unknown or malformed room
// is 404 (terminal for the route, with a path back to the listing).
type BookingHandler struct {
    Cfg      config.Config
    API      *client.API
    Bookings *store.BookingRegistry
}

func NewBookingHandler(cfg config.Config, api *client.API, bookings *store.BookingRegistry) *BookingHandler {
    if api == nil || bookings == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Cfg: cfg, API: api, Bookings: bookings}
}

// roomParam parses and validates the :id path parameter. Zero and
// non-numeric values are malformed room identifiers.
func roomParam(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// invalidRoom renders the terminal error view for a bad room route.
func invalidRoom(c echo.Context) error {
    return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid room", "back": "/v1/rooms"})
}

// StartBooking handles POST /v1/rooms/:id/booking. Entering a room
// route starts the load. A fresh session is created unless the existing
// one sits in LoadError, in which case the same session retries so a
// previously accepted date survives the retry. A Confirmed session is
// never resumed: re-entering the room after a confirmation starts over.
func (h *BookingHandler) StartBooking(c echo.Context) error {
    roomID, ok := roomParam(c)
    if !ok {
        return invalidRoom(c)
    }
    sid, err := sessionID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    user, err := currentUser(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    token, err := upstreamToken(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    s, exists := h.Bookings.Get(sid, roomID)
    if !exists || s.State() != booking.StateLoadError {
        s = booking.NewSession(h.API, token, user, roomID, h.Cfg.BookingWindow)
        h.Bookings.Replace(sid, roomID, s)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
    defer cancel()
    if err := s.Start(ctx); err != nil {
        switch err {
        case client.ErrInvalidRoom:
            h.Bookings.Remove(sid, roomID)
            return invalidRoom(c)
        case client.ErrUnauthorized:
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session rejected upstream", "login": "/v1/auth/login"})
        default:
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load room", "retry": true})
        }
    }
    return c.JSON(http.StatusCreated, s.Snapshot())
}

// GetBooking handles GET /v1/rooms/:id/booking. Returns the current
// session view: grid by row, selection, total and state.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    s, errResp := h.session(c)
    if s == nil {
        return errResp
    }
    return c.JSON(http.StatusOK, s.Snapshot())
}

// SetDate handles PUT /v1/rooms/:id/booking/date. A valid date discards
// the selection and re-fetches reserved seats for it; an invalid date
// leaves everything as it was and surfaces a validation error.
func (h *BookingHandler) SetDate(c echo.Context) error {
    s, errResp := h.session(c)
    if s == nil {
        return errResp
    }
    var body struct {
        Date string `json:"date"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
    defer cancel()
    if err := s.SetDate(ctx, body.Date); err != nil {
        switch err {
        case booking.ErrInvalidDate:
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{
                "error": "choose a valid date within the next 8 days",
            })
        case booking.ErrNotReady:
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking session not ready"})
        default:
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load reservations", "retry": true})
        }
    }
    return c.JSON(http.StatusOK, s.Snapshot())
}

// ToggleSeat handles POST /v1/rooms/:id/booking/seats/:seatId. A
// malformed seat key is a client error; toggling a reserved seat is not
// an error at all, just a no-op reflected in the returned snapshot.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
    s, errResp := h.session(c)
    if s == nil {
        return errResp
    }
    seatID := c.Param("seatId")
    if _, _, err := model.ParseSeatID(seatID); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    if err := s.Toggle(seatID); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking session not ready"})
    }
    return c.JSON(http.StatusOK, s.Snapshot())
}

// ClearSeats handles DELETE /v1/rooms/:id/booking/seats. Empties the
// selection unconditionally.
func (h *BookingHandler) ClearSeats(c echo.Context) error {
    s, errResp := h.session(c)
    if s == nil {
        return errResp
    }
    if err := s.ClearSelection(); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking session not ready"})
    }
    return c.JSON(http.StatusOK, s.Snapshot())
}

// Confirm handles POST /v1/rooms/:id/booking/confirm. On success the
// summary is staged as the one-shot handoff for the receipt view and a
// confirmation event is published to the broker on a best-effort basis.
// On submission failure the selection is retained and the client may
// simply confirm again.
func (h *BookingHandler) Confirm(c echo.Context) error {
    s, errResp := h.session(c)
    if s == nil {
        return errResp
    }
    sid, err := sessionID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    user, _ := currentUser(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
    defer cancel()
    sum, err := s.Confirm(ctx)
    if err != nil {
        switch err {
        case booking.ErrNoDate:
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "choose a valid date first"})
        case booking.ErrEmptySelection:
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "select at least one seat"})
        case booking.ErrNotReady:
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking session not ready"})
        default:
            return c.JSON(http.StatusBadGateway, echo.Map{
                "error": "reservation submission failed, your selection was kept",
                "retry": true,
            })
        }
    }

    h.Bookings.StageSummary(sid, sum)

    // Fire-and-forget: a broker outage must not fail a confirmed booking.
    go func(ev queue.ReservationConfirmedEvent) {
        if err := queue.PublishReservationConfirmed(context.Background(), ev); err != nil {
            log.Printf("reservation.confirmed publish skipped: %v", err)
        }
    }(queue.ReservationConfirmedEvent{
        UserID:      user.ID,
        RoomID:      s.Snapshot().Room.ID,
        MovieTitle:  sum.MovieTitle,
        RoomName:    sum.RoomName,
        Date:        sum.Date,
        Hour:        sum.Hour,
        Seats:       sum.Seats,
        Total:       sum.Total,
        ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, echo.Map{
        "summary": sum,
        "resumen": "/v1/resumen",
    })
}

// session resolves the caller's booking session for the addressed room.
// When it returns nil the second value is the already-written response.
func (h *BookingHandler) session(c echo.Context) (*booking.Session, error) {
    roomID, ok := roomParam(c)
    if !ok {
        return nil, invalidRoom(c)
    }
    sid, err := sessionID(c)
    if err != nil {
        return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    s, exists := h.Bookings.Get(sid, roomID)
    if !exists {
        return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "no booking session for this room", "start": "POST /v1/rooms/:id/booking"})
    }
    return s, nil
}
