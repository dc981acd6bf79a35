package handler_test

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/cinereserva/booking-gateway/internal/handler"
    "github.com/cinereserva/booking-gateway/internal/middleware"
    "github.com/cinereserva/booking-gateway/internal/model"
    "github.com/cinereserva/booking-gateway/internal/store"
)

func summaryCtx(t *testing.T, sid string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/resumen", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if sid != "" {
        c.Set(middleware.CtxSessionID, sid)
    }
    return c, rec
}

func confirmedSummary() model.ReservationSummary {
    return model.ReservationSummary{
        MovieTitle: "Dune",
        RoomName:   "Sala 1",
        Date:       "2025-09-12",
        Hour:       "19:30:00",
        Seats:      []string{"1-1", "1-2"},
        Total:      20,
    }
}

func TestGetSummary_NoHandoffRedirectsToRooms(t *testing.T) {
    h := handler.NewSummaryHandler(store.NewBookingRegistry())
    c, rec := summaryCtx(t, "sid-a")

    require.NoError(t, h.GetSummary(c))
    assert.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, "/v1/rooms", rec.Header().Get(echo.HeaderLocation))
}

func TestGetSummary_RendersOnceThenRedirects(t *testing.T) {
    bookings := store.NewBookingRegistry()
    bookings.StageSummary("sid-a", confirmedSummary())
    h := handler.NewSummaryHandler(bookings)

    c, rec := summaryCtx(t, "sid-a")
    require.NoError(t, h.GetSummary(c))
    require.Equal(t, http.StatusOK, rec.Code)

    var body map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    assert.Equal(t, "viernes, 12 de septiembre de 2025", body["fecha"])
    assert.Equal(t, "07:30 p. m.", body["horario"])
    assert.Contains(t, body["qr"], "película")

    // The handoff is consumed; a reload goes back to the listing.
    c, rec = summaryCtx(t, "sid-a")
    require.NoError(t, h.GetSummary(c))
    assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestGetSummary_MissingSessionIsUnauthorized(t *testing.T) {
    h := handler.NewSummaryHandler(store.NewBookingRegistry())
    c, rec := summaryCtx(t, "")

    require.NoError(t, h.GetSummary(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetQR_WorksAfterHandoffConsumed(t *testing.T) {
    bookings := store.NewBookingRegistry()
    bookings.StageSummary("sid-a", confirmedSummary())
    bookings.TakeStaged("sid-a") // receipt already rendered

    h := handler.NewSummaryHandler(bookings)
    c, rec := summaryCtx(t, "sid-a")

    require.NoError(t, h.GetQR(c))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
    assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "reserva-Dune.png")
    assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

func TestGetTicket_NoConfirmationRedirects(t *testing.T) {
    h := handler.NewSummaryHandler(store.NewBookingRegistry())
    c, rec := summaryCtx(t, "sid-a")

    require.NoError(t, h.GetTicket(c))
    assert.Equal(t, http.StatusSeeOther, rec.Code)
}
