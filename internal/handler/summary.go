package handler

import (
    "fmt"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/cinereserva/booking-gateway/internal/store"
    "github.com/cinereserva/booking-gateway/internal/summary"
)

// SummaryHandler renders the receipt for a confirmed reservation. The
// view consumes a one-shot handoff staged at confirm time; landing here
// without one (deep link, reload after consuming it) redirects to the
// room listing instead of rendering an empty receipt. The QR image and
// ticket download use the last confirmed summary, which survives the
// handoff so the buttons on an already-rendered receipt keep working.
type SummaryHandler struct {
    Bookings *store.BookingRegistry
}

func NewSummaryHandler(bookings *store.BookingRegistry) *SummaryHandler {
    return &SummaryHandler{Bookings: bookings}
}

// GetSummary handles GET /v1/resumen.
func (h *SummaryHandler) GetSummary(c echo.Context) error {
    sid, err := sessionID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    sum, ok := h.Bookings.TakeStaged(sid)
    if !ok {
        return c.Redirect(http.StatusSeeOther, "/v1/rooms")
    }
    payload, err := summary.Encode(sum)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to encode receipt"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "summary": sum,
        "fecha":   summary.FormatDate(sum.Date),
        "horario": summary.FormatTime(sum.Hour),
        "qr":      string(payload),
        "links": echo.Map{
            "qr_png":     "/v1/resumen/qr.png",
            "ticket_pdf": "/v1/resumen/ticket.pdf",
        },
    })
}

// GetQR handles GET /v1/resumen/qr.png: the receipt's QR code as a
// downloadable PNG, named after the movie like the original export.
func (h *SummaryHandler) GetQR(c echo.Context) error {
    sid, err := sessionID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    sum, ok := h.Bookings.LastSummary(sid)
    if !ok {
        return c.Redirect(http.StatusSeeOther, "/v1/rooms")
    }
    png, err := summary.QRImage(sum, 512)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render qr"})
    }
    c.Response().Header().Set(echo.HeaderContentDisposition,
        fmt.Sprintf(`attachment; filename="reserva-%s.png"`, slugify(sum.MovieTitle)))
    return c.Blob(http.StatusOK, "image/png", png)
}

// GetTicket handles GET /v1/resumen/ticket.pdf: the printable ticket.
func (h *SummaryHandler) GetTicket(c echo.Context) error {
    sid, err := sessionID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    sum, ok := h.Bookings.LastSummary(sid)
    if !ok {
        return c.Redirect(http.StatusSeeOther, "/v1/rooms")
    }
    pdf, err := summary.TicketPDF(sum)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render ticket"})
    }
    c.Response().Header().Set(echo.HeaderContentDisposition,
        fmt.Sprintf(`attachment; filename="reserva-%s.pdf"`, slugify(sum.MovieTitle)))
    return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// slugify makes a movie title safe for a filename.
func slugify(s string) string {
    s = strings.TrimSpace(s)
    if s == "" {
        return "entrada"
    }
    return strings.Map(func(r rune) rune {
        switch {
        case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
            return r
        default:
            return '_'
        }
    }, s)
}
