// Package summary turns a confirmed reservation into human-readable and
// machine-scannable receipts. Everything here is a pure transform of the
// ReservationSummary projection: no upstream calls, no persistence.
package summary

import (
    "encoding/json"
    "fmt"
    "time"

    qrcode "github.com/skip2/go-qrcode"

    "github.com/cinereserva/booking-gateway/internal/model"
)

// Placeholders rendered when a date or showtime is missing or malformed.
// A broken timestamp degrades the receipt, it never breaks it.
const (
    InvalidDate = "Fecha no válida"
    InvalidTime = "Horario no válido"
)

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var months = [...]string{
    "enero", "febrero", "marzo", "abril", "mayo", "junio",
    "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders a YYYY-MM-DD date as a long Spanish date, e.g.
// "viernes, 12 de septiembre de 2025". Malformed or empty input yields
// the InvalidDate placeholder.
func FormatDate(date string) string {
    if date == "" {
        return InvalidDate
    }
    t, err := time.Parse("2006-01-02", date)
    if err != nil {
        return InvalidDate
    }
    return fmt.Sprintf("%s, %d de %s de %d",
        weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// FormatTime renders an HH:MM or HH:MM:SS showtime as a 12-hour clock
// string, e.g. "07:30 p. m.". Malformed or empty input yields the
// InvalidTime placeholder.
func FormatTime(hour string) string {
    if hour == "" {
        return InvalidTime
    }
    t, err := time.Parse("15:04:05", hour)
    if err != nil {
        t, err = time.Parse("15:04", hour)
    }
    if err != nil {
        return InvalidTime
    }
    suffix := "a. m."
    h := t.Hour()
    if h >= 12 {
        suffix = "p. m."
    }
    h12 := h % 12
    if h12 == 0 {
        h12 = 12
    }
    return fmt.Sprintf("%02d:%02d %s", h12, t.Minute(), suffix)
}

// Payload is the serialized receipt embedded in the QR code. Field
// names match what the box-office scanner expects; the content is
// self-contained so verification works offline at the point of entry.
type Payload struct {
    Movie string   `json:"película"`
    Room  string   `json:"sala"`
    Date  string   `json:"fecha"`
    Time  string   `json:"horario"`
    Seats []string `json:"asientos"`
    Total string   `json:"total"`
}

// Encode builds the QR payload for a summary as indented JSON.
func Encode(sum model.ReservationSummary) ([]byte, error) {
    p := Payload{
        Movie: sum.MovieTitle,
        Room:  sum.RoomName,
        Date:  FormatDate(sum.Date),
        Time:  FormatTime(sum.Hour),
        Seats: sum.Seats,
        Total: fmt.Sprintf("$%.2f", sum.Total),
    }
    if p.Seats == nil {
        p.Seats = []string{}
    }
    return json.MarshalIndent(p, "", "  ")
}

// QRImage renders the summary's payload as a PNG QR code of the given
// pixel size. High error correction keeps phone-screen codes scannable
// at the door.
func QRImage(sum model.ReservationSummary, size int) ([]byte, error) {
    payload, err := Encode(sum)
    if err != nil {
        return nil, err
    }
    return qrcode.Encode(string(payload), qrcode.High, size)
}
