package summary

import (
    "bytes"
    "fmt"
    "strings"

    "github.com/jung-kurt/gofpdf"
    qrcode "github.com/skip2/go-qrcode"

    "github.com/cinereserva/booking-gateway/internal/model"
)

// TicketPDF renders a single-page downloadable ticket for a confirmed
// reservation: booking summary, payment breakdown and the same QR code
// the receipt view shows, so the printed ticket verifies at the door
// exactly like the on-screen one.
func TicketPDF(sum model.ReservationSummary) ([]byte, error) {
    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.SetMargins(15, 15, 15)
    pdf.AddPage()
    pdf.SetAutoPageBreak(false, 0)

    // Core fonts are cp1252; run all text through the unicode translator
    // so accented Spanish renders correctly.
    tr := pdf.UnicodeTranslatorFromDescriptor("")

    // Header
    pdf.SetFont("Helvetica", "B", 22)
    pdf.Cell(0, 15, tr("RESERVA CONFIRMADA"))
    pdf.Ln(20)

    pdf.SetDrawColor(220, 220, 220)
    pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
    pdf.Ln(8)

    // Summary block with QR beside it
    yStart := pdf.GetY()
    pdf.SetFillColor(245, 245, 245)
    pdf.Rect(15, yStart, 120, 55, "F")

    pdf.SetXY(20, yStart+7)
    pdf.SetFont("Helvetica", "B", 14)
    pdf.Cell(0, 8, tr("RESUMEN"))
    pdf.Ln(10)
    pdf.SetFont("Helvetica", "", 12)
    pdf.SetX(20)
    pdf.Cell(0, 8, tr(fmt.Sprintf("Película: %s", sum.MovieTitle)))
    pdf.Ln(6)
    pdf.SetX(20)
    pdf.Cell(0, 8, tr(fmt.Sprintf("Sala: %s", sum.RoomName)))
    pdf.Ln(6)
    pdf.SetX(20)
    pdf.Cell(0, 8, tr(fmt.Sprintf("Fecha: %s", FormatDate(sum.Date))))
    pdf.Ln(6)
    pdf.SetX(20)
    pdf.Cell(0, 8, tr(fmt.Sprintf("Horario: %s", FormatTime(sum.Hour))))

    payload, err := Encode(sum)
    if err != nil {
        return nil, err
    }
    qrBytes, err := qrcode.Encode(string(payload), qrcode.High, 256)
    if err != nil {
        return nil, err
    }
    pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
    pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

    pdf.SetY(yStart + 63)
    pdf.SetFont("Helvetica", "I", 10)
    pdf.Cell(0, 6, tr("Presenta este código QR en taquilla."))
    pdf.Ln(10)

    // Seats
    pdf.SetFont("Helvetica", "B", 14)
    pdf.SetFillColor(240, 240, 240)
    pdf.CellFormat(0, 9, "ASIENTOS", "", 1, "L", true, 0, "")
    pdf.Ln(3)
    pdf.SetFont("Helvetica", "", 12)
    pdf.MultiCell(0, 8, tr(strings.Join(sum.Seats, ", ")), "", "", false)
    pdf.Ln(4)

    // Payment
    pdf.SetFont("Helvetica", "B", 14)
    pdf.SetFillColor(240, 240, 240)
    pdf.CellFormat(0, 9, "PAGO", "", 1, "L", true, 0, "")
    pdf.Ln(3)
    pdf.SetFont("Helvetica", "", 12)
    if n := len(sum.Seats); n > 0 {
        pdf.Cell(0, 8, tr(fmt.Sprintf("Subtotal (%d): $%.2f c/u", n, sum.Total/float64(n))))
        pdf.Ln(6)
    }
    pdf.SetFont("Helvetica", "B", 12)
    pdf.Cell(0, 8, tr(fmt.Sprintf("Total: $%.2f", sum.Total)))

    // Footer
    pdf.SetDrawColor(200, 200, 200)
    pdf.Line(15, 285, 195, 285)
    pdf.SetY(288)
    pdf.SetFont("Helvetica", "I", 10)
    pdf.CellFormat(0, 8, tr("Guarda tu código y preséntalo en taquilla."), "", 0, "C", false, 0, "")

    var buf bytes.Buffer
    if err := pdf.Output(&buf); err != nil {
        return nil, err
    }
    return buf.Bytes(), nil
}
