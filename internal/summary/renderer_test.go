package summary_test

import (
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/cinereserva/booking-gateway/internal/model"
    "github.com/cinereserva/booking-gateway/internal/summary"
)

func sampleSummary() model.ReservationSummary {
    return model.ReservationSummary{
        MovieTitle: "Dune",
        RoomName:   "Sala 1",
        Date:       "2025-09-12",
        Hour:       "19:30:00",
        Seats:      []string{"1-1", "1-2"},
        Total:      20,
    }
}

func TestFormatDate(t *testing.T) {
    assert.Equal(t, "viernes, 12 de septiembre de 2025", summary.FormatDate("2025-09-12"))
    assert.Equal(t, "lunes, 1 de enero de 2024", summary.FormatDate("2024-01-01"))
}

func TestFormatDate_InvalidInput(t *testing.T) {
    assert.Equal(t, summary.InvalidDate, summary.FormatDate(""))
    assert.Equal(t, summary.InvalidDate, summary.FormatDate("12/09/2025"))
    assert.Equal(t, summary.InvalidDate, summary.FormatDate("garbage"))
}

func TestFormatTime(t *testing.T) {
    assert.Equal(t, "07:30 p. m.", summary.FormatTime("19:30:00"))
    assert.Equal(t, "07:30 p. m.", summary.FormatTime("19:30"))
    assert.Equal(t, "12:00 p. m.", summary.FormatTime("12:00:00"))
    assert.Equal(t, "12:05 a. m.", summary.FormatTime("00:05:00"))
    assert.Equal(t, "09:15 a. m.", summary.FormatTime("09:15:00"))
}

func TestFormatTime_InvalidInput(t *testing.T) {
    assert.Equal(t, summary.InvalidTime, summary.FormatTime(""))
    assert.Equal(t, summary.InvalidTime, summary.FormatTime("25:00:00"))
    assert.Equal(t, summary.InvalidTime, summary.FormatTime("7pm"))
}

func TestEncode_PayloadFields(t *testing.T) {
    raw, err := summary.Encode(sampleSummary())
    require.NoError(t, err)

    var p map[string]any
    require.NoError(t, json.Unmarshal(raw, &p))
    assert.Equal(t, "Dune", p["película"])
    assert.Equal(t, "Sala 1", p["sala"])
    assert.Equal(t, "viernes, 12 de septiembre de 2025", p["fecha"])
    assert.Equal(t, "07:30 p. m.", p["horario"])
    assert.Equal(t, "$20.00", p["total"])
    assert.Len(t, p["asientos"], 2)
}

func TestEncode_MissingScheduleDegradesGracefully(t *testing.T) {
    sum := sampleSummary()
    sum.Hour = ""
    raw, err := summary.Encode(sum)
    require.NoError(t, err)

    var p map[string]any
    require.NoError(t, json.Unmarshal(raw, &p))
    assert.Equal(t, summary.InvalidTime, p["horario"])
}

func TestQRImage_ProducesPNG(t *testing.T) {
    png, err := summary.QRImage(sampleSummary(), 256)
    require.NoError(t, err)
    require.NotEmpty(t, png)
    // PNG magic bytes.
    assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestTicketPDF_ProducesDocument(t *testing.T) {
    pdf, err := summary.TicketPDF(sampleSummary())
    require.NoError(t, err)
    require.NotEmpty(t, pdf)
    assert.Equal(t, []byte("%PDF"), pdf[:4])
}

func TestTicketPDF_EmptySeatsDoesNotDivideByZero(t *testing.T) {
    sum := sampleSummary()
    sum.Seats = nil
    sum.Total = 0
    pdf, err := summary.TicketPDF(sum)
    require.NoError(t, err)
    assert.NotEmpty(t, pdf)
}
