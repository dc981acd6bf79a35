package client_test

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/cinereserva/booking-gateway/internal/client"
    "github.com/cinereserva/booking-gateway/internal/model"
)

func TestLogin_Success(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, http.MethodPost, r.Method)
        require.Equal(t, "/auth/login", r.URL.Path)
        var body map[string]string
        require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
        assert.Equal(t, "ana@example.com", body["email"])
        _ = json.NewEncoder(w).Encode(map[string]any{
            "token": "opaque-123",
            "user":  map[string]any{"id": 7, "email": "ana@example.com"},
        })
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    token, user, err := api.Login(context.Background(), "ana@example.com", "secret")
    require.NoError(t, err)
    assert.Equal(t, "opaque-123", token)
    assert.Equal(t, uint64(7), user.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    _, _, err := api.Login(context.Background(), "ana@example.com", "wrong")
    assert.Equal(t, client.ErrUnauthorized, err)
}

func TestGetRoom_SendsBearerAndDecodesEnvelope(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/rooms/3", r.URL.Path)
        assert.Equal(t, "Bearer opaque-123", r.Header.Get("Authorization"))
        _ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
            "id": 3, "name": "Sala 3", "movie_name": "Dune",
            "num_rows": 5, "num_columns": 6, "price": 12.5,
        }})
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    room, err := api.GetRoom(context.Background(), "opaque-123", 3)
    require.NoError(t, err)
    assert.Equal(t, "Sala 3", room.Name)
    assert.Equal(t, uint32(5), room.NumRows)
    assert.Equal(t, 12.5, room.Price)
}

func TestGetRoom_UnknownRoom(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusNotFound)
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    _, err := api.GetRoom(context.Background(), "tok", 999)
    assert.Equal(t, client.ErrInvalidRoom, err)
}

func TestGetRoom_ServerFailure(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    _, err := api.GetRoom(context.Background(), "tok", 3)
    assert.Equal(t, client.ErrNetwork, err)
}

func TestListReservedSeats_QueryAndBareArray(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/reservations", r.URL.Path)
        assert.Equal(t, "4", r.URL.Query().Get("room_id"))
        assert.Equal(t, "2025-09-12", r.URL.Query().Get("date"))
        _ = json.NewEncoder(w).Encode([]map[string]any{
            {"seat_row": 1, "seat_column": 2},
            {"seat_row": 2, "seat_column": 1},
        })
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    reserved, err := api.ListReservedSeats(context.Background(), "tok", 4, "2025-09-12")
    require.NoError(t, err)
    require.Len(t, reserved, 2)
    assert.Equal(t, uint32(1), reserved[0].Row)
    assert.Equal(t, uint32(2), reserved[0].Column)
}

func TestCreateReservation_SubmitsFullSeatList(t *testing.T) {
    var got model.ReservationRequest
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/reservations", r.URL.Path)
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        w.WriteHeader(http.StatusCreated)
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    req := model.ReservationRequest{
        UserID: 7, RoomID: 4, Date: "2025-09-12",
        Seats: []string{"1-1", "1-2", "2-2"},
    }
    require.NoError(t, api.CreateReservation(context.Background(), "tok", req))
    assert.Equal(t, []string{"1-1", "1-2", "2-2"}, got.Seats)
    assert.Equal(t, uint64(7), got.UserID)
}

func TestCreateReservation_FailureIsSubmitError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    api := client.New(srv.URL, srv.Client())
    err := api.CreateReservation(context.Background(), "tok", model.ReservationRequest{})
    assert.Equal(t, client.ErrSubmit, err)
}

func TestDo_UnreachableHostIsNetworkError(t *testing.T) {
    api := client.New("http://127.0.0.1:1", http.DefaultClient)
    _, err := api.ListRooms(context.Background(), "tok")
    assert.Equal(t, client.ErrNetwork, err)
}
