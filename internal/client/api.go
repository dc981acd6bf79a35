package client

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strconv"

    "github.com/cinereserva/booking-gateway/internal/model"
)

// API is an HTTP client for the upstream cinema service. It owns the
// base URL and transport settings; credentials travel per call.
type API struct {
    baseURL string
    http    *http.Client
}

// New constructs an API client. The base URL must not end with a slash;
// a trailing slash is trimmed so route concatenation stays predictable.
func New(baseURL string, httpClient *http.Client) *API {
    if httpClient == nil {
        httpClient = http.DefaultClient
    }
    for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
        baseURL = baseURL[:len(baseURL)-1]
    }
    return &API{baseURL: baseURL, http: httpClient}
}

// ----- upstream payload envelopes -----

// dataEnvelope mirrors the upstream convention of wrapping single
// resources and collections in a "data" field.
type dataEnvelope[T any] struct {
    Data T `json:"data"`
}

type authPayload struct {
    Token string     `json:"token"`
    User  model.User `json:"user"`
}

type credentialsReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

// ----- auth -----

// Login exchanges credentials for an opaque upstream token and the
// current-user descriptor. 401/403 map to ErrUnauthorized; transport
// and 5xx failures map to ErrNetwork.
func (a *API) Login(ctx context.Context, email, password string) (string, model.User, error) {
    var out authPayload
    err := a.do(ctx, http.MethodPost, "/auth/login", "", credentialsReq{Email: email, Password: password}, &out)
    if err != nil {
        return "", model.User{}, err
    }
    return out.Token, out.User, nil
}

// Register creates an account upstream and, like Login, returns a fresh
// session token for it.
func (a *API) Register(ctx context.Context, email, password string) (string, model.User, error) {
    var out authPayload
    err := a.do(ctx, http.MethodPost, "/auth/register", "", credentialsReq{Email: email, Password: password}, &out)
    if err != nil {
        return "", model.User{}, err
    }
    return out.Token, out.User, nil
}

// ----- rooms -----

// ListRooms returns all rooms available for booking.
func (a *API) ListRooms(ctx context.Context, token string) ([]model.Room, error) {
    var out dataEnvelope[[]model.Room]
    if err := a.do(ctx, http.MethodGet, "/rooms", token, nil, &out); err != nil {
        return nil, err
    }
    return out.Data, nil
}

// GetRoom returns a single room with its grid dimensions and price.
// A 404 from upstream becomes ErrInvalidRoom.
func (a *API) GetRoom(ctx context.Context, token string, roomID uint64) (model.Room, error) {
    var out dataEnvelope[model.Room]
    path := "/rooms/" + strconv.FormatUint(roomID, 10)
    if err := a.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
        return model.Room{}, err
    }
    return out.Data, nil
}

// ----- reservations -----

// ListReservedSeats returns the (row, column) pairs already booked for
// the room on the given date. The upstream endpoint answers with a bare
// array rather than a data envelope.
func (a *API) ListReservedSeats(ctx context.Context, token string, roomID uint64, date string) ([]model.ReservedSeat, error) {
    q := url.Values{}
    q.Set("room_id", strconv.FormatUint(roomID, 10))
    q.Set("date", date)
    var out []model.ReservedSeat
    if err := a.do(ctx, http.MethodGet, "/reservations?"+q.Encode(), token, nil, &out); err != nil {
        return nil, err
    }
    return out, nil
}

// CreateReservation submits the full reservation request atomically.
// Any non-2xx answer maps to ErrSubmit so the session can keep its
// selection and offer a retry.
func (a *API) CreateReservation(ctx context.Context, token string, req model.ReservationRequest) error {
    err := a.do(ctx, http.MethodPost, "/reservations", token, req, nil)
    if err == ErrNetwork || err == ErrInvalidRoom {
        return ErrSubmit
    }
    return err
}

// do performs one upstream round trip: marshal the body if any, attach
// the bearer credential, classify the status code and decode into out.
// Decoding problems on a 2xx count as ErrNetwork since the response is
// unusable either way.
func (a *API) do(ctx context.Context, method, path, token string, body, out any) error {
    var rdr io.Reader
    if body != nil {
        buf, err := json.Marshal(body)
        if err != nil {
            return fmt.Errorf("encode request: %w", err)
        }
        rdr = bytes.NewReader(buf)
    }
    req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rdr)
    if err != nil {
        return fmt.Errorf("build request: %w", err)
    }
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    res, err := a.http.Do(req)
    if err != nil {
        return ErrNetwork
    }
    defer res.Body.Close()

    switch {
    case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
        return ErrUnauthorized
    case res.StatusCode == http.StatusNotFound:
        return ErrInvalidRoom
    case res.StatusCode >= 500:
        return ErrNetwork
    case res.StatusCode >= 400:
        // 4xx other than the above: the request itself was rejected.
        return ErrSubmit
    }
    if out == nil {
        return nil
    }
    if err := json.NewDecoder(res.Body).Decode(out); err != nil {
        return ErrNetwork
    }
    return nil
}
