package handler

import (
    "context"  // context with timeout for upstream calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // token expiry in responses

    "github.com/google/uuid"      // gateway session IDs
    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/cinereserva/booking-gateway/internal/client" // upstream cinema API
    "github.com/cinereserva/booking-gateway/internal/config" // app configuration
    "github.com/cinereserva/booking-gateway/internal/model"
    "github.com/cinereserva/booking-gateway/internal/store" // session storage
    "github.com/cinereserva/booking-gateway/internal/utils" // session token minting
)

// AuthHandler bundles dependencies for auth endpoints. The gateway does
// not verify credentials itself: login and register are forwarded to
// the upstream API once, and only the resulting opaque token plus user
// descriptor are kept, server-side, for the session's lifetime.
type AuthHandler struct {
    Cfg      config.Config
    API      *client.API
    Sessions *store.SessionStore
    Bookings *store.BookingRegistry
}

func NewAuthHandler(cfg config.Config, api *client.API, sessions *store.SessionStore, bookings *store.BookingRegistry) *AuthHandler {
    return &AuthHandler{Cfg: cfg, API: api, Sessions: sessions, Bookings: bookings}
}

// ----- DTOs -----

type credentialsReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

type authResp struct {
    User    model.User `json:"user"`
    Session tokenPart  `json:"session"`
}

// exchangeFunc is the upstream call shared by login and register.
type exchangeFunc func(ctx context.Context, email, password string) (string, model.User, error)

// Login forwards credentials upstream and opens a gateway session.
func (h *AuthHandler) Login(c echo.Context) error {
    return h.authenticate(c, h.API.Login, http.StatusOK)
}

// Register creates the account upstream and opens a gateway session in
// the same round trip, so a fresh user lands logged in.
func (h *AuthHandler) Register(c echo.Context) error {
    return h.authenticate(c, h.API.Register, http.StatusCreated)
}

// authenticate implements the shared login/register flow: bind and
// normalize the credentials, exchange them upstream exactly once,
// persist the resulting session record and mint the gateway token.
func (h *AuthHandler) authenticate(c echo.Context, exchange exchangeFunc, okStatus int) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
    defer cancel()

    token, user, err := exchange(ctx, req.Email, req.Password)
    if err != nil {
        switch err {
        case client.ErrUnauthorized:
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        case client.ErrNetwork:
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "cinema service unavailable"})
        default:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "request rejected"})
        }
    }

    sid := uuid.NewString()
    if err := h.Sessions.Put(ctx, sid, store.AuthSession{Token: token, User: user}); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
    }
    st, err := utils.NewSessionToken(h.Cfg.SessionSecret, sid, user.ID, h.Cfg.SessionTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }

    return c.JSON(okStatus, authResp{
        User:    user,
        Session: tokenPart{Token: st.Token, Expires: st.Exp},
    })
}

// Logout deletes the session record and all booking state tied to it.
// The gateway token becomes useless immediately even though its JWT
// expiry lies in the future, because SessionAuth resolves the record on
// every request.
func (h *AuthHandler) Logout(c echo.Context) error {
    sid, err := sessionID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := h.Sessions.Delete(c.Request().Context(), sid); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
    }
    h.Bookings.Clear(sid)
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's descriptor.
func (h *AuthHandler) Me(c echo.Context) error {
    user, err := currentUser(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, echo.Map{"user": user})
}
