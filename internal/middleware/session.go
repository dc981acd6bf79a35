package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/cinereserva/booking-gateway/internal/store"
    "github.com/cinereserva/booking-gateway/internal/utils"
)

// Context keys set by SessionAuth for downstream handlers.
const (
    CtxSessionID     = "session_id"     // gateway session ID
    CtxUser          = "user"           // model.User of the logged-in user
    CtxUpstreamToken = "upstream_token" // opaque credential for the cinema API
)

// SessionAuth returns an Echo middleware that validates a Bearer gateway
// session token and resolves the backing session record. It is the Go
// rendition of the SPA's route guard: a request without a live session
// is turned away with 401 and a login hint instead of reaching any
// protected handler. On success the session ID, user descriptor and
// upstream credential are injected into the request context.
func SessionAuth(secret string, sessions *store.SessionStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header. A valid header should start
            // with "Bearer " followed by the gateway token.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token", "login": "/v1/auth/login"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            sid, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token", "login": "/v1/auth/login"})
            }

            // The token only names the session; the credential and user
            // live server-side. A token outliving its session record
            // (expired TTL, logout) is rejected the same way.
            sess, ok, err := sessions.Get(c.Request().Context(), sid)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
            }
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired", "login": "/v1/auth/login"})
            }

            c.Set(CtxSessionID, sid)
            c.Set(CtxUser, sess.User)
            c.Set(CtxUpstreamToken, sess.Token)
            return next(c)
        }
    }
}
