package handler

// common.go defines helpers shared across handler files for pulling the
// values SessionAuth injected into the Echo context. Handlers behind the
// middleware can assume these are present; the error returns guard the
// (misconfigured) case where a handler is mounted without the guard.

import (
    "errors"

    "github.com/labstack/echo/v4"

    "github.com/cinereserva/booking-gateway/internal/middleware"
    "github.com/cinereserva/booking-gateway/internal/model"
)

var errNoSession = errors.New("no session in context")

// sessionID returns the gateway session ID for the request.
func sessionID(c echo.Context) (string, error) {
    if v, ok := c.Get(middleware.CtxSessionID).(string); ok && v != "" {
        return v, nil
    }
    return "", errNoSession
}

// currentUser returns the logged-in user's descriptor.
func currentUser(c echo.Context) (model.User, error) {
    if v, ok := c.Get(middleware.CtxUser).(model.User); ok {
        return v, nil
    }
    return model.User{}, errNoSession
}

// upstreamToken returns the opaque credential for the cinema API.
func upstreamToken(c echo.Context) (string, error) {
    if v, ok := c.Get(middleware.CtxUpstreamToken).(string); ok && v != "" {
        return v, nil
    }
    return "", errNoSession
}
