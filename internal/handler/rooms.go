package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/cinereserva/booking-gateway/internal/client"
    "github.com/cinereserva/booking-gateway/internal/config"
)

// RoomHandler serves the room listing (the "home" view). It is a thin
// proxy over the upstream listing with the user's credential attached;
// the response cache middleware in front of it absorbs repeat hits.
type RoomHandler struct {
    Cfg config.Config
    API *client.API
}

func NewRoomHandler(cfg config.Config, api *client.API) *RoomHandler {
    return &RoomHandler{Cfg: cfg, API: api}
}

// ListRooms handles GET /v1/rooms. Returns all rooms available for
// booking, each with its movie, grid dimensions and price.
func (h *RoomHandler) ListRooms(c echo.Context) error {
    token, err := upstreamToken(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
    defer cancel()

    rooms, err := h.API.ListRooms(ctx, token)
    if err != nil {
        if err == client.ErrUnauthorized {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session rejected upstream", "login": "/v1/auth/login"})
        }
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load rooms"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}
