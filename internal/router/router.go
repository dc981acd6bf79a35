package router // package router defines how HTTP routes are registered for the gateway

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/cinereserva/booking-gateway/internal/config"
    "github.com/cinereserva/booking-gateway/internal/handler"
    "github.com/cinereserva/booking-gateway/internal/middleware"
    "github.com/cinereserva/booking-gateway/internal/store"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
    Auth    *handler.AuthHandler
    Rooms   *handler.RoomHandler
    Booking *handler.BookingHandler
    Summary *handler.SummaryHandler
}

// Register wires up the full route table. Only the health check and the
// auth endpoints are reachable without a session; everything else sits
// behind SessionAuth, the server-side equivalent of the SPA's protected
// routes.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, sessions *store.SessionStore, h Handlers) {
    // Health check for load balancers and monitoring.
    e.GET("/healthz", handler.Health)

    // Unauthenticated auth endpoints, rate limited per client IP since
    // they are the only surface exposed to credential guessing.
    rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    auth := e.Group("/v1/auth")
    auth.Use(rl)
    auth.POST("/login", h.Auth.Login)
    auth.POST("/register", h.Auth.Register)

    // Protected routes: everything below requires a live session.
    v1 := e.Group("/v1")
    v1.Use(middleware.SessionAuth(cfg.SessionSecret, sessions))

    v1.POST("/logout", h.Auth.Logout)
    v1.GET("/me", h.Auth.Me)

    // Room listing (home), with the Redis response cache in front.
    cache := middleware.NewRoomCache(config.LoadCacheConfig(), rdb)
    v1.GET("/rooms", h.Rooms.ListRooms, cache)

    // Reservation session lifecycle for one room.
    v1.POST("/rooms/:id/booking", h.Booking.StartBooking)
    v1.GET("/rooms/:id/booking", h.Booking.GetBooking)
    v1.PUT("/rooms/:id/booking/date", h.Booking.SetDate)
    v1.POST("/rooms/:id/booking/seats/:seatId", h.Booking.ToggleSeat)
    v1.DELETE("/rooms/:id/booking/seats", h.Booking.ClearSeats)
    v1.POST("/rooms/:id/booking/confirm", h.Booking.Confirm)

    // Receipt view and its exports. The route name matches the SPA's.
    v1.GET("/resumen", h.Summary.GetSummary)
    v1.GET("/resumen/qr.png", h.Summary.GetQR)
    v1.GET("/resumen/ticket.pdf", h.Summary.GetTicket)
}
