package main // Entry point package

import (
    "log"      // Logging library
    "net/http" // upstream HTTP client
    "time"     // session TTL conversion

    "github.com/joho/godotenv"    // .env loading for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/cinereserva/booking-gateway/internal/client"
    "github.com/cinereserva/booking-gateway/internal/config"
    "github.com/cinereserva/booking-gateway/internal/handler"
    "github.com/cinereserva/booking-gateway/internal/router"
    "github.com/cinereserva/booking-gateway/internal/store"
)

func main() {
    _ = godotenv.Load() // best-effort; real deployments set env directly

    cfg := config.Load() // Load environment config

    // Upstream cinema API client with the configured per-request timeout.
    api := client.New(cfg.UpstreamBaseURL, &http.Client{Timeout: cfg.UpstreamTimeout})

    // Redis backs sessions, rate limiting and the room cache. A nil
    // client degrades all three gracefully.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; using in-memory sessions, no cache, no rate limit")
    }
    sessions := store.NewSessionStore(rdb, time.Duration(cfg.SessionTTLMin)*time.Minute)
    bookings := store.NewBookingRegistry()

    h := router.Handlers{
        Auth:    handler.NewAuthHandler(cfg, api, sessions, bookings),
        Rooms:   handler.NewRoomHandler(cfg, api),
        Booking: handler.NewBookingHandler(cfg, api, bookings),
        Summary: handler.NewSummaryHandler(bookings),
    }

    e := echo.New()
    router.Register(e, cfg, rdb, sessions, h)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s, upstream=%s)", addr, cfg.Env, cfg.UpstreamBaseURL)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
