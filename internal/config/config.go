package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses duration values
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The gateway owns no database: everything
// it needs is the address of the upstream cinema API, a secret for its
// own session tokens, and a handful of tuning knobs.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    UpstreamBaseURL string        // base URL of the external cinema API
    UpstreamTimeout time.Duration // per-request timeout for upstream calls
    SessionSecret   string        // secret used to sign gateway session tokens
    SessionTTLMin   int           // gateway session time-to-live in minutes
    BookingWindow   int           // days ahead (inclusive) a reservation date may fall
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),         // environment (dev/test/prod)
        Port:            must("APP_PORT"),        // port to bind the HTTP server
        UpstreamBaseURL: must("CINEMA_API_URL"),  // upstream cinema API base URL
        UpstreamTimeout: dur("CINEMA_API_TIMEOUT", 10*time.Second),
        SessionSecret:   must("SESSION_SECRET"),  // secret for signing session tokens
        SessionTTLMin:   mustInt("SESSION_TTL_MIN"),
        BookingWindow:   intOr("BOOKING_WINDOW_DAYS", 8),
    }
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// intOr reads an optional integer variable, falling back to def when the
// variable is unset or unparsable.
func intOr(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}

// dur reads an optional duration variable (Go duration syntax, e.g. "5s"),
// falling back to def when unset or unparsable.
func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    d, err := time.ParseDuration(v)
    if err != nil {
        return def
    }
    return d
}
