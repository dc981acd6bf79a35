package config

import "time"

// CacheConfig defines settings for the response cache middleware. The
// gateway only caches the room listing proxy: rooms change rarely
// upstream and the listing is the hottest read. When Enabled is false or
// no Redis client is configured, caching is disabled and every request
// goes through to the upstream API.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
    }
}
