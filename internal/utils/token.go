package utils // package utils provides helpers for gateway session tokens

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed gateway session token along with its
// expiry. The token does not carry the upstream credential itself, only
// the gateway session ID; the credential stays server-side in the
// session store so it never round-trips through the browser.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT binding a gateway
// session ID to a user. Claims: sid (gateway session), sub (upstream
// user ID), exp and iat.
func NewSessionToken(secret, sessionID string, userID uint64, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sid": sessionID,
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ErrInvalidToken is returned when a presented session token fails
// signature or claim validation.
var ErrInvalidToken = errors.New("invalid session token")

// ParseSessionToken verifies a gateway session token and returns the
// session ID it names. Only HMAC-signed tokens are accepted.
func ParseSessionToken(secret, raw string) (sessionID string, err error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrInvalidToken
    }
    sid, ok := claims["sid"].(string)
    if !ok || sid == "" {
        return "", ErrInvalidToken
    }
    return sid, nil
}
