// Package store keeps the gateway's session-scoped state: the upstream
// credential and user descriptor (Redis, TTL-bounded to the browser
// session) and the live booking sessions with their one-shot summary
// handoffs (in-memory, since they are meaningless outside this process
// lifetime). Nothing else persists anywhere, by design of the system:
// rooms, seats and reservations all live behind the upstream API.
package store

import (
    "context"
    "encoding/json"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/cinereserva/booking-gateway/internal/model"
)

// AuthSession is what the gateway remembers about a logged-in user: the
// opaque upstream bearer token and the current-user descriptor returned
// at login. It is stored under the gateway session ID and expires with
// the session TTL.
type AuthSession struct {
    Token string     `json:"token"`
    User  model.User `json:"user"`
}

// SessionStore stores AuthSessions in Redis when a client is available
// and degrades to an in-process map otherwise (single-instance dev
// setups run fine without Redis; they just lose sessions on restart,
// which is the browser-session contract anyway).
type SessionStore struct {
    rdb *redis.Client
    ttl time.Duration

    mu  sync.RWMutex
    mem map[string]memSession
}

type memSession struct {
    sess    AuthSession
    expires time.Time
}

// NewSessionStore builds a store. rdb may be nil.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
    return &SessionStore{
        rdb: rdb,
        ttl: ttl,
        mem: make(map[string]memSession),
    }
}

func sessionKey(id string) string {
    return "sess:" + id
}

// Put stores the session under the given gateway session ID with the
// configured TTL.
func (s *SessionStore) Put(ctx context.Context, id string, sess AuthSession) error {
    if s.rdb != nil {
        buf, err := json.Marshal(sess)
        if err != nil {
            return err
        }
        return s.rdb.Set(ctx, sessionKey(id), buf, s.ttl).Err()
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    s.mem[id] = memSession{sess: sess, expires: time.Now().Add(s.ttl)}
    return nil
}

// Get retrieves a session. The boolean is false when the session does
// not exist or has expired.
func (s *SessionStore) Get(ctx context.Context, id string) (AuthSession, bool, error) {
    if s.rdb != nil {
        raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
        if err == redis.Nil {
            return AuthSession{}, false, nil
        }
        if err != nil {
            return AuthSession{}, false, err
        }
        var sess AuthSession
        if err := json.Unmarshal(raw, &sess); err != nil {
            return AuthSession{}, false, err
        }
        return sess, true, nil
    }
    s.mu.RLock()
    entry, ok := s.mem[id]
    s.mu.RUnlock()
    if !ok || time.Now().After(entry.expires) {
        return AuthSession{}, false, nil
    }
    return entry.sess, true, nil
}

// Delete removes a session (logout).
func (s *SessionStore) Delete(ctx context.Context, id string) error {
    if s.rdb != nil {
        return s.rdb.Del(ctx, sessionKey(id)).Err()
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.mem, id)
    return nil
}
