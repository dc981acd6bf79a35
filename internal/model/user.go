package model

// User is the current-user descriptor returned by the upstream auth
// endpoints. The gateway stores it alongside the upstream credential
// for the duration of the browser session and never mutates it.
//
// Fields:
//  ID    – upstream user identifier.
//  Email – account email used to log in.
type User struct {
    ID    uint64 `json:"id"`
    Email string `json:"email"`
}
