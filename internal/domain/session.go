package domain

import (
	"fmt"
	"time"
)

// SessionKey identifies one user within one conversation.
type SessionKey string

// NewSessionKey builds the key for a user in a chat.
func NewSessionKey(userID, chatID int64) SessionKey {
	return SessionKey(fmt.Sprintf("%d:%d", userID, chatID))
}

// SessionState is the pending turn of a conversation that is waiting for a
// seed. Its absence means the conversation is idle.
type SessionState struct {
	MineCount MineCount
	CreatedAt time.Time
}

// Expired reports whether the state is older than ttl at now. A
// non-positive ttl never expires.
func (s SessionState) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.CreatedAt) > ttl
}
