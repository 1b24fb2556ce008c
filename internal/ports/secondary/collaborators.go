package secondary

import (
	"context"
	"io"
	"time"
)

// Identity is the authenticated caller as reported by the auth provider.
type Identity struct {
	ID    string
	Email string
}

// AuthProvider validates a session token and resolves the caller's identity.
type AuthProvider interface {
	Verify(token string) (*Identity, error)
}

// FileStorage stores activity images. Only the URL ever reaches clients.
type FileStorage interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
	PublicURL(name string) string
}

// PushPayload is the fire-and-forget message body sent to a device endpoint.
type PushPayload struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RelatedID string `json:"related_id,omitempty"`
}

// PushSender delivers a payload to a single device endpoint.
type PushSender interface {
	Send(ctx context.Context, endpoint string, payload PushPayload) error
}

// EmailSender is the fallback notification channel for participants with no
// registered devices.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Cache is a small string cache with TTL, backing dashboard snapshots and
// unread counts.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
