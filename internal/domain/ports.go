package domain

import "context"

// MapsClient returns raw provider payloads; mapping to Place/Coords happens in app.
type MapsClient interface {
	Geocode(ctx context.Context, query string) ([]map[string]any, error)
	NearbyLodging(ctx context.Context, at Coords, radiusMeters int) ([]map[string]any, error)
}

type SessionStore interface {
	// Load returns ErrNotFound for unknown sessions.
	Load(ctx context.Context, id string) (*Conversation, error)
	Create(ctx context.Context, id string) error
	Append(ctx context.Context, id string, msgs ...Message) error
	Delete(ctx context.Context, id string) error
}

type Speaker interface {
	Speak(ctx context.Context, text string) error
}
