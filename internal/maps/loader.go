// Package maps holds the shared Google Maps capability and the embed URL
// builders the pages use.
package maps

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultMapID is used when no vector map id is configured.
const DefaultMapID = "DEMO_MAP_ID"

// ErrNoAPIKey reports that the maps capability cannot be initialized. This
// is the one place in the service where a missing configuration surfaces as
// an error instead of a silent fallback; callers must handle it.
var ErrNoAPIKey = errors.New("maps: API key not configured")

// Capability is the initialized maps handle shared by all requesters.
type Capability struct {
	APIKey string
	MapID  string
}

// Loader initializes the maps capability exactly once. Concurrent callers
// share a single in-flight load; a successful result is cached forever, a
// failed load is discarded so the next call retries.
type Loader struct {
	apiKey string
	mapID  string

	mu   sync.Mutex
	call *loadCall
}

type loadCall struct {
	done chan struct{}
	cap  *Capability
	err  error
}

// NewLoader creates a Loader. mapID falls back to DefaultMapID.
func NewLoader(apiKey, mapID string) *Loader {
	if mapID == "" {
		mapID = DefaultMapID
	}
	return &Loader{apiKey: apiKey, mapID: mapID}
}

// Load returns the shared capability, initializing it on first use.
func (l *Loader) Load(ctx context.Context) (*Capability, error) {
	l.mu.Lock()
	call := l.call
	if call == nil {
		call = &loadCall{done: make(chan struct{})}
		l.call = call
		go l.run(call)
	}
	l.mu.Unlock()

	select {
	case <-call.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if call.err != nil {
		// Drop the failed call so a later request gets a fresh attempt.
		l.mu.Lock()
		if l.call == call {
			l.call = nil
		}
		l.mu.Unlock()
		return nil, call.err
	}
	return call.cap, nil
}

func (l *Loader) run(call *loadCall) {
	defer close(call.done)
	if l.apiKey == "" {
		call.err = ErrNoAPIKey
		return
	}
	call.cap = &Capability{APIKey: l.apiKey, MapID: l.mapID}
}

// EmbedURLFromCoords builds the map embed URL centered on a coordinate. With
// an API key the keyed embed API is used; without one the public maps query
// URL still renders a usable embed.
func EmbedURLFromCoords(lat, lng float64, apiKey string) string {
	if apiKey != "" {
		return fmt.Sprintf(
			"https://www.google.com/maps/embed/v1/view?key=%s&center=%v,%v&zoom=15&maptype=roadmap",
			apiKey, lat, lng,
		)
	}
	return fmt.Sprintf("https://maps.google.com/maps?q=%v,%v&z=15&output=embed", lat, lng)
}
