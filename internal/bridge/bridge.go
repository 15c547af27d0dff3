// Package bridge models the host mobile shell's message channel as an
// injected capability. The shell exposes a postMessage/event-listener pair;
// here that is a Messenger the identity component acquires a subscription on
// for the duration of one request and releases before returning. A missing
// bridge is a recoverable condition: callers get the visitor sentinel, never
// an error.
package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// VisitorID identifies reports submitted outside the host-shell environment.
const VisitorID = "visitor"

const defaultTimeout = 3 * time.Second

// Envelope is the request/response frame exchanged with the host shell.
type Envelope struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// Messenger is the host-shell message channel. Post sends a frame to the
// shell; Subscribe registers a handler for frames coming back and returns a
// cancel func that must be called to release the registration.
type Messenger interface {
	Post(payload []byte) error
	Subscribe(handler func(payload []byte)) (cancel func())
}

// Identity resolves the current user's id through the shell bridge.
type Identity struct {
	messenger Messenger
	timeout   time.Duration
	logger    *slog.Logger
}

// NewIdentity creates an identity resolver. messenger may be nil when the
// service runs outside a host shell.
func NewIdentity(messenger Messenger, logger *slog.Logger) *Identity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Identity{
		messenger: messenger,
		timeout:   defaultTimeout,
		logger:    logger,
	}
}

// UserID requests the user identity from the shell and returns its id, or
// VisitorID when the bridge is absent, the shell does not answer in time, or
// the answer carries no id. The response subscription is released on return.
func (i *Identity) UserID(ctx context.Context) string {
	if i.messenger == nil {
		return VisitorID
	}

	result := make(chan string, 1)
	var once sync.Once

	cancel := i.messenger.Subscribe(func(payload []byte) {
		var envelope Envelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			i.logger.Warn("bridge frame malformed", "error", err)
			return
		}
		if envelope.Name != "userinfo" {
			return
		}
		var data struct {
			ID string `json:"id"`
		}
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, &data); err != nil {
				i.logger.Warn("bridge userinfo malformed", "error", err)
			}
		}
		once.Do(func() { result <- data.ID })
	})
	defer cancel()

	request, _ := json.Marshal(Envelope{Name: "userinfo"})
	if err := i.messenger.Post(request); err != nil {
		i.logger.Warn("bridge post failed", "error", err)
		return VisitorID
	}

	ctx, stop := context.WithTimeout(ctx, i.timeout)
	defer stop()

	select {
	case id := <-result:
		if id == "" {
			return VisitorID
		}
		return id
	case <-ctx.Done():
		i.logger.Warn("bridge identity request timed out")
		return VisitorID
	}
}
