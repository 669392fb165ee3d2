// Package telemetry emits best-effort usage events. A sink failure disables
// emission for the rest of the process; telemetry never surfaces as a
// command failure.
package telemetry

import (
	"encoding/hex"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"chore/internal/log"
)

// Event is a single telemetry record.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	DistinctID string         `json:"distinct_id"`
	App        string         `json:"app"`
	Version    string         `json:"version"`
	Props      map[string]any `json:"props,omitempty"`
	Time       time.Time      `json:"time"`
}

// Client tracks events through a sink. After the first sink failure the
// client swaps in Discard and stays quiet for the rest of the run.
type Client struct {
	sink       Sink
	distinctID string
	app        string
	version    string
	disabled   bool
	debug      bool
}

// Option configures a Client.
type Option func(*Client)

// WithSink overrides the default HTTP sink.
func WithSink(s Sink) Option {
	return func(c *Client) { c.sink = s }
}

// New builds a telemetry client. DO_NOT_TRACK disables it entirely.
func New(app, version string, opts ...Option) *Client {
	c := &Client{
		sink:       NewHTTPSink(endpointFromEnv()),
		distinctID: distinctID(),
		app:        app,
		version:    version,
		debug:      os.Getenv("CHORE_TELEMETRY_DEBUG") != "",
	}
	if os.Getenv("DO_NOT_TRACK") != "" {
		c.disabled = true
		c.sink = Discard{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Track emits one event. Errors are swallowed; the first failure disables
// the sink with an optional one-time debug notice.
func (c *Client) Track(name string, props map[string]any) {
	if c == nil || c.disabled {
		return
	}
	ev := Event{
		ID:         uuid.NewString(),
		Name:       name,
		DistinctID: c.distinctID,
		App:        c.app,
		Version:    c.version,
		Props:      props,
		Time:       time.Now().UTC(),
	}
	if err := c.sink.Send(ev); err != nil {
		c.disabled = true
		c.sink = Discard{}
		if c.debug {
			log.WithComponent("telemetry").Warn("sink failed, telemetry disabled for this run", "error", err)
		}
	}
}

// Instrument wraps a command handler with started/succeeded/failed events.
// The handler's error is returned unchanged.
func (c *Client) Instrument(name string, h func() error) func() error {
	return func() error {
		c.Track("command_started", map[string]any{"command": name})
		start := time.Now()
		err := h()
		duration := time.Since(start).Milliseconds()
		if err != nil {
			c.Track("command_failed", map[string]any{
				"command":     name,
				"duration_ms": duration,
				"error":       err.Error(),
			})
			return err
		}
		c.Track("command_succeeded", map[string]any{
			"command":     name,
			"duration_ms": duration,
		})
		return nil
	}
}

// distinctID is a stable anonymous machine identifier: a blake3 hash of
// hostname and username. Nothing reversible leaves the machine.
func distinctID() string {
	host, _ := os.Hostname()
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	sum := blake3.Sum256([]byte(host + "\x00" + name))
	return hex.EncodeToString(sum[:16])
}
