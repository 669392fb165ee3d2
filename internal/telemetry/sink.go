package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// defaultEndpoint receives event batches of one. Overridable for
// self-hosted collectors via CHORE_TELEMETRY_ENDPOINT.
const defaultEndpoint = "https://telemetry.chore.dev/v1/events"

const sendTimeout = 3 * time.Second

// Sink delivers a single event.
type Sink interface {
	Send(Event) error
}

// Discard is the no-op sink substituted after a transport failure.
type Discard struct{}

// Send drops the event.
func (Discard) Send(Event) error { return nil }

// HTTPSink posts events as JSON.
type HTTPSink struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSink builds an HTTP sink for the given endpoint.
func NewHTTPSink(endpoint string) *HTTPSink {
	return &HTTPSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: sendTimeout},
	}
}

// Send posts one event. Any non-2xx response is an error so the client can
// disable itself.
func (s *HTTPSink) Send(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	resp, err := s.client.Post(s.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post event: status %d", resp.StatusCode)
	}
	return nil
}

func endpointFromEnv() string {
	if ep := os.Getenv("CHORE_TELEMETRY_ENDPOINT"); ep != "" {
		return ep
	}
	return defaultEndpoint
}
