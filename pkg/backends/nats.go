package backends

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/faultline-dev/faultline/pkg/faultline"
)

// DefaultSubjectPrefix is used when NewNATSPublisher is given an empty
// prefix.
const DefaultSubjectPrefix = "faultline.events"

// NATSPublisher is a faultline.Listener that forwards events to NATS
// subjects of the form <prefix>.<session>.<event_type>. Register it with
// AddListener for each event type of interest:
//
//	pub := backends.NewNATSPublisher(nc, "", sys.SessionID())
//	for _, t := range faultline.EventTypes() {
//		sys.AddListener(t, pub)
//	}
//
// Delivery is synchronous on the logging goroutine; publish failures are
// reported through the optional error callback, never panicked, since
// listeners must be panic-free.
type NATSPublisher struct {
	conn      *nats.Conn
	prefix    string
	sessionID string

	// OnError, when set, receives publish failures.
	OnError func(error)
}

// eventPayload is the wire form of one event.
type eventPayload struct {
	Type      string                  `json:"type"`
	SessionID string                  `json:"session_id"`
	Time      string                  `json:"time"`
	Log       *faultline.ExportRecord `json:"log,omitempty"`
}

// NewNATSPublisher creates a publisher over an established connection.
// The caller owns the connection lifecycle.
func NewNATSPublisher(conn *nats.Conn, prefix, sessionID string) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{
		conn:      conn,
		prefix:    prefix,
		sessionID: sessionID,
	}
}

// Subject returns the subject events of type t are published to.
func (p *NATSPublisher) Subject(t faultline.EventType) string {
	return p.prefix + "." + p.sessionID + "." + string(t)
}

// HandleEvent implements faultline.Listener.
func (p *NATSPublisher) HandleEvent(ev faultline.Event) {
	data, err := p.Encode(ev)
	if err != nil {
		p.fail(err)
		return
	}
	if err := p.conn.Publish(p.Subject(ev.Type), data); err != nil {
		p.fail(errors.Wrap(err, "publish event"))
	}
}

// Encode builds the JSON payload for one event.
func (p *NATSPublisher) Encode(ev faultline.Event) ([]byte, error) {
	payload := eventPayload{
		Type:      string(ev.Type),
		SessionID: p.sessionID,
		Time:      ev.Time.UTC().Format(time.RFC3339Nano),
	}
	if ev.Log != nil {
		rec := faultline.RecordOf(*ev.Log)
		payload.Log = &rec
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode event payload")
	}
	return data, nil
}

// Flush waits for published events to reach the server.
func (p *NATSPublisher) Flush() error {
	return p.conn.Flush()
}

func (p *NATSPublisher) fail(err error) {
	if p.OnError != nil {
		p.OnError(err)
	}
}
