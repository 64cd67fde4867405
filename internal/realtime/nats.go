package realtime

import (
	"encoding/json"
	"fmt"

	"jobsite/pkg"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSBridge subscribes to view invalidation events and pushes them into the Hub.
type NATSBridge struct {
	conn   *nats.Conn
	hub    *Hub
	logger zerolog.Logger
}

func NewNATSBridge(natsURL string, hub *Hub, logger zerolog.Logger) (*NATSBridge, error) {
	nc, err := nats.Connect(natsURL, nats.Name("jobsite-realtime"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBridge{conn: nc, hub: hub, logger: logger}, nil
}

// Subscribe listens on pkg.InvalidationSubject.
func (b *NATSBridge) Subscribe() error {
	_, err := b.conn.Subscribe(pkg.InvalidationSubject, func(msg *nats.Msg) {
		b.dispatch(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", pkg.InvalidationSubject, err)
	}

	b.logger.Info().Str("subject", pkg.InvalidationSubject).Msg("NATS bridge subscribed")
	return nil
}

func (b *NATSBridge) dispatch(data []byte) {
	paths, err := decodePaths(data)
	if err != nil {
		b.logger.Warn().Err(err).Msg("nats: bad invalidation payload")
		return
	}
	for _, path := range paths {
		payload, err := json.Marshal(outgoingMsg{Type: "view.stale", Path: path})
		if err != nil {
			continue
		}
		b.hub.Publish(path, payload)
	}
}

// Close drains the NATS connection.
func (b *NATSBridge) Close() {
	if err := b.conn.Drain(); err != nil {
		b.logger.Warn().Err(err).Msg("nats drain")
	}
}

// decodePaths reads the JSON array of view paths published by pkg.NATSInvalidator.
func decodePaths(data []byte) ([]string, error) {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("decode paths: %w", err)
	}
	return paths, nil
}
