package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/benched/internal/services/roster"
)

// RosterUpdateEvent is the SSE event name carrying a roster snapshot
const RosterUpdateEvent = "roster-update"

// Broadcaster pushes roster snapshots to the hub
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Attach broadcasts every change made to store. The returned func detaches.
func (b *Broadcaster) Attach(store *roster.Store) func() {
	return store.Subscribe(b.BroadcastSnapshot)
}

// BroadcastSnapshot sends snap to every connected client
func (b *Broadcaster) BroadcastSnapshot(snap roster.Snapshot) {
	msg, err := SnapshotMessage(snap)
	if err != nil {
		b.logger.Error("sse failed to encode roster", slog.Any("error", err))
		return
	}
	b.hub.Broadcast(msg)
}

// SnapshotMessage encodes snap as a complete roster-update SSE message
func SnapshotMessage(snap roster.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(RosterUpdateEvent, string(data)), nil
}
