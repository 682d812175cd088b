package sse

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/benched/internal/dependencies/mocks"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/persist"
	"github.com/mcoot/benched/internal/services/roster"
	"github.com/mcoot/benched/internal/storage/memory"
	"github.com/mcoot/benched/internal/testutil"
)

func TestSnapshotMessage(t *testing.T) {
	snap := roster.Snapshot{
		Players:  []model.Player{{ID: "a", Name: "Amy", Active: true}},
		TeamSize: 2,
	}

	msg, err := SnapshotMessage(snap)
	if err != nil {
		t.Fatalf("SnapshotMessage: %v", err)
	}

	text := string(msg)
	if !strings.HasPrefix(text, "event: roster-update\ndata: ") {
		t.Fatalf("unexpected message framing: %q", text)
	}

	payload := strings.TrimSuffix(strings.TrimPrefix(text, "event: roster-update\ndata: "), "\n\n")
	var decoded roster.Snapshot
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("payload is not a snapshot: %v", err)
	}
	if decoded.TeamSize != 2 || len(decoded.Players) != 1 || decoded.Players[0].Name != "Amy" {
		t.Errorf("decoded snapshot mismatch: %+v", decoded)
	}
}

func TestBroadcaster_AttachBroadcastsStoreChanges(t *testing.T) {
	hub := newRunningHub(t)
	client := NewClient()
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	storage := memory.NewWithPlayers([]model.Player{{ID: "amy", Name: "Amy", Active: true}})
	writer := persist.New(storage, persist.Config{}, testutil.NopLogger())
	defer func() { _ = writer.Close() }()
	store := roster.New(storage, writer,
		mocks.NewMockClock(time.Now()), mocks.NewMockRandom(), mocks.NewSequentialIDs(), 2, testutil.NopLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	detach := NewBroadcaster(hub, testutil.NopLogger()).Attach(store)
	defer detach()

	if _, err := store.ToggleActive("amy"); err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}

	select {
	case msg := <-client.send:
		if !strings.Contains(string(msg), "event: roster-update") {
			t.Errorf("unexpected event: %q", string(msg))
		}
		if !strings.Contains(string(msg), `"benched":[{"id":"amy"`) {
			t.Errorf("snapshot does not show Amy benched: %q", string(msg))
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive roster update")
	}
}
