package session

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/netdust/internal/engine"
)

func TestStoreAppendLoad(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "runs", "log.jsonl")

	store, err := CreateStore(logPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	if err := store.Append(&engine.VarDeclaredEvent{Name: "x", Value: "5"}, at); err != nil {
		t.Fatalf("failed to append var declared: %v", err)
	}
	if err := store.Append(&engine.NumDrawnEvent{Name: "n", Value: 4, Min: 1, Max: 6}, at.Add(time.Second)); err != nil {
		t.Fatalf("failed to append num drawn: %v", err)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records loaded, got %d", len(records))
	}

	e1, ok := records[0].Event.(*engine.VarDeclaredEvent)
	if !ok {
		t.Errorf("expected first event to be VarDeclaredEvent")
	} else if e1.Value != "5" {
		t.Errorf("expected value 5, got %s", e1.Value)
	}

	e2, ok := records[1].Event.(*engine.NumDrawnEvent)
	if !ok {
		t.Errorf("expected second event to be NumDrawnEvent")
	} else if e2.Value != 4 || e2.Max != 6 {
		t.Errorf("unexpected draw: %+v", e2)
	}

	if !records[1].Time.Equal(at.Add(time.Second)) {
		t.Errorf("expected the record time to survive, got %v", records[1].Time)
	}
}

func TestCreateStoreTruncates(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.jsonl")
	require.NoError(t, os.WriteFile(logPath, []byte(`{"type":"Started","time":"2026-01-01T00:00:00Z","data":{}}`+"\n"), 0644))

	store, err := CreateStore(logPath)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRejectsUnknownEvents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.jsonl")
	content := `{"type":"Started","time":"2026-01-01T00:00:00Z","data":{}}` + "\n\n" +
		`{"type":"Teleported","time":"2026-01-01T00:00:00Z","data":{}}` + "\n"
	require.NoError(t, os.WriteFile(logPath, []byte(content), 0644))

	store, err := OpenStore(logPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEvent))
	assert.Contains(t, err.Error(), "line 3")
}

func TestOpenStoreMissing(t *testing.T) {
	_, err := OpenStore(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestReplayReproducesRun(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.jsonl")
	store, err := CreateStore(logPath)
	require.NoError(t, err)

	script := "code start\nvar x {set \"5\"}\nnum hp {set 10}\nroom A {p}\ncd.rd(hp = 1~20)\n" +
		"set x = 6\nget = rk <a>\nend\ncd.rd(bad = 9~1)\nnope"

	ctx, err := New(Config{Seed: 11, Journal: store, Clock: fixedClock}).Execute(script)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	replayed, err := Replay(logPath)
	require.NoError(t, err)

	assert.Equal(t, ctx.Result(), replayed.Result())
	assert.False(t, replayed.Room.Inside())
}

func TestReplayKeepsInfiniteNums(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.jsonl")
	store, err := CreateStore(logPath)
	require.NoError(t, err)

	script := "num big {set 1e400}\nnum small {set 1}\nset small = -1e400"
	ctx, err := New(Config{Seed: 3, Journal: store, Clock: fixedClock}).Execute(script)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	replayed, err := Replay(logPath)
	require.NoError(t, err)

	big, _ := replayed.Nums.Get("big")
	assert.True(t, math.IsInf(big, 1))
	small, _ := replayed.Nums.Get("small")
	assert.True(t, math.IsInf(small, -1))
	assert.Equal(t, ctx.Lines(), replayed.Lines())
}

func TestJournalPath(t *testing.T) {
	assert.Equal(t, "run.jsonl", JournalPath("run.jsonl", "scripts/intro.rpp", 1))
	assert.Equal(t, "out/run.intro.jsonl", JournalPath("out/run.jsonl", "scripts/intro.rpp", 2))
	assert.Equal(t, "journal.intro", JournalPath("journal", "intro.nd", 3))
}
