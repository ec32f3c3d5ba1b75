package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/suderio/netdust/internal/engine"
)

// ErrUnknownEvent is returned by Load for a journal line of an unknown type.
var ErrUnknownEvent = errors.New("unknown event type")

// EventWrapper serializes polymorphic engine events to JSONL.
type EventWrapper struct {
	Type engine.EventType `json:"type"`
	Time time.Time        `json:"time"`
	Data json.RawMessage  `json:"data"`
}

// Store handles append-only storage of engine events as JSONL.
type Store struct {
	file *os.File
}

// CreateStore creates a fresh journal at path, truncating an existing one
// and creating missing parent directories.
func CreateStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create event store: %w", err)
	}
	return &Store{file: file}, nil
}

// OpenStore opens an existing journal for reading and appending.
func OpenStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event store: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals an engine Event and appends it as a JSONL line.
func (s *Store) Append(evt engine.Event, at time.Time) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	line, err := json.Marshal(EventWrapper{Type: evt.Type(), Time: at, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal wrapper: %w", err)
	}

	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load reads every record of the journal in order.
func (s *Store) Load() ([]engine.Record, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var records []engine.Record
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}

		var wrapper EventWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode event wrapper: %w", n, err)
		}

		evt, err := unmarshalEvent(wrapper.Type, wrapper.Data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		records = append(records, engine.Record{Event: evt, Time: wrapper.Time})
	}

	return records, scanner.Err()
}

// Close flushes and closes the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}

// Replay rebuilds the run context recorded in the journal at path.
func Replay(path string) (*engine.Context, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	records, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load event log: %w", err)
	}

	ctx, err := engine.NewProjector().Build(records)
	if err != nil {
		return nil, fmt.Errorf("failed to project run context: %w", err)
	}
	return ctx, nil
}

// JournalPath returns the journal of one script when a single run covers
// count scripts. With more than one script the script's base name is put in
// front of the journal's extension: run.jsonl becomes run.intro.jsonl.
func JournalPath(journal, script string, count int) string {
	if count <= 1 {
		return journal
	}
	ext := filepath.Ext(journal)
	name := strings.TrimSuffix(filepath.Base(script), filepath.Ext(script))
	return strings.TrimSuffix(journal, ext) + "." + name + ext
}

// unmarshalEvent reconstructs a concrete Event from its type discriminator and JSON data.
func unmarshalEvent(typeName engine.EventType, data json.RawMessage) (engine.Event, error) {
	var evt engine.Event

	switch typeName {
	case engine.EventStarted:
		evt = &engine.StartedEvent{}
	case engine.EventLibraryBrought:
		evt = &engine.LibraryBroughtEvent{}
	case engine.EventVarDeclared:
		evt = &engine.VarDeclaredEvent{}
	case engine.EventNumDeclared:
		evt = &engine.NumDeclaredEvent{}
	case engine.EventVarSet:
		evt = &engine.VarSetEvent{}
	case engine.EventNumSet:
		evt = &engine.NumSetEvent{}
	case engine.EventPrinted:
		evt = &engine.PrintedEvent{}
	case engine.EventGetResolved:
		evt = &engine.GetResolvedEvent{}
	case engine.EventGetArgument:
		evt = &engine.GetArgumentEvent{}
	case engine.EventFound:
		evt = &engine.FoundEvent{}
	case engine.EventMade:
		evt = &engine.MadeEvent{}
	case engine.EventWritten:
		evt = &engine.WrittenEvent{}
	case engine.EventRecognized:
		evt = &engine.RecognizedEvent{}
	case engine.EventRoomEntered:
		evt = &engine.RoomEnteredEvent{}
	case engine.EventRoomClosed:
		evt = &engine.RoomClosedEvent{}
	case engine.EventRangeDeclared:
		evt = &engine.RangeDeclaredEvent{}
	case engine.EventNumDrawn:
		evt = &engine.NumDrawnEvent{}
	case engine.EventUnhandled:
		evt = &engine.UnhandledEvent{}
	case engine.EventFailed:
		evt = &engine.FailedEvent{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, typeName)
	}

	if err := json.Unmarshal(data, evt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", typeName, err)
	}
	return evt, nil
}
