package game

import (
	"sync"

	"github.com/wfunc/drawguess/models"
)

// sent is one delivery recorded by recordingBroadcaster. Room is set for
// room broadcasts, Conn for direct replies.
type sent struct {
	Room    string
	Conn    string
	Event   string
	Payload interface{}
}

type recordingBroadcaster struct {
	mu      sync.Mutex
	sent    []sent
	members map[string]map[string]bool
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{members: make(map[string]map[string]bool)}
}

func (b *recordingBroadcaster) ToConnection(connID, event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sent{Conn: connID, Event: event, Payload: payload})
}

func (b *recordingBroadcaster) ToRoom(code, event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sent{Room: code, Event: event, Payload: payload})
}

func (b *recordingBroadcaster) Subscribe(code, connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.members[code] == nil {
		b.members[code] = make(map[string]bool)
	}
	b.members[code][connID] = true
}

func (b *recordingBroadcaster) Unsubscribe(code, connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.members[code], connID)
}

func (b *recordingBroadcaster) DropRoom(code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.members, code)
}

// take returns and clears everything recorded so far.
func (b *recordingBroadcaster) take() []sent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.sent
	b.sent = nil
	return out
}

func (b *recordingBroadcaster) events(list []sent) []string {
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Event)
	}
	return names
}

type fixedPrompts struct {
	word string
}

func (f fixedPrompts) Prompt(category string) (string, bool) {
	if f.word == "" {
		return "", false
	}
	return f.word, true
}

type countingMetrics struct {
	activeRooms    int
	correctGuesses int
	gamesFinished  int
}

func (m *countingMetrics) SetActiveRooms(n int) { m.activeRooms = n }
func (m *countingMetrics) IncCorrectGuesses()   { m.correctGuesses++ }
func (m *countingMetrics) IncGamesFinished()    { m.gamesFinished++ }

type capturingRecorder struct {
	mu      sync.Mutex
	records []models.GameRecord
}

func (r *capturingRecorder) RecordGame(record models.GameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}
