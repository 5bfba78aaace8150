// broadcast/broadcast.go
package broadcast

import (
	"sync"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/session"
)

// RoomBroadcaster delivers events to single sessions or to every session
// subscribed to a room code. Delivery is fire-and-forget.
type RoomBroadcaster struct {
	sessionManager *session.Manager
	groups         map[string]map[string]struct{} // room code -> session IDs
	mutex          sync.RWMutex
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
		groups:         make(map[string]map[string]struct{}),
	}
}

func (b *RoomBroadcaster) Subscribe(roomCode, sessionID string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	members, ok := b.groups[roomCode]
	if !ok {
		members = make(map[string]struct{})
		b.groups[roomCode] = members
	}
	members[sessionID] = struct{}{}
}

func (b *RoomBroadcaster) Unsubscribe(roomCode, sessionID string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if members, ok := b.groups[roomCode]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(b.groups, roomCode)
		}
	}
}

// DropRoom forgets every subscription for a room.
func (b *RoomBroadcaster) DropRoom(roomCode string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	delete(b.groups, roomCode)
}

// Members returns the session IDs subscribed to a room.
func (b *RoomBroadcaster) Members(roomCode string) []string {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	ids := make([]string, 0, len(b.groups[roomCode]))
	for id := range b.groups[roomCode] {
		ids = append(ids, id)
	}
	return ids
}

func (b *RoomBroadcaster) ToConnection(sessionID, event string, payload interface{}) {
	frame, err := network.Encode(event, payload)
	if err != nil {
		logger.Log.Errorf("Failed to encode %s: %v", event, err)
		return
	}
	b.send(sessionID, event, frame)
}

func (b *RoomBroadcaster) ToRoom(roomCode, event string, payload interface{}) {
	frame, err := network.Encode(event, payload)
	if err != nil {
		logger.Log.Errorf("Failed to encode %s: %v", event, err)
		return
	}
	for _, id := range b.Members(roomCode) {
		b.send(id, event, frame)
	}
}

func (b *RoomBroadcaster) send(sessionID, event string, frame []byte) {
	s, ok := b.sessionManager.Get(sessionID)
	if !ok {
		return
	}
	if err := s.Send(frame); err != nil {
		logger.Log.Warnf("Dropped %s for session %s: %v", event, sessionID, err)
	}
}
