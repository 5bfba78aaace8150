package room

import (
	"fmt"
	"sort"
	"strings"
)

// Registry owns every live room keyed by code. It is not safe for
// concurrent use; game.Loop serializes access.
type Registry struct {
	rooms     map[string]*Room
	generator *CodeGenerator
	rules     Rules
}

func NewRegistry(generator *CodeGenerator, rules Rules) *Registry {
	if generator == nil {
		generator = NewCodeGenerator()
	}
	if rules.TotalRounds <= 0 {
		rules.TotalRounds = DefaultRules().TotalRounds
	}
	if rules.DrawerPoints <= 0 {
		rules.DrawerPoints = DefaultRules().DrawerPoints
	}
	return &Registry{
		rooms:     make(map[string]*Room),
		generator: generator,
		rules:     rules,
	}
}

// Create registers an empty room for category under a fresh code.
func (m *Registry) Create(category string) (*Room, error) {
	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("%w: no category selected", ErrInvalidRequest)
	}
	code, err := m.generator.Generate(m.Exists)
	if err != nil {
		return nil, fmt.Errorf("generate room code: %w", err)
	}
	room := newRoom(code, category, m.rules)
	m.rooms[code] = room
	return room, nil
}

func (m *Registry) Get(code string) (*Room, bool) {
	room, exists := m.rooms[code]
	return room, exists
}

func (m *Registry) Exists(code string) bool {
	_, exists := m.rooms[code]
	return exists
}

// Delete is a no-op for unknown codes.
func (m *Registry) Delete(code string) {
	delete(m.rooms, code)
}

// Join seats connectionID in the room. Joining twice is harmless.
func (m *Registry) Join(code, connectionID string) (*Room, error) {
	room, exists := m.rooms[code]
	if !exists {
		return nil, fmt.Errorf("%w: room %s does not exist", ErrRoomNotFound, code)
	}
	room.AddPlayer(connectionID)
	return room, nil
}

func (m *Registry) Len() int {
	return len(m.rooms)
}

// Codes returns the live room codes in sorted order.
func (m *Registry) Codes() []string {
	codes := make([]string, 0, len(m.rooms))
	for code := range m.rooms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// RoomsWith returns every room that seats connectionID, in code order.
func (m *Registry) RoomsWith(connectionID string) []*Room {
	var found []*Room
	for _, code := range m.Codes() {
		if room := m.rooms[code]; room.HasPlayer(connectionID) {
			found = append(found, room)
		}
	}
	return found
}
