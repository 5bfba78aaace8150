package room

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeat returns n copies of b, which crypto/rand.Int maps to codeChars[b]
// for b < 36.
func repeat(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func newTestRegistry() *Registry {
	return NewRegistry(NewCodeGenerator(), DefaultRules())
}

// newTestRoom builds a room seated with the given connection ids.
func newTestRoom(t *testing.T, ids ...string) *Room {
	t.Helper()
	room, err := newTestRegistry().Create("blending")
	require.NoError(t, err)
	for _, id := range ids {
		require.True(t, room.AddPlayer(id))
	}
	return room
}

func TestCodeGenerator_NoConfusables(t *testing.T) {
	g := NewCodeGenerator()
	for i := 0; i < 2000; i++ {
		code, err := g.Generate(nil)
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		assert.False(t, strings.ContainsAny(code, "0O1l"), "code %q has a confusable", code)
		assert.Equal(t, strings.ToUpper(code), code)
	}
}

func TestCodeGenerator_MapsConfusablesToPlaceholder(t *testing.T) {
	g := &CodeGenerator{Source: bytes.NewReader([]byte{0x00, 0x18, 0x01, 0x0A, 0x15, 0x23})}
	code, err := g.Generate(nil)
	require.NoError(t, err)
	assert.Equal(t, "XXXALZ", code)
}

func TestCodeGenerator_RetriesOnCollision(t *testing.T) {
	source := append(repeat(0x0A, CodeLength), repeat(0x0B, CodeLength)...)
	g := &CodeGenerator{Source: bytes.NewReader(source)}

	code, err := g.Generate(func(c string) bool { return c == "AAAAAA" })
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", code)
}

func TestCodeGenerator_SourceError(t *testing.T) {
	g := &CodeGenerator{Source: bytes.NewReader(nil)}
	_, err := g.Generate(nil)
	assert.Error(t, err)
}

func TestRegistry_CreateDefaults(t *testing.T) {
	m := newTestRegistry()
	room, err := m.Create("blending")
	require.NoError(t, err)

	assert.Len(t, room.Code, CodeLength)
	assert.Equal(t, "blending", room.Category)
	assert.Empty(t, room.Players)
	assert.Empty(t, room.Scores)
	assert.Equal(t, 0, room.DrawerIndex)
	assert.Equal(t, 1, room.CurrentRound)
	assert.Equal(t, 3, room.TotalRounds)
	assert.Equal(t, "", room.Prompt)

	got, ok := m.Get(room.Code)
	require.True(t, ok)
	assert.Same(t, room, got)
}

func TestRegistry_CreateRejectsBlankCategory(t *testing.T) {
	m := newTestRegistry()
	for _, category := range []string{"", "   "} {
		_, err := m.Create(category)
		assert.True(t, errors.Is(err, ErrInvalidRequest))
	}
	assert.Equal(t, 0, m.Len())
}

func TestRegistry_CreateNeverReusesLiveCode(t *testing.T) {
	source := append(repeat(0x0A, CodeLength), repeat(0x0A, CodeLength)...)
	source = append(source, repeat(0x0C, CodeLength)...)
	m := NewRegistry(&CodeGenerator{Source: bytes.NewReader(source)}, DefaultRules())

	first, err := m.Create("blending")
	require.NoError(t, err)
	second, err := m.Create("hatching")
	require.NoError(t, err)

	assert.Equal(t, "AAAAAA", first.Code)
	assert.Equal(t, "CCCCCC", second.Code)
	assert.Equal(t, 2, m.Len())
}

func TestRegistry_DeleteIsIdempotent(t *testing.T) {
	m := newTestRegistry()
	room, err := m.Create("blending")
	require.NoError(t, err)

	m.Delete(room.Code)
	m.Delete(room.Code)

	_, ok := m.Get(room.Code)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestRegistry_Join(t *testing.T) {
	m := newTestRegistry()
	room, err := m.Create("blending")
	require.NoError(t, err)

	_, err = m.Join("NOPE22", "c1")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = m.Join(room.Code, "c1")
	require.NoError(t, err)
	_, err = m.Join(room.Code, "c1")
	require.NoError(t, err)

	assert.Len(t, room.Players, 1)
	assert.Equal(t, map[string]int{"c1": 0}, room.Scores)
}

func TestRegistry_RoomsWith(t *testing.T) {
	m := newTestRegistry()
	a, _ := m.Create("blending")
	b, _ := m.Create("hatching")
	m.Create("stippling")
	a.AddPlayer("c1")
	b.AddPlayer("c1")
	b.AddPlayer("c2")

	assert.Len(t, m.RoomsWith("c1"), 2)
	assert.Equal(t, []*Room{b}, m.RoomsWith("c2"))
	assert.Empty(t, m.RoomsWith("c3"))
	assert.Len(t, m.Codes(), 3)
}

func TestRoom_SnapshotFallsBackToConnectionID(t *testing.T) {
	room := newTestRoom(t, "c1", "c2")
	assert.True(t, room.SetDisplayName("c2", "bea"))
	assert.False(t, room.SetDisplayName("stranger", "x"))
	room.Scores["c1"] = 1000

	s := room.Snapshot()
	assert.Equal(t, "blending", s.Category)
	assert.Equal(t, "c1", s.DrawerID)
	assert.Equal(t, []PlayerScore{
		{ConnectionID: "c1", Label: "c1", Points: 1000},
		{ConnectionID: "c2", Label: "bea", Points: 0},
	}, s.Players)
}

func TestRoom_SnapshotEmptyRoster(t *testing.T) {
	s := newTestRoom(t).Snapshot()
	assert.Empty(t, s.DrawerID)
	assert.Empty(t, s.Players)
}
