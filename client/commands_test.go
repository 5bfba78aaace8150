package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/drawguess/network"
)

func reply(st *state, event, data string) (string, interface{}) {
	packet := &network.Packet{Event: event, Data: json.RawMessage(data)}
	return st.observe(packet, func(v interface{}) error { return json.Unmarshal(packet.Data, v) })
}

func TestParseLine(t *testing.T) {
	st := &state{}

	_, _, err := st.parseLine("hello")
	assert.Error(t, err, "chat needs a room")

	event, payload, err := st.parseLine("/create blending")
	require.NoError(t, err)
	assert.Equal(t, network.EventCreateRoom, event)
	assert.Equal(t, network.CreateRoomRequest{Category: "blending"}, payload)

	event, payload, err = st.parseLine("/join ab12cd")
	require.NoError(t, err)
	assert.Equal(t, network.EventJoinRoom, event)
	assert.Equal(t, network.RoomRequest{RoomCode: "AB12CD"}, payload)
	assert.Empty(t, st.roomCode, "not seated until joinedRoom")

	reply(st, network.EventJoinedRoom, `{"roomCode":"AB12CD"}`)

	_, _, err = st.parseLine("/name Ann Lee")
	require.NoError(t, err)

	event, payload, err = st.parseLine("  is it a cat  ")
	require.NoError(t, err)
	assert.Equal(t, network.EventChatMessage, event)
	assert.Equal(t, network.ChatRequest{RoomCode: "AB12CD", Message: "is it a cat", Username: "Ann Lee"}, payload)

	event, payload, err = st.parseLine("/prompt")
	require.NoError(t, err)
	assert.Equal(t, network.EventGetPrompt, event)
	assert.Equal(t, network.PromptRequest{RoomCode: "AB12CD", Category: "blending"}, payload)

	_, _, err = st.parseLine("/fly")
	assert.ErrorIs(t, err, errUsage)
	_, _, err = st.parseLine("/create")
	assert.ErrorIs(t, err, errUsage)
}

func TestObserve_CreatedRoomJoinsBeforeChatting(t *testing.T) {
	st := &state{}

	event, payload := reply(st, network.EventCreatedRoom, `{"roomCode":"QWERTY"}`)
	assert.Equal(t, network.EventJoinRoom, event)
	assert.Equal(t, network.RoomRequest{RoomCode: "QWERTY"}, payload)
	assert.Empty(t, st.roomCode)

	_, _, err := st.parseLine("hello")
	assert.Error(t, err)

	event, _ = reply(st, network.EventJoinedRoom, `{"roomCode":"QWERTY"}`)
	assert.Empty(t, event)
	assert.Equal(t, "QWERTY", st.roomCode)
}

func TestObserve_JoinErrorKeepsRoom(t *testing.T) {
	st := &state{roomCode: "QWERTY"}

	event, _ := reply(st, network.EventJoinRoomError, `{"reason":"room ZZZZZZ does not exist"}`)
	assert.Empty(t, event)
	assert.Equal(t, "QWERTY", st.roomCode)
}
