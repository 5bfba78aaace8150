package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wfunc/drawguess/network"
)

var errUsage = errors.New("usage")

// state tracks the room and name the client is using so commands can omit them.
type state struct {
	roomCode string
	category string
	username string
}

// parseLine turns one line of input into an outbound event. Lines that do not
// start with "/" are chat messages for the current room.
func (s *state) parseLine(line string) (string, interface{}, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, errUsage
	}
	if !strings.HasPrefix(line, "/") {
		if s.roomCode == "" {
			return "", nil, fmt.Errorf("join a room before chatting")
		}
		return network.EventChatMessage, network.ChatRequest{
			RoomCode: s.roomCode,
			Message:  line,
			Username: s.username,
		}, nil
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "/create":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("%w: /create <category>", errUsage)
		}
		s.category = args[0]
		return network.EventCreateRoom, network.CreateRoomRequest{Category: args[0]}, nil
	case "/join":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("%w: /join <code>", errUsage)
		}
		return network.EventJoinRoom, network.RoomRequest{RoomCode: strings.ToUpper(args[0])}, nil
	case "/leave":
		code := s.roomCode
		s.roomCode = ""
		return network.EventLeaveRoom, network.RoomRequest{RoomCode: code}, nil
	case "/details":
		return network.EventGetRoomDetails, network.RoomRequest{RoomCode: s.roomCode}, nil
	case "/start":
		return network.EventStartGame, network.RoomRequest{RoomCode: s.roomCode}, nil
	case "/prompt":
		return network.EventGetPrompt, network.PromptRequest{RoomCode: s.roomCode, Category: s.category}, nil
	case "/name":
		if len(args) == 0 {
			return "", nil, fmt.Errorf("%w: /name <username>", errUsage)
		}
		s.username = strings.Join(args, " ")
		return network.EventSetUser, network.SetUserRequest{RoomCode: s.roomCode, Username: s.username}, nil
	default:
		return "", nil, fmt.Errorf("%w: unknown command %s", errUsage, cmd)
	}
}

// observe updates the state from server replies. Creating a room does not
// seat the creator, so createdRoom yields a joinRoom to send next. The
// room code is only adopted once joinedRoom confirms the seat.
func (s *state) observe(packet *network.Packet, decode func(interface{}) error) (string, interface{}) {
	switch packet.Event {
	case network.EventCreatedRoom:
		var reply network.RoomCodeReply
		if decode(&reply) == nil && reply.RoomCode != "" {
			return network.EventJoinRoom, network.RoomRequest{RoomCode: reply.RoomCode}
		}
	case network.EventJoinedRoom:
		var reply network.RoomCodeReply
		if decode(&reply) == nil && reply.RoomCode != "" {
			s.roomCode = reply.RoomCode
		}
	case network.EventRoomDetails:
		var details network.RoomDetails
		if decode(&details) == nil && details.Category != "" {
			s.category = details.Category
		}
	}
	return "", nil
}
