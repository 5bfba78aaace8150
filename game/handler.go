package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
)

// Event is one inbound client event.
type Event struct {
	ConnectionID string
	Name         string
	Data         json.RawMessage
}

// Handler applies client events to the room registry and publishes the
// outcome. Its methods must only be called from the goroutine running Loop
// (or from tests that own the handler exclusively).
type Handler struct {
	rooms       *room.Registry
	broadcaster Broadcaster
	prompts     PromptSource
	metrics     Metrics
	recorder    Recorder
}

type Option func(*Handler)

func WithMetrics(m Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

func WithRecorder(r Recorder) Option {
	return func(h *Handler) { h.recorder = r }
}

func NewHandler(rooms *room.Registry, broadcaster Broadcaster, prompts PromptSource, opts ...Option) *Handler {
	h := &Handler{
		rooms:       rooms,
		broadcaster: broadcaster,
		prompts:     prompts,
		metrics:     nopMetrics{},
		recorder:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry exposes the rooms for read-only queries run inside the loop.
func (h *Handler) Registry() *room.Registry {
	return h.rooms
}

// Dispatch decodes an event and runs the matching handler. Malformed and
// unknown events are logged and dropped. It reports whether the event name
// is part of the protocol.
func (h *Handler) Dispatch(ev Event) bool {
	decode := func(v interface{}) bool {
		if len(ev.Data) == 0 {
			return true
		}
		if err := json.Unmarshal(ev.Data, v); err != nil {
			logger.Log.Warnf("Session %s sent malformed %s: %v", ev.ConnectionID, ev.Name, err)
			return false
		}
		return true
	}

	switch ev.Name {
	case network.EventCreateRoom:
		var req network.CreateRoomRequest
		if decode(&req) {
			h.CreateRoom(ev.ConnectionID, req.Category)
		}
	case network.EventJoinRoom:
		var req network.RoomRequest
		if decode(&req) {
			h.JoinRoom(ev.ConnectionID, req.RoomCode)
		}
	case network.EventLeaveRoom:
		var req network.RoomRequest
		if decode(&req) {
			h.LeaveRoom(ev.ConnectionID, req.RoomCode)
		}
	case network.EventGetRoomDetails:
		var req network.RoomRequest
		if decode(&req) {
			h.RoomDetails(ev.ConnectionID, req.RoomCode)
		}
	case network.EventStartGame:
		var req network.RoomRequest
		if decode(&req) {
			h.StartGame(ev.ConnectionID, req.RoomCode)
		}
	case network.EventGetPrompt:
		var req network.PromptRequest
		if decode(&req) {
			h.NewPrompt(ev.ConnectionID, req.RoomCode, req.Category)
		}
	case network.EventCanvasImageData:
		var req network.CanvasRequest
		if decode(&req) {
			h.CanvasImageData(ev.ConnectionID, req.RoomCode, req.ImageData)
		}
	case network.EventSetUser:
		var req network.SetUserRequest
		if decode(&req) {
			h.SetUser(ev.ConnectionID, req.RoomCode, req.Username)
		}
	case network.EventChatMessage:
		var req network.ChatRequest
		if decode(&req) {
			h.ChatMessage(ev.ConnectionID, req.RoomCode, req.Message, req.Username)
		}
	default:
		logger.Log.Infof("Unknown event %q from session %s", ev.Name, ev.ConnectionID)
		return false
	}
	return true
}

func (h *Handler) CreateRoom(connID, category string) {
	r, err := h.rooms.Create(category)
	if err != nil {
		reason := "could not create room"
		if errors.Is(err, room.ErrInvalidRequest) {
			reason = "no category selected"
		}
		logger.Log.Warnf("Session %s could not create room: %v", connID, err)
		h.broadcaster.ToConnection(connID, network.EventCreateRoomError, network.ErrorReply{Reason: reason})
		return
	}

	logger.Log.Infof("Session %s created room %s (%s)", connID, r.Code, r.Category)
	h.metrics.SetActiveRooms(h.rooms.Len())
	h.broadcaster.ToConnection(connID, network.EventCreatedRoom, network.RoomCodeReply{RoomCode: r.Code})
}

func (h *Handler) JoinRoom(connID, code string) {
	if _, err := h.rooms.Join(code, connID); err != nil {
		h.broadcaster.ToConnection(connID, network.EventJoinRoomError,
			network.ErrorReply{Reason: fmt.Sprintf("room %s does not exist", code)})
		return
	}

	h.broadcaster.Subscribe(code, connID)
	logger.Log.Infof("Session %s joined room %s", connID, code)
	h.broadcaster.ToConnection(connID, network.EventJoinedRoom, network.RoomCodeReply{RoomCode: code})
}

// LeaveRoom removes connID from one room with the same cleanup as a disconnect.
func (h *Handler) LeaveRoom(connID, code string) {
	r, ok := h.rooms.Get(code)
	if !ok || !r.HasPlayer(connID) {
		return
	}
	h.removeFrom(r, connID)
	h.broadcaster.ToConnection(connID, network.EventLeftRoom, network.RoomCodeReply{RoomCode: code})
}

// Disconnect removes connID from every room that seats it.
func (h *Handler) Disconnect(connID string) {
	for _, r := range h.rooms.RoomsWith(connID) {
		h.removeFrom(r, connID)
	}
}

func (h *Handler) removeFrom(r *room.Room, connID string) {
	left, ok := r.RemovePlayer(connID)
	if !ok {
		return
	}
	h.broadcaster.Unsubscribe(r.Code, connID)
	logger.Log.Infof("Session %s left room %s", connID, r.Code)

	h.broadcaster.ToRoom(r.Code, network.EventChatMessage, network.ChatMessage{
		Sender:  network.SystemSender,
		Message: fmt.Sprintf("%s left the room", left.Label()),
	})
	if r.IsEmpty() {
		h.deleteRoom(r.Code)
	}
}

func (h *Handler) deleteRoom(code string) {
	h.rooms.Delete(code)
	h.broadcaster.DropRoom(code)
	h.metrics.SetActiveRooms(h.rooms.Len())
	logger.Log.Infof("Room %s deleted", code)
}

// RoomDetails publishes the room snapshot to every member.
func (h *Handler) RoomDetails(connID, code string) {
	r, ok := h.rooms.Get(code)
	if !ok {
		h.broadcaster.ToConnection(connID, network.EventNoRoom,
			network.ErrorReply{Reason: fmt.Sprintf("no room %s", code)})
		return
	}
	h.publishDetails(r)
}

func (h *Handler) publishDetails(r *room.Room) {
	h.broadcaster.ToRoom(r.Code, network.EventRoomDetails, detailsPayload(r.Snapshot()))
}

func detailsPayload(s room.Snapshot) network.RoomDetails {
	return network.RoomDetails{
		Players:  scorePayload(s.Players),
		Category: s.Category,
		DrawerID: s.DrawerID,
	}
}

func scorePayload(board []room.PlayerScore) []network.PlayerScore {
	players := make([]network.PlayerScore, 0, len(board))
	for _, p := range board {
		players = append(players, network.PlayerScore{Username: p.Label, Points: p.Points})
	}
	return players
}

// StartGame reports whether gameStarted was sent. Non-members are ignored.
func (h *Handler) StartGame(connID, code string) bool {
	r, ok := h.rooms.Get(code)
	if !ok || !r.HasPlayer(connID) {
		return false
	}
	logger.Log.Infof("Room %s started the game", code)
	h.broadcaster.ToRoom(code, network.EventGameStarted, nil)
	return true
}

// NewPrompt draws a word for the room and announces it.
func (h *Handler) NewPrompt(connID, code, category string) {
	if category == "" {
		h.broadcaster.ToConnection(connID, network.EventNoPrompts, network.ErrorReply{Reason: "no category"})
		return
	}
	r, ok := h.rooms.Get(code)
	if !ok || r.Category != category {
		h.broadcaster.ToConnection(connID, network.EventNoRoom,
			network.ErrorReply{Reason: fmt.Sprintf("no room %s or incorrect category", code)})
		return
	}
	word, ok := h.prompts.Prompt(category)
	if !ok {
		h.broadcaster.ToConnection(connID, network.EventNoPrompts,
			network.ErrorReply{Reason: "error when generating prompt"})
		return
	}
	r.SetPrompt(word)
	h.broadcaster.ToRoom(code, network.EventNewPrompt, network.NewPrompt{Word: word})
}

// CanvasImageData relays drawing data from the current drawer only.
func (h *Handler) CanvasImageData(connID, code string, imageData json.RawMessage) {
	r, ok := h.rooms.Get(code)
	if !ok || !r.IsDrawer(connID) {
		return
	}
	h.broadcaster.ToRoom(code, network.EventGetImageData, network.ImageData{ImageData: imageData})
}

func (h *Handler) SetUser(connID, code, username string) {
	r, ok := h.rooms.Get(code)
	if !ok {
		return
	}
	r.SetDisplayName(connID, username)
	h.publishDetails(r)
}

// ChatMessage relays a chat line, then checks it against the prompt. A
// correct guess runs the whole turn transaction before returning.
func (h *Handler) ChatMessage(connID, code, message, username string) {
	r, ok := h.rooms.Get(code)
	if !ok {
		return
	}
	sender, ok := r.Player(connID)
	if !ok {
		return
	}
	if username == "" {
		username = sender.Label()
	}

	h.broadcaster.ToRoom(code, network.EventChatMessage, network.ChatMessage{Sender: username, Message: message})
	logger.Log.Debugf("Room %s %s: %s", code, username, message)

	if !r.Evaluate(connID, message) {
		return
	}

	logger.Log.Infof("Session %s guessed the prompt in room %s", connID, code)
	h.metrics.IncCorrectGuesses()
	h.broadcaster.ToRoom(code, network.EventChatMessage, network.ChatMessage{
		Sender:  network.SystemSender,
		Message: fmt.Sprintf("%s guessed correctly!", username),
	})

	res := r.AdvanceAfterCorrectGuess()
	if !res.Advanced {
		return
	}

	h.broadcaster.ToRoom(code, network.EventUpdatePoints, network.UpdatePoints{
		Player: res.Drawer.Label(),
		Points: res.DrawerPoints,
	})

	if res.Finished {
		h.finish(r, res.Scoreboard)
		return
	}

	h.broadcaster.ToRoom(code, network.EventDrawerChanged, network.DrawerChanged{
		NewDrawerIndex: res.NewDrawerIndex,
		NewDrawerID:    res.NewDrawer.ConnectionID,
		NewDrawerName:  res.NewDrawer.DisplayName,
	})
}

func (h *Handler) finish(r *room.Room, board []room.PlayerScore) {
	points := make(map[string]int, len(board))
	for _, p := range board {
		points[p.ConnectionID] = p.Points
	}
	h.broadcaster.ToRoom(r.Code, network.EventGameFinished, network.GameFinished{
		Points:  points,
		Players: scorePayload(board),
	})

	logger.Log.Infof("Room %s finished after %d rounds", r.Code, r.TotalRounds)
	h.metrics.IncGamesFinished()
	h.recorder.RecordGame(gameRecord(r, board))
	h.deleteRoom(r.Code)
}

func gameRecord(r *room.Room, board []room.PlayerScore) models.GameRecord {
	players := make([]models.PlayerResult, 0, len(board))
	for _, p := range board {
		players = append(players, models.PlayerResult{
			ConnectionID: p.ConnectionID,
			Name:         p.Label,
			Points:       p.Points,
		})
	}
	return models.GameRecord{
		RoomCode:    r.Code,
		Category:    r.Category,
		TotalRounds: r.TotalRounds,
		Players:     players,
		FinishedAt:  time.Now(),
	}
}
