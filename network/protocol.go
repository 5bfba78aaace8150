package network

import "encoding/json"

// Inbound events.
const (
	EventCreateRoom      = "createRoom"
	EventJoinRoom        = "joinRoom"
	EventLeaveRoom       = "leaveRoom"
	EventGetRoomDetails  = "getRoomDetails"
	EventStartGame       = "startGame"
	EventGetPrompt       = "getPrompt"
	EventCanvasImageData = "canvasImageData"
	EventSetUser         = "setUser"
	EventChatMessage     = "chatMessage"
)

// Outbound events. EventChatMessage is used in both directions.
const (
	EventCreatedRoom     = "createdRoom"
	EventCreateRoomError = "createRoomError"
	EventJoinedRoom      = "joinedRoom"
	EventJoinRoomError   = "joinRoomError"
	EventLeftRoom        = "leftRoom"
	EventRoomDetails     = "roomDetails"
	EventGameStarted     = "gameStarted"
	EventNewPrompt       = "newPrompt"
	EventNoPrompts       = "noPrompts"
	EventNoRoom          = "noRoom"
	EventGetImageData    = "getImageData"
	EventUpdatePoints    = "updatePoints"
	EventDrawerChanged   = "drawerChanged"
	EventGameFinished    = "gameFinished"
)

// SystemSender is the chat sender name used for server notices.
const SystemSender = "System"

type CreateRoomRequest struct {
	Category string `json:"category"`
}

type RoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type PromptRequest struct {
	RoomCode string `json:"roomCode"`
	Category string `json:"category"`
}

type CanvasRequest struct {
	RoomCode  string          `json:"roomCode"`
	ImageData json.RawMessage `json:"imageData"`
}

type SetUserRequest struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
}

type ChatRequest struct {
	RoomCode string `json:"roomCode"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

type RoomCodeReply struct {
	RoomCode string `json:"roomCode"`
}

type ErrorReply struct {
	Reason string `json:"reason"`
}

type PlayerScore struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type RoomDetails struct {
	Players  []PlayerScore `json:"players"`
	Category string        `json:"category"`
	DrawerID string        `json:"drawerId,omitempty"`
}

type NewPrompt struct {
	Word string `json:"word"`
}

type ImageData struct {
	ImageData json.RawMessage `json:"imageData"`
}

type ChatMessage struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type UpdatePoints struct {
	Player string `json:"player"`
	Points int    `json:"points"`
}

type DrawerChanged struct {
	NewDrawerIndex int    `json:"newDrawerIndex"`
	NewDrawerID    string `json:"newDrawerId"`
	NewDrawerName  string `json:"newDrawerName"`
}

// GameFinished carries the final scoreboard. Points is keyed by connection id.
type GameFinished struct {
	Points  map[string]int `json:"points"`
	Players []PlayerScore  `json:"players"`
}
