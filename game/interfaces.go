package game

import "github.com/wfunc/drawguess/models"

// Broadcaster delivers named events. It is defined here to keep game free
// of transport imports; broadcast.RoomBroadcaster implements it.
type Broadcaster interface {
	ToConnection(connectionID, event string, payload interface{})
	ToRoom(roomCode, event string, payload interface{})
	Subscribe(roomCode, connectionID string)
	Unsubscribe(roomCode, connectionID string)
	DropRoom(roomCode string)
}

// PromptSource picks a secret word for a category.
type PromptSource interface {
	Prompt(category string) (string, bool)
}

// Metrics is the subset of monitor.Monitor the handler reports to.
type Metrics interface {
	SetActiveRooms(count int)
	IncCorrectGuesses()
	IncGamesFinished()
}

// Recorder archives finished games. Implementations must not block.
type Recorder interface {
	RecordGame(record models.GameRecord)
}

type nopMetrics struct{}

func (nopMetrics) SetActiveRooms(int) {}
func (nopMetrics) IncCorrectGuesses() {}
func (nopMetrics) IncGamesFinished()  {}

type nopRecorder struct{}

func (nopRecorder) RecordGame(models.GameRecord) {}
