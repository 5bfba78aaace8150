// room/room.go
package room

// Player is one connection's seat in a room. DisplayName stays empty until
// the identity provider resolves it.
type Player struct {
	ConnectionID string
	DisplayName  string
}

// Label is the display name, or the connection id while no name is set.
func (p Player) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ConnectionID
}

// Rules are the per-room game constants.
type Rules struct {
	TotalRounds  int
	DrawerPoints int
}

func DefaultRules() Rules {
	return Rules{TotalRounds: 3, DrawerPoints: 1000}
}

// Room is one game session. It is not safe for concurrent use; the game
// loop is its only writer.
//
// Players are in join order, which is also the drawing order. Scores has
// exactly one entry per player. DrawerIndex is a valid offset into Players
// whenever Players is non-empty.
type Room struct {
	Code         string
	Category     string
	Players      []*Player
	Scores       map[string]int
	Prompt       string // empty when no word is active
	DrawerIndex  int
	CurrentRound int
	TotalRounds  int
	DrawerPoints int
}

func newRoom(code, category string, rules Rules) *Room {
	return &Room{
		Code:         code,
		Category:     category,
		Players:      make([]*Player, 0),
		Scores:       make(map[string]int),
		DrawerIndex:  0,
		CurrentRound: 1,
		TotalRounds:  rules.TotalRounds,
		DrawerPoints: rules.DrawerPoints,
	}
}

func (r *Room) indexOf(connectionID string) int {
	for i, p := range r.Players {
		if p.ConnectionID == connectionID {
			return i
		}
	}
	return -1
}

func (r *Room) HasPlayer(connectionID string) bool {
	return r.indexOf(connectionID) >= 0
}

// Player returns the member with the given connection id.
func (r *Room) Player(connectionID string) (*Player, bool) {
	if i := r.indexOf(connectionID); i >= 0 {
		return r.Players[i], true
	}
	return nil, false
}

// AddPlayer appends a member with a zero score. Adding an existing member
// is a no-op and reports false.
func (r *Room) AddPlayer(connectionID string) bool {
	if r.HasPlayer(connectionID) {
		return false
	}
	r.Players = append(r.Players, &Player{ConnectionID: connectionID})
	r.Scores[connectionID] = 0
	return true
}

// SetDisplayName reports false when the connection is not a member.
func (r *Room) SetDisplayName(connectionID, name string) bool {
	p, ok := r.Player(connectionID)
	if !ok {
		return false
	}
	p.DisplayName = name
	return true
}

// Drawer returns the current drawer, or false on an empty roster.
func (r *Room) Drawer() (*Player, bool) {
	if len(r.Players) == 0 || r.DrawerIndex < 0 || r.DrawerIndex >= len(r.Players) {
		return nil, false
	}
	return r.Players[r.DrawerIndex], true
}

func (r *Room) IsDrawer(connectionID string) bool {
	d, ok := r.Drawer()
	return ok && d.ConnectionID == connectionID
}

func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// Finished reports whether every round has been played.
func (r *Room) Finished() bool {
	return r.CurrentRound > r.TotalRounds
}

type PlayerScore struct {
	ConnectionID string
	Label        string
	Points       int
}

// Snapshot is a read-only projection used to resynchronize observers.
type Snapshot struct {
	Code         string
	Category     string
	Players      []PlayerScore
	DrawerID     string
	CurrentRound int
	TotalRounds  int
}

func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		Code:         r.Code,
		Category:     r.Category,
		Players:      r.Scoreboard(),
		CurrentRound: r.CurrentRound,
		TotalRounds:  r.TotalRounds,
	}
	if d, ok := r.Drawer(); ok {
		s.DrawerID = d.ConnectionID
	}
	return s
}

// Scoreboard lists players in turn order with their points.
func (r *Room) Scoreboard() []PlayerScore {
	board := make([]PlayerScore, 0, len(r.Players))
	for _, p := range r.Players {
		board = append(board, PlayerScore{
			ConnectionID: p.ConnectionID,
			Label:        p.Label(),
			Points:       r.Scores[p.ConnectionID],
		})
	}
	return board
}
