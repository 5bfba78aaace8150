package room

// TurnResult describes one completed turn.
type TurnResult struct {
	// Advanced is false when the roster was empty and nothing changed.
	Advanced bool
	// Drawer is the player who was rewarded.
	Drawer       Player
	DrawerPoints int
	// NewDrawer is unset when Finished is true.
	NewDrawer      Player
	NewDrawerIndex int
	// Finished means CurrentRound has passed TotalRounds; the caller should
	// publish Scoreboard and delete the room.
	Finished   bool
	Scoreboard []PlayerScore
}

// AdvanceAfterCorrectGuess rewards the drawer and hands the turn to the next
// player. The prompt is cleared on every path.
func (r *Room) AdvanceAfterCorrectGuess() TurnResult {
	defer func() { r.Prompt = "" }()

	drawer, ok := r.Drawer()
	if !ok {
		return TurnResult{}
	}

	r.Scores[drawer.ConnectionID] += r.DrawerPoints
	res := TurnResult{
		Advanced:     true,
		Drawer:       *drawer,
		DrawerPoints: r.Scores[drawer.ConnectionID],
	}

	r.DrawerIndex = (r.DrawerIndex + 1) % len(r.Players)
	if r.DrawerIndex == 0 {
		r.CurrentRound++
	}
	res.NewDrawerIndex = r.DrawerIndex

	if r.Finished() {
		res.Finished = true
		res.Scoreboard = r.Scoreboard()
		return res
	}

	res.NewDrawer = *r.Players[r.DrawerIndex]
	return res
}

// RemovePlayer drops the member and its score. DrawerIndex shifts down when
// the removed seat was at or before it so turn order is not skipped.
func (r *Room) RemovePlayer(connectionID string) (Player, bool) {
	i := r.indexOf(connectionID)
	if i < 0 {
		return Player{}, false
	}
	removed := *r.Players[i]

	r.Players = append(r.Players[:i], r.Players[i+1:]...)
	delete(r.Scores, connectionID)

	if i <= r.DrawerIndex {
		r.DrawerIndex--
	}
	if r.DrawerIndex < 0 || len(r.Players) == 0 {
		r.DrawerIndex = 0
	}
	return removed, true
}
