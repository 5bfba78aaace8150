package room

import "strings"

// Evaluate reports whether message from guesserID solves the active prompt.
// Matching is a case-insensitive substring test. The drawer cannot match.
func (r *Room) Evaluate(guesserID, message string) bool {
	prompt := strings.TrimSpace(r.Prompt)
	if prompt == "" {
		return false
	}
	if r.IsDrawer(guesserID) || !r.HasPlayer(guesserID) {
		return false
	}
	return strings.Contains(
		strings.ToLower(strings.TrimSpace(message)),
		strings.ToLower(prompt),
	)
}

// SetPrompt activates a new secret word.
func (r *Room) SetPrompt(word string) {
	r.Prompt = word
}
