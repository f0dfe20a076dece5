package entities

import "time"

// GameSession is the live game of one chat.
type GameSession struct {
	ChatID    int64     // Telegram chat ID, the session key
	UserID    int64     // user who started the game
	MessageID int       // message that displays the board (0 until sent)
	State     GameState // current game state
	Version   int64     // optimistic lock counter
	StartedAt time.Time // timestamp of the last Start/Restart
	UpdatedAt time.Time // timestamp of the last transition
}

// NewGameSession creates a session for a chat with a freshly dealt game.
func NewGameSession(chatID, userID int64, d Dealer) *GameSession {
	now := time.Now()
	return &GameSession{
		ChatID:    chatID,
		UserID:    userID,
		State:     *NewGameState(d),
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (s *GameSession) Touch() {
	s.UpdatedAt = time.Now()
}

// Clone returns a deep copy so stores never share slices with callers.
func (s *GameSession) Clone() *GameSession {
	c := *s
	c.State.Candidates = append([]Country(nil), s.State.Candidates...)
	if s.State.LastOutcome != nil {
		o := *s.State.LastOutcome
		c.State.LastOutcome = &o
	}
	return &c
}
