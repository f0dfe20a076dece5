package entities

import "errors"

const (
	MaxRounds          = 8  // answers per game
	PoolSize           = 12 // countries in the fixed pool
	CandidatesPerRound = 3  // flags offered in one round
)

var (
	ErrInvalidIndex    = errors.New("selected index out of range")
	ErrGameAlreadyOver = errors.New("game is already over")
)

// OutcomeKind classifies the result of a single round.
type OutcomeKind string

const (
	OutcomeCorrect OutcomeKind = "correct"
	OutcomeWrong   OutcomeKind = "wrong"
)

// Outcome is the result of one answered round.
// WrongIndex is meaningful only for OutcomeWrong.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	WrongIndex int         `json:"wrong_index"`
}

// CorrectOutcome returns the outcome of a correct answer.
func CorrectOutcome() Outcome {
	return Outcome{Kind: OutcomeCorrect}
}

// WrongOutcome returns the outcome of tapping the flag at index.
func WrongOutcome(index int) Outcome {
	return Outcome{Kind: OutcomeWrong, WrongIndex: index}
}

// IsCorrect reports whether the round was answered correctly.
func (o Outcome) IsCorrect() bool {
	return o.Kind == OutcomeCorrect
}

// Dealer produces the candidates of a new round.
type Dealer interface {
	Deal() (candidates []Country, correctIndex int)
}

// GameState holds the round data and running score of one game.
type GameState struct {
	Candidates   []Country `json:"candidates"`
	CorrectIndex int       `json:"correct_index"`
	Score        int       `json:"score"`
	RoundsPlayed int       `json:"rounds_played"`
	IsGameOver   bool      `json:"is_game_over"`
	LastOutcome  *Outcome  `json:"last_outcome,omitempty"`
}

// NewGameState creates a fresh game with the first round dealt.
func NewGameState(d Dealer) *GameState {
	g := &GameState{}
	g.Reset(d)
	return g
}

// Target returns the country the player has to find this round.
func (g *GameState) Target() Country {
	return g.Candidates[g.CorrectIndex]
}

// RoundsLeft returns the number of answers remaining before game over.
func (g *GameState) RoundsLeft() int {
	return MaxRounds - g.RoundsPlayed
}

// NextRound deals new candidates and forgets the previous outcome.
func (g *GameState) NextRound(d Dealer) {
	g.Candidates, g.CorrectIndex = d.Deal()
	g.LastOutcome = nil
}

// Reset restores the fresh-start condition and deals the first round.
func (g *GameState) Reset(d Dealer) {
	g.Score = 0
	g.RoundsPlayed = 0
	g.IsGameOver = false
	g.NextRound(d)
}

// Answer applies the player's pick for the current round.
// The score never drops below zero; the game ends after MaxRounds answers.
func (g *GameState) Answer(selectedIndex int) (Outcome, error) {
	if selectedIndex < 0 || selectedIndex >= len(g.Candidates) {
		return Outcome{}, ErrInvalidIndex
	}
	if g.IsGameOver {
		return Outcome{}, ErrGameAlreadyOver
	}

	var outcome Outcome
	if selectedIndex == g.CorrectIndex {
		outcome = CorrectOutcome()
		g.Score++
	} else {
		outcome = WrongOutcome(selectedIndex)
		if g.Score > 0 {
			g.Score--
		}
	}
	g.LastOutcome = &outcome

	g.RoundsPlayed++
	if g.RoundsPlayed >= MaxRounds {
		g.IsGameOver = true
	}

	return outcome, nil
}
