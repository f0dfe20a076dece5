package telegram

import (
	"strings"
	"testing"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

func testState() *entities.GameState {
	return &entities.GameState{
		Candidates: []entities.Country{
			{Code: "EE", Name: "Estonia", Flag: "🇪🇪"},
			{Code: "US", Name: "US", Flag: "🇺🇸"},
			{Code: "MC", Name: "Monaco"},
		},
		CorrectIndex: 1,
		Score:        2,
		RoundsPlayed: 3,
	}
}

func TestFormatBoard(t *testing.T) {
	text := formatBoard(testState())

	for _, want := range []string{"*Guess the Flag*", "Tap the flag of", "*US*", "Score: 2", "Round 4 of 8"} {
		if !strings.Contains(text, want) {
			t.Errorf("board %q does not contain %q", text, want)
		}
	}
}

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome entities.Outcome
		over    bool
		want    []string
		notWant []string
	}{
		{
			name:    "correct",
			outcome: entities.CorrectOutcome(),
			want:    []string{"*Correct*", md("You get 1 score!")},
			notWant: []string{"Game Over"},
		},
		{
			name:    "wrong names the tapped flag",
			outcome: entities.WrongOutcome(0),
			want:    []string{"*Wrong*", "This is flag of Estonia"},
		},
		{
			name:    "game over",
			outcome: entities.WrongOutcome(2),
			over:    true,
			want:    []string{"This is flag of Monaco", "*Game Over*", "Your total score is 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := testState()
			outcome := tt.outcome
			state.LastOutcome = &outcome
			state.IsGameOver = tt.over

			text := formatOutcome(state)
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Errorf("outcome %q does not contain %q", text, want)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(text, notWant) {
					t.Errorf("outcome %q contains %q", text, notWant)
				}
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	state := testState()
	if got := formatScore(state); !strings.Contains(got, "Rounds left: 5 of 8") {
		t.Fatalf("formatScore = %q", got)
	}

	state.IsGameOver = true
	if got := formatScore(state); !strings.Contains(got, "Your total score is 2") {
		t.Fatalf("formatScore after game over = %q", got)
	}
}

func TestRenderState(t *testing.T) {
	state := testState()

	_, kb := renderState(state)
	row := kb.InlineKeyboard[0]
	if len(row) != 3 {
		t.Fatalf("board row has %d buttons; want 3", len(row))
	}
	if row[2].Text != "MC" {
		t.Fatalf("flagless button label = %q; want code", row[2].Text)
	}
	if *row[1].CallbackData != "flag:3:1" {
		t.Fatalf("callback = %q", *row[1].CallbackData)
	}

	outcome := entities.CorrectOutcome()
	state.LastOutcome = &outcome
	_, kb = renderState(state)
	if *kb.InlineKeyboard[0][0].CallbackData != "game:continue" {
		t.Fatalf("outcome keyboard = %q", *kb.InlineKeyboard[0][0].CallbackData)
	}

	state.IsGameOver = true
	_, kb = renderState(state)
	if *kb.InlineKeyboard[0][0].CallbackData != "game:restart" {
		t.Fatalf("game over keyboard = %q", *kb.InlineKeyboard[0][0].CallbackData)
	}
}
