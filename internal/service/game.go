package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
)

// ErrStaleRound is returned for a tap or continue that does not belong
// to the round currently on the board.
var ErrStaleRound = errors.New("round is no longer active")

// GameService runs the flag game of every chat.
type GameService struct {
	repo    GameRepository
	dealer  entities.Dealer
	metrics MetricsRecorder
	logger  *zap.Logger
}

func NewGameService(
	repo GameRepository,
	dealer entities.Dealer,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		repo:    repo,
		dealer:  dealer,
		metrics: metrics,
		logger:  logger,
	}
}

// Start begins a new game in the chat, replacing any game in progress.
func (s *GameService) Start(ctx context.Context, chatID, userID int64) (*entities.GameSession, error) {
	session, err := s.repo.Get(ctx, chatID)
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		session = entities.NewGameSession(chatID, userID, s.dealer)
	case err != nil:
		return nil, fmt.Errorf("get game session: %w", err)
	default:
		session.UserID = userID
		session.MessageID = 0
		session.State.Reset(s.dealer)
		session.StartedAt = time.Now()
	}
	session.Touch()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save game session: %w", err)
	}

	s.metrics.GameStarted()
	s.logger.Info("game started",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.String("target", session.State.Target().Code),
	)

	return session, nil
}

// Restart starts over after the game-over screen. A game still in
// progress is left alone and ErrStaleRound is returned.
func (s *GameService) Restart(ctx context.Context, chatID, userID int64) (*entities.GameSession, error) {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !session.State.IsGameOver {
		return session, ErrStaleRound
	}

	return s.Start(ctx, chatID, userID)
}

// Get returns the live session of the chat.
func (s *GameService) Get(ctx context.Context, chatID int64) (*entities.GameSession, error) {
	session, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get game session: %w", err)
	}
	return session, nil
}

// Answer applies a tap on the flag at index. round is the RoundsPlayed
// value the tapped board was rendered with.
func (s *GameService) Answer(
	ctx context.Context, chatID int64, round, index int,
) (*entities.GameSession, entities.Outcome, error) {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return nil, entities.Outcome{}, err
	}

	state := &session.State
	if state.IsGameOver {
		return session, entities.Outcome{}, entities.ErrGameAlreadyOver
	}
	if round != state.RoundsPlayed || state.LastOutcome != nil {
		return session, entities.Outcome{}, ErrStaleRound
	}

	outcome, err := state.Answer(index)
	if err != nil {
		return session, entities.Outcome{}, fmt.Errorf("answer round %d: %w", round, err)
	}
	session.Touch()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, entities.Outcome{}, fmt.Errorf("save game session: %w", err)
	}

	s.metrics.Answered(outcome)
	s.logger.Debug("round answered",
		zap.Int64("chat_id", chatID),
		zap.Int("round", round),
		zap.Int("index", index),
		zap.String("outcome", string(outcome.Kind)),
		zap.Int("score", state.Score),
	)

	if state.IsGameOver {
		s.metrics.GameFinished(state.Score)
		s.logger.Info("game finished",
			zap.Int64("chat_id", chatID),
			zap.Int("score", state.Score),
		)
	}

	return session, outcome, nil
}

// Continue deals the next round after a non-terminal outcome.
func (s *GameService) Continue(ctx context.Context, chatID int64) (*entities.GameSession, error) {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if session.State.IsGameOver {
		return session, entities.ErrGameAlreadyOver
	}
	if session.State.LastOutcome == nil {
		return session, ErrStaleRound
	}

	session.State.NextRound(s.dealer)
	session.Touch()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save game session: %w", err)
	}

	return session, nil
}

// AttachMessage remembers which chat message displays the board.
func (s *GameService) AttachMessage(ctx context.Context, chatID int64, messageID int) error {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return err
	}

	session.MessageID = messageID
	if err := s.repo.Save(ctx, session); err != nil {
		return fmt.Errorf("save game session: %w", err)
	}

	return nil
}
