package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
)

// CountryResolver maps stored country codes back to pool entries.
type CountryResolver interface {
	GetByCodes(codes []string) ([]entities.Country, error)
}

// GameRepository provides access to game sessions in the database.
type GameRepository struct {
	db        postgres.DBTX
	countries CountryResolver
}

// NewGameRepository creates a new GameRepository with the provided database pool.
func NewGameRepository(db postgres.DBTX, countries CountryResolver) *GameRepository {
	return &GameRepository{db: db, countries: countries}
}

// Get retrieves the game session of a chat.
func (r *GameRepository) Get(ctx context.Context, chatID int64) (*entities.GameSession, error) {
	query := `
		SELECT chat_id, user_id, message_id, candidates, correct_index, score,
		       rounds_played, is_game_over, outcome_kind, outcome_index,
		       version, started_at, updated_at
		FROM game_sessions
		WHERE chat_id = $1
	`

	var (
		session      entities.GameSession
		codes        []string
		outcomeKind  *string
		outcomeIndex *int
	)
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&session.ChatID,
		&session.UserID,
		&session.MessageID,
		&codes,
		&session.State.CorrectIndex,
		&session.State.Score,
		&session.State.RoundsPlayed,
		&session.State.IsGameOver,
		&outcomeKind,
		&outcomeIndex,
		&session.Version,
		&session.StartedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrGameNotFound
		}
		return nil, fmt.Errorf("get game session: %w", err)
	}

	candidates, err := r.countries.GetByCodes(codes)
	if err != nil {
		return nil, fmt.Errorf("resolve candidates: %w", err)
	}
	session.State.Candidates = candidates

	if outcomeKind != nil {
		o := entities.Outcome{Kind: entities.OutcomeKind(*outcomeKind)}
		if outcomeIndex != nil {
			o.WrongIndex = *outcomeIndex
		}
		session.State.LastOutcome = &o
	}

	return &session, nil
}

// Save inserts or updates a session using optimistic locking on version.
func (r *GameRepository) Save(ctx context.Context, session *entities.GameSession) error {
	query := `
		INSERT INTO game_sessions (
			chat_id, user_id, message_id, candidates, correct_index, score,
			rounds_played, is_game_over, outcome_kind, outcome_index,
			version, started_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::bigint + 1, $12, $13)
		ON CONFLICT (chat_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			message_id = EXCLUDED.message_id,
			candidates = EXCLUDED.candidates,
			correct_index = EXCLUDED.correct_index,
			score = EXCLUDED.score,
			rounds_played = EXCLUDED.rounds_played,
			is_game_over = EXCLUDED.is_game_over,
			outcome_kind = EXCLUDED.outcome_kind,
			outcome_index = EXCLUDED.outcome_index,
			started_at = EXCLUDED.started_at,
			updated_at = EXCLUDED.updated_at,
			version = game_sessions.version + 1
		WHERE game_sessions.version = $11::bigint
		RETURNING version
	`

	codes := make([]string, 0, len(session.State.Candidates))
	for _, c := range session.State.Candidates {
		codes = append(codes, c.Code)
	}

	var (
		outcomeKind  *string
		outcomeIndex *int
	)
	if o := session.State.LastOutcome; o != nil {
		kind := string(o.Kind)
		outcomeKind = &kind
		if o.Kind == entities.OutcomeWrong {
			idx := o.WrongIndex
			outcomeIndex = &idx
		}
	}

	var version int64
	err := r.db.QueryRow(
		ctx,
		query,
		session.ChatID,
		session.UserID,
		session.MessageID,
		codes,
		session.State.CorrectIndex,
		session.State.Score,
		session.State.RoundsPlayed,
		session.State.IsGameOver,
		outcomeKind,
		outcomeIndex,
		session.Version,
		session.StartedAt,
		session.UpdatedAt,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrOptimisticLock
		}
		return fmt.Errorf("save game session: %w", err)
	}

	session.Version = version
	return nil
}

// Delete removes the game session of a chat.
func (r *GameRepository) Delete(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM game_sessions WHERE chat_id = $1", chatID)
	if err != nil {
		return fmt.Errorf("delete game session: %w", err)
	}
	return nil
}
