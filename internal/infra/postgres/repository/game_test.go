package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
)

type mapResolver map[string]entities.Country

func (m mapResolver) GetByCodes(codes []string) ([]entities.Country, error) {
	out := make([]entities.Country, 0, len(codes))
	for _, code := range codes {
		c, ok := m[code]
		if !ok {
			return nil, repository.ErrCountryNotFound
		}
		out = append(out, c)
	}
	return out, nil
}

type listDealer []entities.Country

func (d listDealer) Deal() ([]entities.Country, int) {
	return append([]entities.Country(nil), d...), 2
}

// Integration-style test: runs only if TEST_DATABASE_URL env is set.
func TestGameRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_game_sessions.sql"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	countries := listDealer{
		{Code: "EE", Name: "Estonia"},
		{Code: "FR", Name: "France"},
		{Code: "DE", Name: "Germany"},
	}
	resolver := mapResolver{}
	for _, c := range countries {
		resolver[c.Code] = c
	}

	repo := NewGameRepository(pool, resolver)
	const chatID = -987654321
	_ = repo.Delete(ctx, chatID)
	defer func() { _ = repo.Delete(ctx, chatID) }()

	if _, err := repo.Get(ctx, chatID); !errors.Is(err, repository.ErrGameNotFound) {
		t.Fatalf("Get missing err = %v; want ErrGameNotFound", err)
	}

	session := entities.NewGameSession(chatID, 7, countries)
	if _, err := session.State.Answer(0); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if session.Version != 1 {
		t.Fatalf("Version = %d; want 1", session.Version)
	}

	got, err := repo.Get(ctx, chatID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State.Target().Code != "DE" || got.State.RoundsPlayed != 1 {
		t.Fatalf("Get state = %+v", got.State)
	}
	if got.State.LastOutcome == nil || *got.State.LastOutcome != entities.WrongOutcome(0) {
		t.Fatalf("LastOutcome = %v; want wrong(0)", got.State.LastOutcome)
	}

	stale := *got
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if err := repo.Save(ctx, &stale); !errors.Is(err, repository.ErrOptimisticLock) {
		t.Fatalf("stale Save err = %v; want ErrOptimisticLock", err)
	}

	const bigChatID = -987654322
	_ = repo.Delete(ctx, bigChatID)
	defer func() { _ = repo.Delete(ctx, bigChatID) }()

	big := entities.NewGameSession(bigChatID, 7, countries)
	big.Version = 1 << 32
	if err := repo.Save(ctx, big); err != nil {
		t.Fatalf("Save with 64-bit version: %v", err)
	}
	if big.Version != 1<<32+1 {
		t.Fatalf("Version = %d; want %d", big.Version, int64(1<<32+1))
	}
	if err := repo.Save(ctx, big); err != nil {
		t.Fatalf("update with 64-bit version: %v", err)
	}
}
