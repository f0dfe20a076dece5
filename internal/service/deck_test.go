package service

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

func testPool() []entities.Country {
	pool := make([]entities.Country, 0, entities.PoolSize)
	for i := 0; i < entities.PoolSize; i++ {
		pool = append(pool, entities.Country{
			Code: fmt.Sprintf("C%02d", i),
			Name: fmt.Sprintf("Country %d", i),
			Flag: "🏳",
		})
	}
	return pool
}

func TestDealProducesDistinctCandidatesFromPool(t *testing.T) {
	pool := testPool()
	inPool := make(map[string]bool, len(pool))
	for _, c := range pool {
		inPool[c.Code] = true
	}

	deck, err := NewDeck(pool, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 500; i++ {
		candidates, correct := deck.Deal()

		if len(candidates) != entities.CandidatesPerRound {
			t.Fatalf("deal %d: len = %d", i, len(candidates))
		}
		if correct < 0 || correct >= entities.CandidatesPerRound {
			t.Fatalf("deal %d: correct index %d out of range", i, correct)
		}

		seen := make(map[string]bool, len(candidates))
		for _, c := range candidates {
			if !inPool[c.Code] {
				t.Fatalf("deal %d: %q not in pool", i, c.Code)
			}
			if seen[c.Code] {
				t.Fatalf("deal %d: duplicate %q", i, c.Code)
			}
			seen[c.Code] = true
		}
	}
}

func TestDealIsDeterministicForSeed(t *testing.T) {
	a, _ := NewDeck(testPool(), rand.New(rand.NewSource(7)))
	b, _ := NewDeck(testPool(), rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		ca, ia := a.Deal()
		cb, ib := b.Deal()
		if ia != ib {
			t.Fatalf("deal %d: correct %d vs %d", i, ia, ib)
		}
		for j := range ca {
			if ca[j] != cb[j] {
				t.Fatalf("deal %d: candidate %d differs: %v vs %v", i, j, ca[j], cb[j])
			}
		}
	}
}

func TestDealCoversEveryIndex(t *testing.T) {
	deck, _ := NewDeck(testPool(), rand.New(rand.NewSource(1)))

	hits := make([]int, entities.CandidatesPerRound)
	for i := 0; i < 300; i++ {
		_, correct := deck.Deal()
		hits[correct]++
	}

	for idx, n := range hits {
		if n == 0 {
			t.Fatalf("correct index %d never dealt in 300 rounds", idx)
		}
	}
}

func TestDealDoesNotMutateCallerPool(t *testing.T) {
	pool := testPool()
	deck, _ := NewDeck(pool, rand.New(rand.NewSource(3)))

	for i := 0; i < 10; i++ {
		deck.Deal()
	}

	for i, c := range pool {
		if c.Code != fmt.Sprintf("C%02d", i) {
			t.Fatalf("pool[%d] = %q; caller pool was reordered", i, c.Code)
		}
	}
}

func TestNewDeckPoolTooSmall(t *testing.T) {
	_, err := NewDeck(testPool()[:2], rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrPoolTooSmall) {
		t.Fatalf("err = %v; want ErrPoolTooSmall", err)
	}
}
