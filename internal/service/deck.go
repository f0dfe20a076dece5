package service

import (
	"errors"
	"sync"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

var ErrPoolTooSmall = errors.New("country pool is smaller than one round")

// RandomSource is the subset of *rand.Rand used to deal rounds.
type RandomSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Deck deals rounds from a fixed country pool.
type Deck struct {
	mu   sync.Mutex
	pool []entities.Country
	rng  RandomSource
}

// NewDeck creates a deck over a copy of pool.
func NewDeck(pool []entities.Country, rng RandomSource) (*Deck, error) {
	if len(pool) < entities.CandidatesPerRound {
		return nil, ErrPoolTooSmall
	}

	return &Deck{
		pool: append([]entities.Country(nil), pool...),
		rng:  rng,
	}, nil
}

// Deal shuffles the pool, takes the first CandidatesPerRound countries
// and picks the correct one uniformly among them.
func (d *Deck) Deal() ([]entities.Country, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rng.Shuffle(len(d.pool), func(i, j int) {
		d.pool[i], d.pool[j] = d.pool[j], d.pool[i]
	})

	candidates := make([]entities.Country, entities.CandidatesPerRound)
	copy(candidates, d.pool)

	return candidates, d.rng.Intn(entities.CandidatesPerRound)
}
