package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrInvalidPool     = errors.New("invalid country pool")
)

// CountryRepository provides access to the fixed pool of flag countries.
type CountryRepository struct {
	countries []entities.Country
	byCode    map[string]entities.Country
}

// NewCountryRepository loads the country pool from a JSON file.
func NewCountryRepository(path string) (*CountryRepository, error) {
	countries, err := loadCountries(path)
	if err != nil {
		return nil, err
	}

	return newCountryRepository(countries)
}

func newCountryRepository(countries []entities.Country) (*CountryRepository, error) {
	if len(countries) != entities.PoolSize {
		return nil, fmt.Errorf("%w: expected %d countries, got %d", ErrInvalidPool, entities.PoolSize, len(countries))
	}

	byCode := make(map[string]entities.Country, len(countries))
	for _, c := range countries {
		if c.Code == "" || c.Name == "" {
			return nil, fmt.Errorf("%w: country with empty code or name", ErrInvalidPool)
		}
		if _, dup := byCode[c.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate country code %q", ErrInvalidPool, c.Code)
		}
		byCode[c.Code] = c
	}

	return &CountryRepository{
		countries: countries,
		byCode:    byCode,
	}, nil
}

// GetAll returns a copy of the pool in file order.
func (r *CountryRepository) GetAll() []entities.Country {
	return append([]entities.Country(nil), r.countries...)
}

// GetByCode returns the country with the given code.
func (r *CountryRepository) GetByCode(code string) (entities.Country, error) {
	c, ok := r.byCode[code]
	if !ok {
		return entities.Country{}, fmt.Errorf("%w: %s", ErrCountryNotFound, code)
	}
	return c, nil
}

// GetByCodes resolves several codes, preserving their order.
func (r *CountryRepository) GetByCodes(codes []string) ([]entities.Country, error) {
	result := make([]entities.Country, 0, len(codes))

	for _, code := range codes {
		c, err := r.GetByCode(code)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, nil
}

func loadCountries(path string) ([]entities.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Countries []entities.Country `json:"countries"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal countries JSON: %w", err)
	}

	return wrapper.Countries, nil
}
