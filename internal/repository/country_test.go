package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePool(t *testing.T, n int, mutate func(i int) string) string {
	t.Helper()

	entries := make([]string, 0, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("C%d", i)
		if mutate != nil {
			code = mutate(i)
		}
		entries = append(entries, fmt.Sprintf(`{"code":%q,"name":"Country %d","flag":"🏳"}`, code, i))
	}

	path := filepath.Join(t.TempDir(), "countries.json")
	body := `{"countries":[` + strings.Join(entries, ",") + `]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewCountryRepositoryShippedPool(t *testing.T) {
	repo, err := NewCountryRepository(filepath.Join("..", "..", "assets", "data", "countries.json"))
	if err != nil {
		t.Fatalf("load shipped pool: %v", err)
	}

	all := repo.GetAll()
	if len(all) != 12 {
		t.Fatalf("len(GetAll()) = %d; want 12", len(all))
	}
	if all[0].Name != "Estonia" || all[11].Name != "Monaco" {
		t.Fatalf("unexpected pool order: first=%q last=%q", all[0].Name, all[11].Name)
	}

	c, err := repo.GetByCode("FR")
	if err != nil || c.Name != "France" {
		t.Fatalf("GetByCode(FR) = %+v, %v", c, err)
	}
}

func TestNewCountryRepositoryValidation(t *testing.T) {
	cases := []struct {
		name   string
		n      int
		mutate func(i int) string
	}{
		{"too few", 11, nil},
		{"too many", 13, nil},
		{"duplicate code", 12, func(i int) string {
			if i == 5 {
				return "C4"
			}
			return fmt.Sprintf("C%d", i)
		}},
		{"empty code", 12, func(i int) string {
			if i == 0 {
				return ""
			}
			return fmt.Sprintf("C%d", i)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCountryRepository(writePool(t, tc.n, tc.mutate))
			if !errors.Is(err, ErrInvalidPool) {
				t.Fatalf("err = %v; want ErrInvalidPool", err)
			}
		})
	}
}

func TestNewCountryRepositoryMissingFile(t *testing.T) {
	_, err := NewCountryRepository(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v; want os.ErrNotExist", err)
	}
}

func TestGetByCodes(t *testing.T) {
	repo, err := NewCountryRepository(writePool(t, 12, nil))
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByCodes([]string{"C3", "C0", "C7"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Code != "C3" || got[1].Code != "C0" || got[2].Code != "C7" {
		t.Fatalf("GetByCodes order = %+v", got)
	}

	if _, err := repo.GetByCodes([]string{"C1", "XX"}); !errors.Is(err, ErrCountryNotFound) {
		t.Fatalf("err = %v; want ErrCountryNotFound", err)
	}
}

func TestGetAllReturnsCopy(t *testing.T) {
	repo, err := NewCountryRepository(writePool(t, 12, nil))
	if err != nil {
		t.Fatal(err)
	}

	all := repo.GetAll()
	all[0].Name = "changed"

	if repo.GetAll()[0].Name == "changed" {
		t.Fatalf("GetAll exposes internal slice")
	}
}
