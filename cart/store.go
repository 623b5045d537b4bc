package cart

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store persists a cart to a JSON file so it survives restarts, the way
// the web client keeps its cart in local storage. Load at startup, save
// after every mutation.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the saved cart; a missing file yields an empty cart.
func (s *Store) Load() (*Cart, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}

	c := New()
	c.lines = lines
	return c, nil
}

func (s *Store) Save(c *Cart) error {
	data, err := json.MarshalIndent(c.Lines(), "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// Reset removes the saved cart file; used together with Cart.Clear once an
// order has been placed.
func (s *Store) Reset() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
