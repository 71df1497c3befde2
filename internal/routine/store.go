package routine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// DefaultFile is the store file used when none is configured.
const DefaultFile = "practice_routines.json"

// Store reads and writes the routine file at Path.
type Store struct {
	Path   string
	Logger *log.Logger
}

// NewStore returns a store for path that reports through logger.
// A nil logger falls back to the charmbracelet default logger.
func NewStore(path string, logger *log.Logger) *Store {
	return &Store{Path: path, Logger: logger}
}

func (s *Store) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// Load reads all routines from the store file.
//
// A missing file yields an empty list. A file that does not parse yields an
// empty list and a logged warning; its content is replaced by the next Save.
// Any other read failure is returned.
func (s *Store) Load() ([]Routine, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Routine{}, nil
		}
		return nil, fmt.Errorf("read routine file: %w", err)
	}

	var routines []Routine
	if err := json.Unmarshal(data, &routines); err != nil {
		s.logger().Warn("routine file contains invalid JSON, starting with empty list",
			"path", s.Path,
			"err", err,
			"note", "existing content will be overwritten on next save")
		return []Routine{}, nil
	}
	if routines == nil {
		routines = []Routine{}
	}
	return routines, nil
}

// Save writes routines to the store file with 2-space indentation,
// replacing whatever was there.
func (s *Store) Save(routines []Routine) error {
	out := make([]Routine, len(routines))
	for i, r := range routines {
		if r.Tags == nil {
			r.Tags = []string{}
		}
		out[i] = r
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal routine file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write routine file: %w", err)
	}

	s.logger().Infof("Saved %d routines to %s", len(out), s.Path)
	return nil
}

// Append adds r to the end of the stored list. It is a Load followed by a
// Save and is not safe against concurrent writers.
func (s *Store) Append(r Routine) error {
	routines, err := s.Load()
	if err != nil {
		return err
	}
	routines = append(routines, r)
	return s.Save(routines)
}
