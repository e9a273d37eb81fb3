package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"PaperTradeBot/internal/models"

	"github.com/rs/zerolog"
)

// StateFileRepository persists one PortfolioState JSON file per
// (symbol, strategy) key. Saves are atomic (temp file in the same directory,
// fsync, rename) so a reader can never observe a partially written state.
type StateFileRepository struct {
	dir string
	log zerolog.Logger
}

var statePathSanitizer = strings.NewReplacer("/", "_", " ", "_")

// NewStateFileRepository creates the state directory if needed.
func NewStateFileRepository(dir string, logger zerolog.Logger) (*StateFileRepository, error) {
	if dir == "" {
		return nil, errors.New("state directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory %s: %w", dir, err)
	}
	return &StateFileRepository{dir: dir, log: logger}, nil
}

func (r *StateFileRepository) statePath(symbol, strategy string) string {
	name := fmt.Sprintf("%s__%s.json",
		statePathSanitizer.Replace(symbol),
		statePathSanitizer.Replace(strategy))
	return filepath.Join(r.dir, name)
}

// Load reads the state for a key. A missing file means the key has never
// been initialized and is reported as (nil, nil). An unparsable file is
// treated the same way so a corrupt state cannot wedge the engine, but it
// is logged at error level with the path so an operator can recover it.
func (r *StateFileRepository) Load(symbol, strategy string) (*models.PortfolioState, error) {
	path := r.statePath(symbol, strategy)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}

	var state models.PortfolioState
	if err := json.Unmarshal(data, &state); err != nil {
		r.log.Error().Err(err).Str("path", path).
			Msg("corrupt portfolio state file, treating as absent; move the file aside to recover it")
		return nil, nil
	}
	return &state, nil
}

// Save writes the state for its key, replacing any previous file. On any
// failure the temp file is removed and the target is left as it was; the
// caller keeps running on its in-memory state.
func (r *StateFileRepository) Save(state *models.PortfolioState) error {
	if state == nil {
		return errors.New("state cannot be nil")
	}
	path := r.statePath(state.Symbol, state.Strategy)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(r.dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("creating temp state file in %s: %w", r.dir, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing state file %s: %w", path, err)
	}
	return nil
}
