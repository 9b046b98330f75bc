package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keySavedGame   = "saved_game"
)

// Preferences stores user settings.
type Preferences struct {
	EngineDir       string    `json:"engine_dir"`
	BudgetMillis    int       `json:"budget_millis"`
	AnalysisEnabled bool      `json:"analysis_enabled"`
	FlipBoard       bool      `json:"flip_board"`
	LastPlayed      time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *Preferences {
	return &Preferences{
		BudgetMillis:    50,
		AnalysisEnabled: true,
		FlipBoard:       false,
		LastPlayed:      time.Now(),
	}
}

// Budget returns the per-position analysis time limit.
func (p *Preferences) Budget() time.Duration {
	if p.BudgetMillis <= 0 {
		return 50 * time.Millisecond
	}
	return time.Duration(p.BudgetMillis) * time.Millisecond
}

// SavedGame is the in-progress game carried across launches, recorded
// as the move sequence from the starting position.
type SavedGame struct {
	Moves   []string  `json:"moves"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database at an explicit directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults if none
// were saved yet.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveGame persists the current move sequence.
func (s *Storage) SaveGame(moves []string) error {
	game := SavedGame{Moves: moves, SavedAt: time.Now()}

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySavedGame), data)
	})
}

// LoadGame returns the saved game, or nil when none exists.
func (s *Storage) LoadGame() (*SavedGame, error) {
	var game *SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySavedGame))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			game = &SavedGame{}
			return json.Unmarshal(val, game)
		})
	})

	return game, err
}

// ClearGame removes the saved game, e.g. after it finished.
func (s *Storage) ClearGame() error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(keySavedGame))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}
