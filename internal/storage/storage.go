package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ArchProtogens/lumifox/internal/board"
)

// Key prefixes
const (
	prefixGame  = "game:"
	prefixPerft = "perft:"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SavedGame is a stored game: the position it started from and the moves
// played, in UCI notation. The record is self-contained; replaying the
// moves from the start FEN reconstructs the final position.
type SavedGame struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	SavedAt  time.Time `json:"saved_at"`
}

// Replay reconstructs the game by applying the stored moves from the start
// position. Fails if any stored move is not legal where it occurs.
func (sg *SavedGame) Replay() (*board.Game, error) {
	g, err := board.NewGameFromFEN(sg.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("saved game %s: %w", sg.ID, err)
	}
	for i, mv := range sg.Moves {
		if err := g.PushUCI(mv); err != nil {
			return nil, fmt.Errorf("saved game %s, move %d (%s): %w", sg.ID, i+1, mv, err)
		}
	}
	return g, nil
}

// PerftBaseline stores verified node counts for a position, keyed by depth.
// Used to catch move generation regressions by comparing fresh runs against
// previously recorded counts.
type PerftBaseline struct {
	FEN        string        `json:"fen"`
	Nodes      map[int]int64 `json:"nodes"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Archive wraps BadgerDB for persistent storage of games and baselines.
type Archive struct {
	db *badger.DB
}

// Open opens (creating if necessary) an archive in the given directory.
func Open(dir string) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Archive{db: db}, nil
}

// OpenDefault opens the archive in the platform data directory.
func OpenDefault() (*Archive, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database.
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// SaveGame stores a game record. The moves are replayed against the start
// FEN first, so the archive never holds an unplayable game.
func (a *Archive) SaveGame(sg *SavedGame) error {
	if sg.ID == "" {
		return fmt.Errorf("saved game needs a non-empty ID")
	}
	if _, err := sg.Replay(); err != nil {
		return err
	}

	sg.SavedAt = time.Now()

	data, err := json.Marshal(sg)
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixGame+sg.ID), data)
	})
}

// LoadGame loads a game record by ID.
func (a *Archive) LoadGame(id string) (*SavedGame, error) {
	var sg SavedGame

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixGame + id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: game %q", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sg)
		})
	})
	if err != nil {
		return nil, err
	}

	return &sg, nil
}

// DeleteGame removes a game record. Deleting a missing game is not an error.
func (a *Archive) DeleteGame(id string) error {
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixGame + id))
	})
}

// ListGames returns all stored games, ordered by ID.
func (a *Archive) ListGames() ([]*SavedGame, error) {
	var games []*SavedGame

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var sg SavedGame
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sg)
			})
			if err != nil {
				return err
			}
			games = append(games, &sg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return games, nil
}

// RecordPerft stores a node count for a position and depth, merging with any
// counts already recorded for that position.
func (a *Archive) RecordPerft(fen string, depth int, nodes int64) error {
	baseline, err := a.LoadBaseline(fen)
	if errors.Is(err, ErrNotFound) {
		baseline = &PerftBaseline{FEN: fen, Nodes: make(map[int]int64)}
	} else if err != nil {
		return err
	}

	baseline.Nodes[depth] = nodes
	baseline.RecordedAt = time.Now()

	data, err := json.Marshal(baseline)
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixPerft+fen), data)
	})
}

// LoadBaseline loads the recorded node counts for a position.
func (a *Archive) LoadBaseline(fen string) (*PerftBaseline, error) {
	var baseline PerftBaseline

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixPerft + fen))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: no baseline for %q", ErrNotFound, fen)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &baseline)
		})
	})
	if err != nil {
		return nil, err
	}

	return &baseline, nil
}
