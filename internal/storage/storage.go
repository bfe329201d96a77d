package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/fenboard/internal/board"
)

// ErrNotFound is returned when no position is stored under a hash.
var ErrNotFound = errors.New("position not found")

// keyPrefix namespaces position records inside the database.
const keyPrefix = "pos/"

// Options configures where the store keeps its data.
type Options struct {
	Dir      string // database directory; ignored when InMemory is set
	InMemory bool   // keep everything in memory, nothing touches disk
}

// Record is the JSON value stored for each position.
type Record struct {
	FEN     string    `json:"fen"`
	SavedAt time.Time `json:"saved_at"`
}

// Store wraps BadgerDB for position persistence.
type Store struct {
	db *badger.DB
}

// Open opens or creates a store.
func Open(opts Options) (*Store, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Dir == "" {
			return nil, errors.New("storage: no database directory")
		}
		bopts = badger.DefaultOptions(opts.Dir)
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	log.Printf("Position database: %s", dbDir)
	return Open(Options{Dir: dbDir})
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(hash uint64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], hash)
	return key
}

// Put stores pos under its Zobrist hash and returns the hash. Positions that
// differ only in their move counters share a hash; the last write wins.
func (s *Store) Put(pos board.Position) (uint64, error) {
	if err := pos.Validate(); err != nil {
		return 0, fmt.Errorf("storage: put: %w", err)
	}

	hash := pos.Hash()
	data, err := json.Marshal(Record{FEN: pos.FEN(), SavedAt: time.Now().UTC()})
	if err != nil {
		return 0, fmt.Errorf("storage: put %016x: encode: %w", hash, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(positionKey(hash), data)
	})
	if err != nil {
		return 0, fmt.Errorf("storage: put %016x: %w", hash, err)
	}
	return hash, nil
}

// Lookup returns the raw record stored under hash.
func (s *Store) Lookup(hash uint64) (Record, error) {
	var rec Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(hash))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return Record{}, fmt.Errorf("storage: get %016x: %w", hash, err)
	}
	return rec, nil
}

// Get loads the position stored under hash.
func (s *Store) Get(hash uint64) (board.Position, error) {
	rec, err := s.Lookup(hash)
	if err != nil {
		return board.Position{}, err
	}
	pos, err := board.ParseFEN(rec.FEN)
	if err != nil {
		return board.Position{}, fmt.Errorf("storage: corrupt record %016x: %w", hash, err)
	}
	return pos, nil
}

// Has reports whether a position is stored under hash.
func (s *Store) Has(hash uint64) (bool, error) {
	_, err := s.Lookup(hash)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Delete removes the position stored under hash. Deleting a missing key is not an error.
func (s *Store) Delete(hash uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(positionKey(hash))
	})
}

// Count returns the number of stored positions.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
