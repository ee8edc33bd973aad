// Package store archives snapshot documents in a BadgerDB database so a
// debugging session can be inspected again after the process is gone.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// Key prefixes
const (
	prefixMeta = "meta/"
	prefixData = "data/"
	prefixName = "name/"
)

// Record describes an archived snapshot.
type Record struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
	Symbols []string  `json:"symbols"`
}

// Store wraps BadgerDB for snapshot persistence.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the snapshot database in dir. An empty dir selects
// the platform data directory.
func Open(dir string) (*Store, error) {
	dbDir, err := DatabaseDir(dir)
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot store %s", dbDir)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save archives a snapshot under name, replacing any snapshot already saved
// under that name.
func (s *Store) Save(name string, snap *rawvalue.Snapshot) (Record, error) {
	if name == "" {
		return Record{}, fmt.Errorf("empty snapshot name: %w", errors.ErrInvalidConfig)
	}
	doc, err := snap.Encode()
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:      uuid.New(),
		Name:    name,
		SavedAt: s.now().UTC(),
		Symbols: snap.Names(),
	}
	meta, err := json.Marshal(rec)
	if err != nil {
		return Record{}, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if old, err := lookupName(txn, name); err == nil {
			if err := deleteRecord(txn, old); err != nil {
				return err
			}
		} else if !errors.Is(err, errors.ErrSnapshotNotFound) {
			return err
		}

		id := rec.ID.String()
		if err := txn.Set([]byte(prefixMeta+id), meta); err != nil {
			return err
		}
		if err := txn.Set([]byte(prefixData+id), doc); err != nil {
			return err
		}
		return txn.Set([]byte(prefixName+name), []byte(id))
	})
	if err != nil {
		return Record{}, errors.Wrapf(err, "saving snapshot %s", name)
	}
	return rec, nil
}

// Get loads a snapshot by name or by id.
func (s *Store) Get(ref string) (*rawvalue.Snapshot, Record, error) {
	var (
		rec Record
		doc []byte
	)
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := resolve(txn, ref)
		if err != nil {
			return err
		}
		if rec, err = readRecord(txn, id); err != nil {
			return err
		}
		item, err := txn.Get([]byte(prefixData + id))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, Record{}, err
	}

	snap, err := rawvalue.ParseSnapshot(doc)
	if err != nil {
		return nil, Record{}, errors.Wrapf(err, "snapshot %s", rec.Name)
	}
	return snap, rec, nil
}

// List returns every archived snapshot, sorted by name.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixMeta)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Delete removes a snapshot by name or by id.
func (s *Store) Delete(ref string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		id, err := resolve(txn, ref)
		if err != nil {
			return err
		}
		return deleteRecord(txn, id)
	})
}

// resolve maps a name or id to an id.
func resolve(txn *badger.Txn, ref string) (string, error) {
	if id, err := lookupName(txn, ref); err == nil {
		return id, nil
	} else if !errors.Is(err, errors.ErrSnapshotNotFound) {
		return "", err
	}

	if _, err := uuid.Parse(ref); err == nil {
		if _, err := txn.Get([]byte(prefixMeta + ref)); err == nil {
			return ref, nil
		}
	}
	return "", fmt.Errorf("%q: %w", ref, errors.ErrSnapshotNotFound)
}

func lookupName(txn *badger.Txn, name string) (string, error) {
	item, err := txn.Get([]byte(prefixName + name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", fmt.Errorf("%q: %w", name, errors.ErrSnapshotNotFound)
	}
	if err != nil {
		return "", err
	}
	var id string
	err = item.Value(func(val []byte) error {
		id = string(val)
		return nil
	})
	return id, err
}

func readRecord(txn *badger.Txn, id string) (Record, error) {
	var rec Record
	item, err := txn.Get([]byte(prefixMeta + id))
	if err != nil {
		return Record{}, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	return rec, err
}

func deleteRecord(txn *badger.Txn, id string) error {
	rec, err := readRecord(txn, id)
	if err != nil {
		return err
	}
	for _, key := range []string{prefixMeta + id, prefixData + id, prefixName + rec.Name} {
		if err := txn.Delete([]byte(key)); err != nil {
			return err
		}
	}
	return nil
}
