package cart

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var cartBucket = []byte("cart")

// BoltStore persists the cart to a local bbolt file, the durable storage
// owned by one browsing session. Concurrent writers from other processes
// are last-writer-wins; no cross-process coordination is attempted.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cart store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cartBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cart bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load() ([]Line, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(cartBucket).Get([]byte(StorageKey)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeLines(data)
}

func (s *BoltStore) Save(lines []Line) error {
	data, err := encodeLines(lines)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartBucket).Put([]byte(StorageKey), data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
