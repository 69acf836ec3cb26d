// Package database holds persistent storage used by upstream adapters.
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// BoltKVStore provides simple kv store interface based on boltdb.
type BoltKVStore struct {
	db         *bbolt.DB
	bucketName []byte
}

// NewBoltKVStore creates new BoltKVStore instance.
// Missing parent directories are created. Open fails after lockTimeout if database is held by another process.
func NewBoltKVStore(dbPath string, bucketName string, lockTimeout time.Duration) (*BoltKVStore, error) {
	if bucketName == "" {
		return nil, errors.New("bucket name cannot be empty")
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating database bucket: %w", err)
	}

	return &BoltKVStore{
		db:         db,
		bucketName: []byte(bucketName),
	}, nil
}

// ReadKey returns data saved for given key. Returns nil if there's no data stored.
func (s *BoltKVStore) ReadKey(key []byte) ([]byte, error) {
	var data []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucketName).Get(key)
		if v != nil {
			// Value is only valid inside transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading from db: %w", err)
	}

	return data, nil
}

// UpdateKey stores given data under given key.
func (s *BoltKVStore) UpdateKey(key []byte, data []byte) error {
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucketName).Put(key, data)
	}); err != nil {
		return fmt.Errorf("writing to db: %w", err)
	}

	return nil
}

// Len returns number of keys in the bucket.
func (s *BoltKVStore) Len() (int, error) {
	var n int
	if err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(s.bucketName).Stats().KeyN
		return nil
	}); err != nil {
		return 0, fmt.Errorf("reading db stats: %w", err)
	}

	return n, nil
}

// Close closes database.
func (s *BoltKVStore) Close() error {
	return s.db.Close()
}
