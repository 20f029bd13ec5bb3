package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// FormatVersion is written on initialization
const FormatVersion = "1"

// Bucket names
var (
	ConfigBucket = []byte("config")
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigOpened   = []byte("opened")
	ConfigVaultID  = []byte("vault_id")
)

var ErrNotInitialized = errors.New("metadata not initialized")

// Storage provides BBolt-based storage for vault metadata
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a metadata database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the config bucket and stamps version, creation time
// and a vault ID. Existing values are kept.
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config, err := tx.CreateBucketIfNotExists(ConfigBucket)
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", ConfigBucket, err)
		}

		if config.Get(ConfigVersion) != nil {
			return nil
		}

		if err := config.Put(ConfigVersion, []byte(FormatVersion)); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		if err := config.Put(ConfigModified, created); err != nil {
			return err
		}

		if config.Get(ConfigVaultID) == nil {
			return config.Put(ConfigVaultID, []byte(uuid.NewString()))
		}
		return nil
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

func (s *Storage) putTime(key []byte, t time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data, err := t.MarshalBinary()
		if err != nil {
			return err
		}
		return config.Put(key, data)
	})
}

// getTime returns the zero time if key was never written
func (s *Storage) getTime(key []byte) (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(key)
		if data == nil {
			return nil
		}
		return t.UnmarshalBinary(data)
	})
	return t, err
}

// UpdateModified records that the vault file was rewritten
func (s *Storage) UpdateModified() error {
	return s.putTime(ConfigModified, time.Now())
}

// UpdateOpened records a successful unlock
func (s *Storage) UpdateOpened() error {
	return s.putTime(ConfigOpened, time.Now())
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// Info reads every metadata value at once
func (s *Storage) Info() (*Info, error) {
	info := &Info{}
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		info.Version = string(config.Get(ConfigVersion))
		info.VaultID = string(config.Get(ConfigVaultID))
		for key, dst := range map[string]*time.Time{
			string(ConfigCreated):  &info.Created,
			string(ConfigModified): &info.Modified,
			string(ConfigOpened):   &info.Opened,
		} {
			if data := config.Get([]byte(key)); data != nil {
				if err := dst.UnmarshalBinary(data); err != nil {
					return fmt.Errorf("failed to decode %s: %w", key, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}
