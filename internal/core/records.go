package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/illarion/credvault/internal/crypto"
	"github.com/illarion/credvault/internal/records"
	"github.com/illarion/credvault/internal/storage"
)

// RecordFile is the encrypted record file. It is locked until Open
// authenticates and locked again by Close.
type RecordFile struct {
	store    *Store
	name     string
	unlocked bool
}

// Name returns the file name
func (f *RecordFile) Name() string {
	return f.name
}

// Exists reports whether the file is present
func (f *RecordFile) Exists() (bool, error) {
	return f.store.root.Exists(f.name)
}

// Unlocked reports whether Open has succeeded since the last Close
func (f *RecordFile) Unlocked() bool {
	return f.unlocked
}

func (f *RecordFile) lock() {
	f.unlocked = false
}

// Open authenticates and returns the decrypted records. An empty file
// holds no records. A token that fails to decrypt is reported as
// ErrDecryption, never as ErrAuthentication.
func (f *RecordFile) Open(ctx context.Context) (*records.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exists, err := f.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, f.name)
	}

	if err := f.store.Authenticate(); err != nil {
		return nil, err
	}

	set, err := f.decrypt()
	if err != nil {
		return nil, err
	}

	f.unlocked = true
	f.store.touchMeta((*storage.Storage).UpdateOpened)
	return set, nil
}

func (f *RecordFile) decrypt() (*records.Set, error) {
	token, err := f.store.root.ReadFile(f.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
	}
	if len(token) == 0 {
		return records.NewSet(), nil
	}

	c, err := f.store.readKey()
	if err != nil {
		return nil, err
	}
	defer c.Destroy()

	plaintext, err := c.Decrypt(token)
	if err != nil {
		f.store.log.Error("failed to decrypt vault file", "file", f.name, "error", err)
		if errors.Is(err, ErrDecryption) {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecryption, f.name, err)
	}
	defer crypto.ClearBytes(plaintext)

	set, err := records.ParseCSV(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, f.name, err)
	}
	return set, nil
}

// Close encrypts set and replaces the file with the token. The vault
// must have been opened first; afterwards it is locked again.
func (f *RecordFile) Close(ctx context.Context, set *records.Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("%w: nil record set", ErrInvalidRecordSet)
	}
	if !f.unlocked {
		return ErrLocked
	}

	plaintext, err := set.MarshalCSV()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecordSet, err)
	}
	defer crypto.ClearBytes(plaintext)

	c, err := f.store.readKey()
	if err != nil {
		return err
	}
	defer c.Destroy()

	token, err := c.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", f.name, err)
	}

	if err := f.store.root.WriteFile(f.name, token); err != nil {
		return err
	}

	f.lock()
	f.store.touchMeta((*storage.Storage).UpdateModified)
	f.store.log.Debug("vault file written", "file", f.name, "records", set.Len())
	return nil
}
