// Package keyring caches master passwords in the OS keyring, keyed by vault ID.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "credvault"

var ErrNotFound = keyring.ErrNotFound

// SavePassword stores a master password in the OS keyring
func SavePassword(vaultID string, password string) error {
	return keyring.Set(serviceName, vaultID, password)
}

// GetPassword retrieves a master password from the OS keyring
func GetPassword(vaultID string) (string, error) {
	return keyring.Get(serviceName, vaultID)
}

// DeletePassword removes a master password from the OS keyring.
// A missing entry is not an error.
func DeletePassword(vaultID string) error {
	if err := keyring.Delete(serviceName, vaultID); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// HasPassword checks if a password is stored in the keyring
func HasPassword(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}
