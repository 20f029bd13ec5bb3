package records

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/illarion/credvault/internal/prompt"
)

// PromptPasswordLength asks for the length of a generated password
const PromptPasswordLength = "What would you like the length of your password to be? "

var ErrAmbiguousOrMissingRecord = errors.New("username must match exactly one record")

// Manager mutates an unlocked record set
type Manager struct {
	set *Set
}

// NewManager wraps set. A nil set starts empty.
func NewManager(set *Set) *Manager {
	if set == nil {
		set = &Set{}
	}
	return &Manager{set: set}
}

// Set returns the managed set, ready to be closed back into the vault
func (m *Manager) Set() *Set {
	return m.set
}

// Add appends a record. Usernames may repeat.
func (m *Manager) Add(username, password string) {
	m.set.records = append(m.set.records, Record{Username: username, Password: password})
}

// Remove deletes the single record for username. Zero matches or more
// than one match leave the set untouched and return ErrAmbiguousOrMissingRecord.
func (m *Manager) Remove(username string) error {
	index := -1
	matches := 0
	for i, rec := range m.set.records {
		if rec.Username == username {
			index = i
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: %q has %d records", ErrAmbiguousOrMissingRecord, username, matches)
	}

	m.set.records = append(m.set.records[:index], m.set.records[index+1:]...)
	return nil
}

// Retrieve returns every record for username, in order
func (m *Manager) Retrieve(username string) *Set {
	found := &Set{}
	for _, rec := range m.set.records {
		if rec.Username == username {
			found.records = append(found.records, rec)
		}
	}
	return found
}

// GeneratePassword asks p for a length and returns a password of that
// many distinct characters from Alphabet
func (m *Manager) GeneratePassword(p prompt.Provider) (string, error) {
	answer, err := p.Prompt(PromptPasswordLength)
	if err != nil {
		return "", fmt.Errorf("failed to read password length: %w", err)
	}

	length, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLength, answer)
	}

	return GeneratePassword(length)
}
