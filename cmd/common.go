package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/illarion/credvault/internal/config"
	"github.com/illarion/credvault/internal/core"
	"github.com/illarion/credvault/internal/keyring"
	"github.com/illarion/credvault/internal/prompt"
	"github.com/illarion/credvault/internal/records"
	"github.com/illarion/credvault/internal/security"
)

// maxAuthAttempts bounds how often get, list and friends ask again after
// a wrong master password
const maxAuthAttempts = 3

// Prompts owned by the command line
const (
	PromptRecordPassword = "Please input the password: "
	PromptSaveToKeyring  = "Save master password to the OS keyring? [y/N] "
	PromptConfirmReset   = "This deletes every record, the key, the master password and the security questions. Type 'yes' to continue: "
)

// PasswordSource tells where the last master password came from
type PasswordSource int

const (
	SourceNone PasswordSource = iota
	SourceEnv
	SourceKeyring
	SourcePrompt
)

// credentialPrompt answers the first master password prompt from
// CREDVAULT_PASSWORD or the OS keyring, and everything else from base
type credentialPrompt struct {
	base        prompt.Provider
	envPassword string
	vaultID     string // set when keyring lookup is enabled

	storedUsed bool
	source     PasswordSource
	lastTyped  string
}

func (c *credentialPrompt) Prompt(text string) (string, error) {
	if text == core.PromptMasterPassword && !c.storedUsed {
		c.storedUsed = true
		if c.envPassword != "" {
			c.source = SourceEnv
			return c.envPassword, nil
		}
		if c.vaultID != "" {
			if password, err := keyring.GetPassword(c.vaultID); err == nil {
				c.source = SourceKeyring
				return password, nil
			}
		}
	}

	answer, err := c.base.Prompt(text)
	if err != nil {
		return "", err
	}
	if text == core.PromptMasterPassword {
		c.source = SourcePrompt
		c.lastTyped = answer
	}
	return answer, nil
}

// openRecords unlocks the vault, asking again on a wrong master password
func (a *app) openRecords(ctx context.Context, s *core.Store) (*records.Set, error) {
	var err error
	for attempt := 1; attempt <= maxAuthAttempts; attempt++ {
		var set *records.Set
		set, err = s.Records().Open(ctx)
		if err == nil {
			a.offerToSavePassword(s)
			return set, nil
		}
		if !errors.Is(err, core.ErrAuthentication) {
			return nil, err
		}
		a.log.Warn("authentication failed", "attempt", attempt, "max", maxAuthAttempts)
	}
	return nil, err
}

// authenticate runs the master password check with the same retry policy
func (a *app) authenticate(s *core.Store) error {
	var err error
	for attempt := 1; attempt <= maxAuthAttempts; attempt++ {
		if err = s.Authenticate(); err == nil {
			return nil
		}
		if !errors.Is(err, core.ErrAuthentication) {
			return err
		}
		a.log.Warn("authentication failed", "attempt", attempt, "max", maxAuthAttempts)
	}
	return err
}

// offerToSavePassword asks to cache a typed, correct master password
func (a *app) offerToSavePassword(s *core.Store) {
	typed := a.prompt.lastTyped
	a.prompt.lastTyped = ""

	if !a.cfg.Keyring || a.prompt.source != SourcePrompt || a.prompt.vaultID == "" {
		return
	}
	if keyring.HasPassword(a.prompt.vaultID) {
		return
	}
	if result, err := s.CheckMasterPassword(typed); err != nil || result != core.AuthSuccess {
		return
	}

	answer, err := a.prompt.base.Prompt(PromptSaveToKeyring)
	if err != nil || !isYes(answer) {
		return
	}
	if err := keyring.SavePassword(a.prompt.vaultID, typed); err != nil {
		a.log.Warn("failed to save password to keyring", "error", err)
		return
	}
	a.log.Info("master password saved to keyring")
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// errorMessage describes err for the user
func errorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidName):
		return fmt.Sprintf("Error: %s\nUse a plain file name that is legal on %s", err, security.DefaultNameValidator().Platform())
	case errors.Is(err, core.ErrVaultNotFound):
		return fmt.Sprintf("Error: %s\nRun 'credvault init' first", err)
	case errors.Is(err, core.ErrAuthentication):
		return "Error: wrong master password"
	case errors.Is(err, core.ErrDecryption):
		return fmt.Sprintf("Error: %s\nThe key file does not match the vault file, or the vault file was modified", err)
	case errors.Is(err, core.ErrEmptyQuestion):
		return fmt.Sprintf("Error: %s\nType the question text, or 'stop' to skip", err)
	case errors.Is(err, records.ErrAmbiguousOrMissingRecord):
		return fmt.Sprintf("Error: %s\nUse 'credvault get <username>' to see the matching records", err)
	case errors.Is(err, records.ErrCarriageReturn):
		return fmt.Sprintf("Error: %s\nPasswords and usernames cannot contain carriage returns", err)
	case errors.Is(err, records.ErrRange), errors.Is(err, records.ErrInvalidLength):
		return fmt.Sprintf("Error: %s\nPassword length must be between 0 and %d", err, records.AlphabetSize)
	case errors.Is(err, config.ErrInvalidConfig):
		return fmt.Sprintf("Error: %s\nCheck %s and the CREDVAULT_* environment variables", err, config.FileName)
	default:
		return fmt.Sprintf("Error: %s", err)
	}
}

// HandleError prints err and exits with status 1
func HandleError(err error) {
	fmt.Fprintln(os.Stderr, errorMessage(err))
	os.Exit(1)
}
