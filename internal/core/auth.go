package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/illarion/credvault/internal/crypto"
)

// AuthResult is the outcome of checking one master password
type AuthResult int

const (
	AuthSuccess         AuthResult = iota // Digest matches
	AuthWrongPassword                     // Mismatch and no recovery is possible
	AuthRecoveryOffered                   // Mismatch, security questions are available
)

func (r AuthResult) String() string {
	switch r {
	case AuthSuccess:
		return "success"
	case AuthWrongPassword:
		return "wrong password"
	case AuthRecoveryOffered:
		return "recovery offered"
	default:
		return "unknown"
	}
}

// masterCredential reads the stored master password digest
func (s *Store) masterCredential() (crypto.Digest, error) {
	data, err := s.root.ReadFile(MasterFile)
	if err != nil {
		return crypto.Digest{}, fmt.Errorf("failed to read master credential: %w", err)
	}
	d, err := crypto.ParseDigest(strings.TrimSpace(string(data)))
	if err != nil {
		return crypto.Digest{}, fmt.Errorf("%w: %s: %v", ErrCorrupted, MasterFile, err)
	}
	return d, nil
}

// CheckMasterPassword compares password with the stored master credential
func (s *Store) CheckMasterPassword(password string) (AuthResult, error) {
	stored, err := s.masterCredential()
	if err != nil {
		return AuthWrongPassword, err
	}
	if stored.Matches(password) {
		return AuthSuccess, nil
	}

	set, err := s.questions.read()
	if err != nil {
		return AuthWrongPassword, err
	}
	if set.Len() == 0 {
		return AuthWrongPassword, nil
	}
	return AuthRecoveryOffered, nil
}

// Authenticate prompts for the master password. On a mismatch it asks
// whether the user wants recovery; only the answer HELP starts it, and a
// single security question decides. Every other path ends in
// ErrAuthentication. There is no attempt limit.
func (s *Store) Authenticate() error {
	password, err := s.prompt.Prompt(PromptMasterPassword)
	if err != nil {
		return fmt.Errorf("failed to read master password: %w", err)
	}

	result, err := s.CheckMasterPassword(password)
	if err != nil {
		return err
	}

	switch result {
	case AuthSuccess:
		s.log.Debug("master password accepted")
		return nil
	case AuthRecoveryOffered:
		answer, err := s.prompt.Prompt(PromptForgotPassword)
		if err != nil {
			return fmt.Errorf("failed to read recovery choice: %w", err)
		}
		if answer != HelpWord {
			return ErrAuthentication
		}

		ok, err := s.RecoverViaSecurityQuestion()
		if err != nil {
			return err
		}
		if !ok {
			s.log.Warn("security question recovery failed")
			return fmt.Errorf("%w: recovery answer did not match", ErrAuthentication)
		}
		s.log.Warn("vault unlocked through security question recovery")
		return nil
	default:
		return ErrAuthentication
	}
}

// RecoverViaSecurityQuestion asks one question chosen uniformly at random
// and reports whether the answer's digest matches. Answers are case
// sensitive. With no questions stored it returns false without prompting.
func (s *Store) RecoverViaSecurityQuestion() (bool, error) {
	set, err := s.questions.read()
	if err != nil {
		return false, err
	}
	if set.Len() == 0 {
		return false, nil
	}

	n, err := rand.Int(s.rand, big.NewInt(int64(set.Len())))
	if err != nil {
		return false, fmt.Errorf("failed to pick security question: %w", err)
	}
	q := set.pairs[n.Int64()]

	answer, err := s.prompt.Prompt(q.Question)
	if err != nil {
		return false, fmt.Errorf("failed to read security answer: %w", err)
	}

	return q.AnswerDigest.Matches(answer), nil
}
