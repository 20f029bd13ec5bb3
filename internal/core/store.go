package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/illarion/credvault/internal/crypto"
	"github.com/illarion/credvault/internal/logging"
	"github.com/illarion/credvault/internal/prompt"
	"github.com/illarion/credvault/internal/security"
	"github.com/illarion/credvault/internal/storage"
)

// Artifact names inside the vault directory
const (
	KeyFile          = "key.key"
	MasterFile       = "mpass.txt"
	SecurityFile     = "security.csv"
	MetaFile         = ".credvault.meta"
	DefaultVaultFile = "password.csv"
)

var reservedNames = map[string]bool{
	KeyFile:      true,
	MasterFile:   true,
	SecurityFile: true,
	MetaFile:     true,
}

// Prompts sent to the prompt provider
const (
	PromptNewMasterPassword = "What would you like your master password to be?"
	PromptNewQuestion       = "Please input a security question. Input 'stop' to stop."
	PromptNewAnswer         = "Please input an answer to said security question. (CASE SENSITIVE): "
	PromptMasterPassword    = "Please input your master password. (CASE SENSITIVE)"
	PromptForgotPassword    = "Password incorrect. Type 'HELP' if you forgot your password."
)

// Sentinel answers
const (
	StopWord = "stop"
	HelpWord = "HELP"
)

var (
	ErrInvalidName      = security.ErrInvalidName
	ErrVaultNotFound    = errors.New("vault file not found")
	ErrAuthentication   = errors.New("master password is incorrect")
	ErrInvalidRecordSet = errors.New("invalid record set")
	ErrLocked           = errors.New("vault is locked")
	ErrCorrupted        = errors.New("vault artifact is corrupted")
	ErrDecryption       = crypto.ErrDecryptionFailed
	ErrEmptyQuestion    = errors.New("security question is empty")
)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger. Secrets are never logged.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithNameValidator replaces the running platform's naming rules
func WithNameValidator(v *security.NameValidator) Option {
	return func(s *Store) { s.names = v }
}

// WithoutProvisioning makes New leave missing artifacts missing. Such a
// store can report Status but cannot unlock.
func WithoutProvisioning() Option {
	return func(s *Store) { s.readOnly = true }
}

// WithRand sets the randomness source used to pick recovery questions
func WithRand(r io.Reader) Option {
	return func(s *Store) { s.rand = r }
}

// Store manages the artifacts of one vault directory
type Store struct {
	root   *security.Root
	name   string
	prompt prompt.Provider
	names  *security.NameValidator
	log    *slog.Logger
	rand   io.Reader

	readOnly    bool
	provisioned bool

	records   *RecordFile
	questions *QuestionFile
}

// New opens the vault directory dir for the record file name. If the key,
// the master credential or the named file is missing, the missing
// artifacts are provisioned, prompting p for the master password and
// security questions. An illegal name fails with ErrInvalidName before
// anything on disk is touched.
func New(dir, name string, p prompt.Provider, opts ...Option) (*Store, error) {
	s := &Store{
		name:   name,
		prompt: p,
		names:  security.DefaultNameValidator(),
		log:    logging.Discard(),
		rand:   rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.names.Validate(name); err != nil {
		return nil, err
	}
	if reservedNames[name] {
		return nil, fmt.Errorf("%w: %q is reserved for vault artifacts", ErrInvalidName, name)
	}

	root, err := security.OpenRoot(dir, s.names)
	if err != nil {
		return nil, err
	}
	s.root = root
	s.log = s.log.With("dir", root.Dir())
	s.records = &RecordFile{store: s, name: name}
	s.questions = &QuestionFile{store: s}

	missing, err := s.anyMissing(KeyFile, MasterFile, name)
	if err != nil {
		root.Close()
		return nil, err
	}
	if missing && !s.readOnly {
		if err := s.provision(); err != nil {
			root.Close()
			return nil, err
		}
		s.provisioned = true
	}

	return s, nil
}

// Close releases the directory handle
func (s *Store) Close() error {
	s.records.lock()
	return s.root.Close()
}

// Provisioned reports whether New had to create any artifact
func (s *Store) Provisioned() bool {
	return s.provisioned
}

// FileName returns the record file name the store is bound to
func (s *Store) FileName() string {
	return s.name
}

// Dir returns the absolute vault directory
func (s *Store) Dir() string {
	return s.root.Dir()
}

// Paths returns the absolute path of every artifact
func (s *Store) Paths() map[string]string {
	return map[string]string{
		KeyFile:      s.root.Path(KeyFile),
		MasterFile:   s.root.Path(MasterFile),
		SecurityFile: s.root.Path(SecurityFile),
		MetaFile:     s.root.Path(MetaFile),
		s.name:       s.root.Path(s.name),
	}
}

// Records returns the encrypted record file
func (s *Store) Records() *RecordFile {
	return s.records
}

// Questions returns the security question file
func (s *Store) Questions() *QuestionFile {
	return s.questions
}

func (s *Store) anyMissing(names ...string) (bool, error) {
	for _, name := range names {
		exists, err := s.root.Exists(name)
		if err != nil {
			return false, err
		}
		if !exists {
			return true, nil
		}
	}
	return false, nil
}

// provision creates every missing artifact. Present artifacts are left alone.
func (s *Store) provision() error {
	if exists, err := s.root.Exists(KeyFile); err != nil {
		return err
	} else if !exists {
		key, err := crypto.GenerateKey()
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		err = s.root.Create(KeyFile, key)
		crypto.ClearBytes(key)
		if err != nil {
			return err
		}
		s.log.Info("created key file", "file", KeyFile)
	}

	if exists, err := s.root.Exists(MasterFile); err != nil {
		return err
	} else if !exists {
		password, err := s.prompt.Prompt(PromptNewMasterPassword)
		if err != nil {
			return fmt.Errorf("failed to read master password: %w", err)
		}
		if err := s.root.Create(MasterFile, []byte(crypto.Hash(password).String())); err != nil {
			return err
		}
		s.log.Info("created master credential", "file", MasterFile)
	}

	if exists, err := s.root.Exists(SecurityFile); err != nil {
		return err
	} else if !exists {
		set, err := s.askQuestions()
		if err != nil {
			return err
		}
		if err := s.questions.write(set); err != nil {
			return err
		}
		s.log.Info("created security questions", "file", SecurityFile, "count", set.Len())
	}

	if exists, err := s.root.Exists(s.name); err != nil {
		return err
	} else if !exists {
		if err := s.root.Create(s.name, nil); err != nil {
			return err
		}
		s.log.Info("created empty vault file", "file", s.name)
	}

	return s.withMeta(func(meta *storage.Storage) error {
		return meta.Initialize()
	})
}

// askQuestions prompts for question/answer pairs until StopWord. An empty
// question is asked again.
func (s *Store) askQuestions() (*QuestionSet, error) {
	set := NewQuestionSet()
	for {
		question, err := s.prompt.Prompt(PromptNewQuestion)
		if err != nil {
			return nil, fmt.Errorf("failed to read security question: %w", err)
		}
		if question == StopWord {
			return set, nil
		}
		if IsEmptyQuestion(question) {
			s.log.Warn("empty security question ignored")
			continue
		}

		answer, err := s.prompt.Prompt(PromptNewAnswer)
		if err != nil {
			return nil, fmt.Errorf("failed to read security answer: %w", err)
		}
		set.Add(question, answer)
	}
}

// withMeta opens the metadata database for the duration of fn
func (s *Store) withMeta(fn func(*storage.Storage) error) error {
	meta, err := storage.Open(s.root.Path(MetaFile))
	if err != nil {
		return err
	}
	defer meta.Close()
	return fn(meta)
}

// touchMeta records a timestamp, logging instead of failing the caller
func (s *Store) touchMeta(update func(*storage.Storage) error) {
	err := s.withMeta(func(meta *storage.Storage) error {
		if err := meta.Initialize(); err != nil {
			return err
		}
		return update(meta)
	})
	if err != nil {
		s.log.Warn("failed to update metadata", "error", err)
	}
}

func (s *Store) readKey() (*crypto.Cipher, error) {
	key, err := s.root.ReadFile(KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	defer crypto.ClearBytes(key)

	c, err := crypto.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, KeyFile, err)
	}
	return c, nil
}

// FactoryReset deletes the named vault file, the default vault file, the
// key, the master credential, the security questions and the metadata,
// then provisions everything again. Confirmation is the caller's job.
func (s *Store) FactoryReset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.records.lock()

	for _, name := range []string{s.name, DefaultVaultFile, KeyFile, MasterFile, SecurityFile, MetaFile} {
		if err := s.root.Remove(name); err != nil {
			return err
		}
	}
	s.log.Warn("factory reset: all artifacts deleted")

	return s.provision()
}

// Status describes the vault without needing the master password
type Status struct {
	Dir       string
	VaultFile string
	Artifacts map[string]bool // artifact name -> present
	Meta      *storage.Info   // nil if the metadata file is missing or unreadable
}

// Status reports which artifacts exist and the vault metadata
func (s *Store) Status(ctx context.Context) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := &Status{
		Dir:       s.root.Dir(),
		VaultFile: s.name,
		Artifacts: make(map[string]bool),
	}
	for _, name := range []string{KeyFile, MasterFile, SecurityFile, MetaFile, s.name} {
		exists, err := s.root.Exists(name)
		if err != nil {
			return nil, err
		}
		st.Artifacts[name] = exists
	}

	if st.Artifacts[MetaFile] {
		err := s.withMeta(func(meta *storage.Storage) error {
			info, err := meta.Info()
			if err != nil {
				return err
			}
			st.Meta = info
			return nil
		})
		if err != nil {
			s.log.Warn("failed to read metadata", "error", err)
		}
	}

	return st, nil
}

// VaultID returns the ID used to look the vault up in the OS keyring
func (s *Store) VaultID() (string, error) {
	var id string
	err := s.withMeta(func(meta *storage.Storage) error {
		if err := meta.Initialize(); err != nil {
			return err
		}
		var err error
		id, err = meta.GetVaultID()
		return err
	})
	return id, err
}
