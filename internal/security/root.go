package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	DirPermSecure  = 0700 // Directory: owner rwx only
	FilePermSecure = 0600 // File: owner rw only
)

var ErrNotLocal = errors.New("name must be a plain file name inside the vault directory")

// Root is a handle on the vault directory. All file operations are
// confined to it using the os.Root API, and every name passes the
// NameValidator first.
type Root struct {
	root  *os.Root
	dir   string
	names *NameValidator
}

// OpenRoot opens dir, creating it with owner-only permissions if missing
func OpenRoot(dir string, names *NameValidator) (*Root, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := os.MkdirAll(absDir, DirPermSecure); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	root, err := os.OpenRoot(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault directory: %w", err)
	}

	if names == nil {
		names = DefaultNameValidator()
	}

	return &Root{root: root, dir: absDir, names: names}, nil
}

// Close releases the directory handle
func (r *Root) Close() error {
	if r.root != nil {
		return r.root.Close()
	}
	return nil
}

// Dir returns the absolute vault directory
func (r *Root) Dir() string {
	return r.dir
}

// Path returns the absolute path of name inside the vault directory
func (r *Root) Path(name string) string {
	return filepath.Join(r.dir, name)
}

// Check validates name for use inside the root
func (r *Root) Check(name string) error {
	if err := r.names.Validate(name); err != nil {
		return err
	}
	if name == "" || !filepath.IsLocal(name) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrNotLocal, name)
	}
	return nil
}

// Exists reports whether name is present
func (r *Root) Exists(name string) (bool, error) {
	if err := r.Check(name); err != nil {
		return false, err
	}
	_, err := r.root.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", name, err)
}

// ReadFile reads the whole of name
func (r *Root) ReadFile(name string) ([]byte, error) {
	if err := r.Check(name); err != nil {
		return nil, err
	}
	return r.root.ReadFile(name)
}

// Create writes a new file and fails if name already exists
func (r *Root) Create(name string, data []byte) error {
	if err := r.Check(name); err != nil {
		return err
	}

	f, err := r.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePermSecure)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}

// WriteFile replaces name with data. The data is written to a temporary
// file first and renamed over name, so readers never see a partial write.
// The temporary name has a fixed length, so any legal name can be written.
func (r *Root) WriteFile(name string, data []byte) error {
	if err := r.Check(name); err != nil {
		return err
	}

	tmp, err := tempName()
	if err != nil {
		return err
	}
	if err := r.root.WriteFile(tmp, data, FilePermSecure); err != nil {
		r.root.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := r.root.Rename(tmp, name); err != nil {
		r.root.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func tempName() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to name temporary file: %w", err)
	}
	return ".credvault-" + hex.EncodeToString(b[:]) + ".tmp", nil
}

// Remove deletes name. A missing file is not an error.
func (r *Root) Remove(name string) error {
	if err := r.Check(name); err != nil {
		return err
	}
	if err := r.root.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
