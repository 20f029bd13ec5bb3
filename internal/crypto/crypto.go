package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	KeySize      = 32   // Raw key file size and AES-256 key size
	NonceSize    = 12   // GCM nonce size
	TagSize      = 16   // GCM authentication tag size
	DigestSize   = 32   // SHA-256 output size
	TokenVersion = 0x01 // Current token format
)

// hkdfInfo separates the record-file subkey from any future use of the key file.
var hkdfInfo = []byte("credvault record file v1")

var (
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidToken     = errors.New("invalid token")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidDigest    = errors.New("invalid digest")
)

// Digest is a SHA-256 digest of a UTF-8 string
type Digest [DigestSize]byte

// Hash returns the digest of s
func Hash(s string) Digest {
	return Digest(sha256.Sum256([]byte(s)))
}

// String returns the lowercase hex form stored on disk
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Equal compares two digests in constant time
func (d Digest) Equal(other Digest) bool {
	return ConstantTimeCompare(d[:], other[:])
}

// Matches reports whether s hashes to d
func (d Digest) Matches(s string) bool {
	return d.Equal(Hash(s))
}

// ParseDigest parses the hex form produced by Digest.String
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != DigestSize {
		return d, fmt.Errorf("%w: %q", ErrInvalidDigest, s)
	}
	copy(d[:], b)
	return d, nil
}

// GenerateKey returns fresh key material for a key file
func GenerateKey() ([]byte, error) {
	return GenerateRandom(KeySize)
}

// Cipher seals and opens whole-file tokens
type Cipher struct {
	subkey []byte
}

// NewCipher creates a cipher from raw key file contents
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	subkey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, hkdfInfo), subkey); err != nil {
		return nil, fmt.Errorf("failed to derive subkey: %w", err)
	}

	return &Cipher{subkey: subkey}, nil
}

func (c *Cipher) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.subkey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext into a versioned token
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	header := []byte{TokenVersion}

	// version || nonce || ciphertext+tag
	token := make([]byte, 0, 1+NonceSize+len(plaintext)+TagSize)
	token = append(token, header...)
	token = append(token, nonce...)
	token = gcm.Seal(token, nonce, plaintext, header)

	return token, nil
}

// Decrypt opens a token produced by Encrypt.
// Any tampering or a different key yields ErrDecryptionFailed.
func (c *Cipher) Decrypt(token []byte) ([]byte, error) {
	if len(token) < 1+NonceSize+TagSize {
		return nil, ErrInvalidToken
	}
	if token[0] != TokenVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidToken, token[0])
	}

	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}

	header := token[:1]
	nonce := token[1 : 1+NonceSize]
	sealed := token[1+NonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, header)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

// Destroy clears the derived key from memory
func (c *Cipher) Destroy() {
	ClearBytes(c.subkey)
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
