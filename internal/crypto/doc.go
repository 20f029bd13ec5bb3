// Package crypto provides cryptographic operations for credvault.
//
// Record files are sealed into tokens:
//   - 1-byte format version, bound as additional authenticated data
//   - 12-byte random nonce per encryption operation
//   - AES-256-GCM ciphertext and 16-byte tag
//
// The AES key is derived from the raw 32-byte key file with HKDF-SHA256.
// The key file is random and never derived from the master password.
//
// Master passwords and security answers are stored as SHA-256 digests
// and compared in constant time.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Cipher.Destroy() when done with encryption operations
package crypto
