// Package storage provides the BBolt metadata file that sits beside a
// credvault vault.
//
// The database holds a single config bucket with the format version, the
// vault ID used for keyring lookups, and created/modified/opened timestamps.
// Nothing in it is secret, so credvault status can read it without a
// password.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
