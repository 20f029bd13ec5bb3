// Package security confines credvault's file handling.
//
// NameValidator applies the host platform's file naming rules before any
// artifact is touched. Root is a handle on the vault directory, built on
// os.Root, through which every artifact is read, written and removed.
package security
