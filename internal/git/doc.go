// Package git reports whether vault secrets are exposed to a git repository.
//
// The key file sits next to the ciphertext it opens, so committing both
// hands out every record. Checks performed on each secret artifact:
//   - tracked by git (should not be)
//   - matched by .gitignore (should be)
package git
