// Package core provides the credvault vault operations.
//
// A Store is bound to one vault directory and one record file name. It
// provisions missing artifacts on construction:
//   - key.key: random key material, independent of the master password
//   - mpass.txt: SHA-256 digest of the master password
//   - security.csv: security questions with digested answers
//   - the record file: empty until the first Close
//
// Two VaultFile variants share the Store's plumbing:
//   - RecordFile: authenticated Open, encrypted Close
//   - QuestionFile: plain Open, Close that only ever stores answer digests
//
// Authentication checks the master password and, on mismatch, offers one
// randomly chosen security question as a recovery path.
package core
