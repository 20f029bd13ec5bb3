// Package records holds decrypted credentials in memory.
//
// A Set is an ordered list of username/password Records. Usernames are not
// unique: Retrieve returns every match, while Remove requires exactly one.
// Sets are stored as CSV with one username,password row per record and no
// header.
package records
