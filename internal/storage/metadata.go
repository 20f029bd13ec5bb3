package storage

import (
	"time"
)

// Info is the unencrypted metadata of one vault
type Info struct {
	Version  string
	VaultID  string
	Created  time.Time
	Modified time.Time
	Opened   time.Time // zero until the first successful unlock
}

// NeverOpened reports whether the vault has not been unlocked yet
func (i *Info) NeverOpened() bool {
	return i.Opened.IsZero()
}
