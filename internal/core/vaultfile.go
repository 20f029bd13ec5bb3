package core

import (
	"context"

	"github.com/illarion/credvault/internal/records"
)

// VaultFile is a file in the vault directory that is read whole into T
// and written back whole from T
type VaultFile[T any] interface {
	Name() string
	Exists() (bool, error)
	Open(ctx context.Context) (T, error)
	Close(ctx context.Context, contents T) error
}

var (
	_ VaultFile[*records.Set] = (*RecordFile)(nil)
	_ VaultFile[*QuestionSet] = (*QuestionFile)(nil)
)
