package core

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/illarion/credvault/internal/crypto"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff authenticates, then returns a unified diff from the vault's
// records to local, a CSV file in the stored form. The result is empty
// when both hold the same records. The vault is left locked.
func (f *RecordFile) Diff(ctx context.Context, localName string, local []byte) (string, error) {
	set, err := f.Open(ctx)
	if err != nil {
		return "", err
	}
	defer f.lock()

	vaultData, err := set.MarshalCSV()
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(vaultData)

	return GenerateUnifiedDiff(f.name, localName, vaultData, local), nil
}

// GenerateUnifiedDiff generates a line diff using go-diff.
// Returns an empty string if the contents are identical.
func GenerateUnifiedDiff(fromName, toName string, from, to []byte) string {
	if bytes.Equal(from, to) {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for record-per-line output
	fromStr, toStr := string(from), string(to)
	a, b, lineArray := dmp.DiffLinesToChars(fromStr, toStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(fromStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- a/%s\n", fromName))
	result.WriteString(fmt.Sprintf("+++ b/%s\n", toName))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}
