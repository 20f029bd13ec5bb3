package core

import (
	"context"
	"testing"

	"github.com/illarion/credvault/internal/prompt"
	"github.com/illarion/credvault/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiff(t *testing.T) {
	same := []byte("Username,Password\nalice,p1\n")
	assert.Empty(t, GenerateUnifiedDiff("a.csv", "b.csv", same, same))

	diff := GenerateUnifiedDiff("a.csv", "b.csv",
		[]byte("Username,Password\nalice,p1\n"),
		[]byte("Username,Password\nalice,p1\nbob,p2\n"))
	assert.Contains(t, diff, "--- a/a.csv\n")
	assert.Contains(t, diff, "+++ b/b.csv\n")
	assert.Contains(t, diff, "@@")
	assert.Contains(t, diff, "bob")
}

func TestRecordFileDiff(t *testing.T) {
	s, p := newTestStore(t, t.TempDir(), provisionAnswers...)
	ctx := context.Background()

	p.script = prompt.NewScript("hunter2")
	set, err := s.Records().Open(ctx)
	require.NoError(t, err)
	m := records.NewManager(set)
	m.Add("alice", "p1")
	require.NoError(t, s.Records().Close(ctx, m.Set()))

	local, err := m.Set().MarshalCSV()
	require.NoError(t, err)

	p.script = prompt.NewScript("hunter2")
	diff, err := s.Records().Diff(ctx, "local.csv", local)
	require.NoError(t, err)
	assert.Empty(t, diff)
	assert.False(t, s.Records().Unlocked())

	p.script = prompt.NewScript("hunter2")
	diff, err = s.Records().Diff(ctx, "local.csv", append(local, []byte("bob,p2\n")...))
	require.NoError(t, err)
	assert.Contains(t, diff, "+++ b/local.csv")
	assert.Contains(t, diff, "bob")

	p.script = prompt.NewScript("wrong", "no")
	_, err = s.Records().Diff(ctx, "local.csv", local)
	assert.ErrorIs(t, err, ErrAuthentication)
}
