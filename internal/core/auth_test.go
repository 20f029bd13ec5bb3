package core

import (
	"context"
	"testing"

	"github.com/illarion/credvault/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMasterPassword(t *testing.T) {
	s, _ := newTestStore(t, t.TempDir(), provisionAnswers...)

	result, err := s.CheckMasterPassword("hunter2")
	require.NoError(t, err)
	assert.Equal(t, AuthSuccess, result)

	result, err = s.CheckMasterPassword("Hunter2")
	require.NoError(t, err)
	assert.Equal(t, AuthRecoveryOffered, result)
	assert.Equal(t, "recovery offered", result.String())
}

func TestCheckMasterPasswordWithoutQuestions(t *testing.T) {
	s, _ := newTestStore(t, t.TempDir(), "hunter2", StopWord)

	result, err := s.CheckMasterPassword("wrong")
	require.NoError(t, err)
	assert.Equal(t, AuthWrongPassword, result)
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		asked   []string
		wantErr error
	}{
		{
			name:    "correct password",
			answers: []string{"hunter2"},
			asked:   []string{PromptMasterPassword},
		},
		{
			name:    "wrong password, recovery declined",
			answers: []string{"wrong", "no"},
			asked:   []string{PromptMasterPassword, PromptForgotPassword},
			wantErr: ErrAuthentication,
		},
		{
			name:    "help must be upper case",
			answers: []string{"wrong", "help"},
			asked:   []string{PromptMasterPassword, PromptForgotPassword},
			wantErr: ErrAuthentication,
		},
		{
			name:    "recovery with matching answer",
			answers: []string{"wrong", HelpWord, "Rex"},
			asked:   []string{PromptMasterPassword, PromptForgotPassword, "pet name?"},
		},
		{
			name:    "recovery answer is case sensitive",
			answers: []string{"wrong", HelpWord, "rex"},
			asked:   []string{PromptMasterPassword, PromptForgotPassword, "pet name?"},
			wantErr: ErrAuthentication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p := newTestStore(t, t.TempDir(), provisionAnswers...)
			p.script = prompt.NewScript(tt.answers...)

			err := s.Authenticate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.asked, p.script.Asked)
		})
	}
}

func TestAuthenticateWithoutQuestionsSkipsRecovery(t *testing.T) {
	s, p := newTestStore(t, t.TempDir(), "hunter2", StopWord)
	p.script = prompt.NewScript("wrong", HelpWord)

	err := s.Authenticate()
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, []string{PromptMasterPassword}, p.script.Asked)
}

func TestAuthenticatePromptFailure(t *testing.T) {
	s, p := newTestStore(t, t.TempDir(), provisionAnswers...)
	p.script = prompt.NewScript()

	err := s.Authenticate()
	assert.ErrorIs(t, err, prompt.ErrScriptExhausted)
	assert.NotErrorIs(t, err, ErrAuthentication)
}

func TestRecoveryUnlocksRecords(t *testing.T) {
	s, p := newTestStore(t, t.TempDir(), provisionAnswers...)
	p.script = prompt.NewScript("forgot", HelpWord, "Rex")

	set, err := s.Records().Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.True(t, s.Records().Unlocked())
}

func TestRecoverPicksAmongQuestions(t *testing.T) {
	s, p := newTestStore(t, t.TempDir(),
		"hunter2", "first?", "one", "second?", "two", "third?", "three", StopWord)

	// zeroReader always draws index 0
	p.script = prompt.NewScript("one")
	ok, err := s.RecoverViaSecurityQuestion()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"first?"}, p.script.Asked)

	p.script = prompt.NewScript("two")
	ok, err = s.RecoverViaSecurityQuestion()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecoverWithoutQuestions(t *testing.T) {
	s, p := newTestStore(t, t.TempDir(), "hunter2", StopWord)
	p.script = prompt.NewScript()

	ok, err := s.RecoverViaSecurityQuestion()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, p.script.Asked)
}
