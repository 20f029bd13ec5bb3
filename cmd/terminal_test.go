package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/illarion/credvault/internal/core"
	"github.com/illarion/credvault/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalReadsLines(t *testing.T) {
	var out bytes.Buffer
	term := newTerminal(strings.NewReader("first\r\nsecond"), &out)

	answer, err := term.Prompt("Question?")
	require.NoError(t, err)
	assert.Equal(t, "first", answer)

	// not a tty, so password prompts are read as plain lines
	answer, err = term.Prompt(core.PromptMasterPassword)
	require.NoError(t, err)
	assert.Equal(t, "second", answer)

	_, err = term.Prompt("Again?")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Question? "+core.PromptMasterPassword+" Again? ", out.String())
}

func TestCredentialPromptUsesEnvOnce(t *testing.T) {
	base := prompt.NewScript("typed")
	c := &credentialPrompt{base: base, envPassword: "from-env"}

	answer, err := c.Prompt(core.PromptMasterPassword)
	require.NoError(t, err)
	assert.Equal(t, "from-env", answer)
	assert.Equal(t, SourceEnv, c.source)

	answer, err = c.Prompt(core.PromptMasterPassword)
	require.NoError(t, err)
	assert.Equal(t, "typed", answer)
	assert.Equal(t, SourcePrompt, c.source)
	assert.Equal(t, "typed", c.lastTyped)
}

func TestCredentialPromptPassesOtherPrompts(t *testing.T) {
	base := prompt.NewScript("Rex")
	c := &credentialPrompt{base: base, envPassword: "from-env"}

	answer, err := c.Prompt("pet name?")
	require.NoError(t, err)
	assert.Equal(t, "Rex", answer)
	assert.Equal(t, SourceNone, c.source)
	assert.Empty(t, c.lastTyped)
}
