package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringRoundTrip(t *testing.T) {
	keyring.MockInit()

	const vaultID = "0b6f1d2e-vault"

	assert.False(t, HasPassword(vaultID))
	_, err := GetPassword(vaultID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SavePassword(vaultID, "hunter2"))
	assert.True(t, HasPassword(vaultID))

	got, err := GetPassword(vaultID)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	require.NoError(t, DeletePassword(vaultID))
	assert.False(t, HasPassword(vaultID))
	assert.NoError(t, DeletePassword(vaultID))
}
