package client_test

import (
	"encoding/base64"
	"testing"

	"wallcraft/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials(t *testing.T) {
	opts, err := client.Credentials("")
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = client.Credentials(base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`)))
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = client.Credentials("%%%")
	assert.Error(t, err)
}
