package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"success":false,"message":"Member not found","data":null}`))
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "Member not found", env.Message)
	assert.Equal(t, "null", string(env.Data))

	env, err = DecodeEnvelope([]byte(`{"data":{"id":1}}`))
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":1}`, string(env.Data))

	env, err = DecodeEnvelope([]byte(`[1]`))
	require.NoError(t, err)
	assert.True(t, env.Success)

	_, err = DecodeEnvelope([]byte(`<html>`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "nope", Message([]byte(`{"message":"nope"}`)))
	assert.Equal(t, "The reason field is required.",
		Message([]byte(`{"errors":{"reason":["The reason field is required."]}}`)))
	assert.Equal(t, "", Message([]byte(`{}`)))
	assert.Equal(t, "", Message([]byte(`<html>`)))
}
