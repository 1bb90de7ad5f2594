package oauth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiresIn(t *testing.T) {
	var tok Token
	err := json.Unmarshal([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600}`), &tok)
	require.NoError(t, err)

	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Expiry, time.Minute)
	assert.True(t, tok.Token().Valid())
}

func TestTokenError(t *testing.T) {
	var tok Token
	err := json.Unmarshal([]byte(`{"error":"invalid_grant","error_description":"refresh token expired"}`), &tok)
	assert.EqualError(t, err, "invalid_grant: refresh token expired")
}
