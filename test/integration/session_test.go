package integration

import (
	"net/http"
	"stayspot/test/integration/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SignupLoginLogout(t *testing.T) {
	c, userID := testutil.SignedInClient(t)

	resp, err := c.Session()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User *struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, resp.DecodeJSON(&body))
	require.NotNil(t, body.User)
	assert.Equal(t, userID, body.User.ID)

	resp, err = c.Logout()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.Session()
	require.NoError(t, err)
	body.User = nil
	require.NoError(t, resp.DecodeJSON(&body))
	assert.Nil(t, body.User)
}

func TestSession_InvalidCredentials(t *testing.T) {
	c := testutil.NewClient(t)

	resp, err := c.Login("nobody@example.com", "wrong-password")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSession_ProtectedRouteWithoutSession(t *testing.T) {
	c := testutil.NewClient(t)

	resp, err := c.CreateSpot(testutil.NewSpotBuilder().Build())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
