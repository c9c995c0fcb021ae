package testutil

import (
	"fmt"
	"os"
	"stayspot/pkg/client"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	EnvServerURL = "TEST_SERVER_URL"

	DefaultHealthCheckTimeout = 30 * time.Second
	DefaultPassword           = "secret-password"
)

// NewClient returns a client for the server under test, skipping the test
// when no server is configured.
func NewClient(t *testing.T) *client.StaySpotClient {
	t.Helper()

	serverURL := os.Getenv(EnvServerURL)
	if serverURL == "" {
		t.Skipf("%s is not set, skipping integration test", EnvServerURL)
	}

	c := client.NewStaySpotClient(serverURL)
	require.NoError(t, c.HTTP().WaitForHealthy(DefaultHealthCheckTimeout))
	return c
}

// SignedInClient registers a fresh user and returns a client holding its
// session cookie together with the user id.
func SignedInClient(t *testing.T) (*client.StaySpotClient, string) {
	t.Helper()

	c := NewClient(t)
	suffix := uuid.NewString()[:8]
	resp, err := c.SignUp(map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     fmt.Sprintf("user-%s@example.com", suffix),
		"username":  "user-" + suffix,
		"password":  DefaultPassword,
	})
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode, resp.ToString())

	var body struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, resp.DecodeJSON(&body))
	require.NotEmpty(t, body.User.ID)
	return c, body.User.ID
}
