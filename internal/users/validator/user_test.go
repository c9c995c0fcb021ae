package validator

import (
	"stayspot/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() *model.SignupRequest {
	return &model.SignupRequest{
		FirstName: "Demo",
		LastName:  "User",
		Email:     "demo@user.io",
		Username:  "demo-user",
		Password:  "password",
	}
}

func TestValidateSignup(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name   string
		modify func(r *model.SignupRequest)
		want   map[string]string
	}{
		{
			name:   "valid",
			modify: func(r *model.SignupRequest) {},
		},
		{
			name:   "username is an email",
			modify: func(r *model.SignupRequest) { r.Username = "demo@user.io" },
			want:   map[string]string{"username": "Username cannot be an email"},
		},
		{
			name:   "username too short",
			modify: func(r *model.SignupRequest) { r.Username = "abc" },
			want:   map[string]string{"username": "Username must be between 4 and 30 characters"},
		},
		{
			name: "every missing field reported",
			modify: func(r *model.SignupRequest) {
				*r = model.SignupRequest{}
			},
			want: map[string]string{
				"firstName": "First Name is required",
				"lastName":  "Last Name is required",
				"email":     "Invalid email",
				"username":  "Username is required",
				"password":  "Password must be 6 characters or more",
			},
		},
		{
			name:   "invalid email",
			modify: func(r *model.SignupRequest) { r.Email = "not-an-email" },
			want:   map[string]string{"email": "Invalid email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.modify(req)

			got, err := v.ValidateSignup(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewUserValidator()

	got, err := v.ValidateLogin(&model.LoginRequest{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"credential": "Email or username is required",
		"password":   "Password is required",
	}, got)

	got, err = v.ValidateLogin(&model.LoginRequest{Credential: "demo", Password: "x"})
	require.NoError(t, err)
	assert.Nil(t, got)
}
