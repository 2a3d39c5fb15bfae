package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup(t *testing.T) {
	v := NewSignupValidator()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  bool
	}{
		{
			name:     "valid",
			username: "alice_99",
			email:    "alice@example.com",
			password: "hunter22",
		},
		{
			name:     "username too short",
			username: "al",
			email:    "alice@example.com",
			password: "hunter22",
			wantErr:  true,
		},
		{
			name:     "username with spaces",
			username: "alice smith",
			email:    "alice@example.com",
			password: "hunter22",
			wantErr:  true,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 31),
			email:    "alice@example.com",
			password: "hunter22",
			wantErr:  true,
		},
		{
			name:     "bad email",
			username: "alice",
			email:    "not-an-email",
			password: "hunter22",
			wantErr:  true,
		},
		{
			name:     "email missing domain dot",
			username: "alice",
			email:    "alice@localhost",
			password: "hunter22",
			wantErr:  true,
		},
		{
			name:     "password too short",
			username: "alice",
			email:    "alice@example.com",
			password: "abc",
			wantErr:  true,
		},
		{
			name:     "password too long",
			username: "alice",
			email:    "alice@example.com",
			password: strings.Repeat("x", 129),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSignup(tt.username, tt.email, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSignupCollectsAllFailures(t *testing.T) {
	v := NewSignupValidator()

	err := v.ValidateSignup("x", "nope", "ab")
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 3)
}
