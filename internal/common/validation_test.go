package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateHandle(t *testing.T) {
	require.NoError(t, ValidateHandle("alice_01"))
	require.Error(t, ValidateHandle("ab"))
	require.Error(t, ValidateHandle(strings.Repeat("a", 51)))
	require.Error(t, ValidateHandle("bad handle"))
	require.Error(t, ValidateHandle("nope!"))
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("Password123"))
	require.Error(t, ValidatePassword("short"))
	require.Error(t, ValidatePassword(strings.Repeat("x", 101)))
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("alice@example.com"))
	require.NoError(t, ValidateEmail("")) // email is optional
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail("missing@tld"))
}
