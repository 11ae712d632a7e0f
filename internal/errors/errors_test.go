package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errServiceMissing = Mark(New("service not found"), ErrNotFound)

func TestExitError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"plain", NewUserError(New("bad host"), ""), "bad host"},
		{"wrapped sentinel", NewConfigError(Wrap(ErrInvalidConfig, "reading config.yaml")), "reading config.yaml: invalid configuration"},
		{"no cause", NewExitError(nil, ExitSystem), "exit code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExitError_KeepsChain(t *testing.T) {
	err := NewUserError(Wrapf(errServiceMissing, "%q", "github"), "Run 'devdeck services list'")

	assert.ErrorIs(t, err, errServiceMissing)
	assert.ErrorIs(t, err, ErrNotFound, "marks survive wrapping")
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	var exitErr *ExitError
	require.ErrorAs(t, Wrap(err, "services show"), &exitErr)
	assert.Equal(t, "Run 'devdeck services list'", exitErr.Suggestion)
}

func TestConstructors(t *testing.T) {
	cause := New("boom")

	user := NewUserError(cause, "try again")
	assert.Equal(t, ExitUser, user.Code)
	assert.Equal(t, "try again", user.Suggestion)

	sys := NewSystemError(cause, "")
	assert.Equal(t, ExitSystem, sys.Code)
	assert.Empty(t, sys.Suggestion)

	cfg := NewConfigError(cause)
	assert.Equal(t, ExitUser, cfg.Code)
	assert.Contains(t, cfg.Suggestion, "devdeck config show")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("disk full"), ExitSystem},
		{"user error", NewUserError(ErrMissingName, ""), ExitUser},
		{"wrapped user error", Wrap(NewUserError(ErrNotFound, ""), "pages pick"), ExitUser},
		{"system error", NewSystemError(New("spawn failed"), ""), ExitSystem},
		{"explicit success", NewExitError(New("ignored"), ExitSuccess), ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := New("inner")
	assert.Equal(t, inner, Unwrap(NewUserError(inner, "")))
	assert.Nil(t, Unwrap(NewExitError(nil, ExitUser)))
}
