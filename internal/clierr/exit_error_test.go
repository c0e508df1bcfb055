package clierr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCodeOf(nil))
	assert.Equal(t, ExitRuntime, ExitCodeOf(errors.New("plain")))
	assert.Equal(t, ExitUsage, ExitCodeOf(Usage("bad flag %s", "--x")))
	assert.Equal(t, ExitUsage, ExitCodeOf(fmt.Errorf("outer: %w", Usage("inner"))))
	assert.Equal(t, ExitRuntime, ExitCodeOf(Wrap(0, errors.New("cause"), "failed")))
}

func TestExitErrorMessageAndUnwrap(t *testing.T) {
	err := WrapUsage(os.ErrNotExist, "loading %s", "config.toml")

	assert.Equal(t, "loading config.toml: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "just a message", Usage("just a message").Error())
}
