package farmacia_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	farmacia "github.com/goliatone/go-farmacia"
)

func TestIsTokenExpiredError(t *testing.T) {
	assert.True(t, farmacia.IsTokenExpiredError(farmacia.ErrTokenExpired))
	assert.True(t, farmacia.IsTokenExpiredError(
		goerrors.Wrap(farmacia.ErrTokenExpired, goerrors.CategoryAuth, "restore failed"),
	))
	assert.True(t, farmacia.IsTokenExpiredError(errors.New("token is expired")))

	assert.False(t, farmacia.IsTokenExpiredError(nil))
	assert.False(t, farmacia.IsTokenExpiredError(farmacia.ErrTokenMalformed))
}

func TestIsMalformedError(t *testing.T) {
	assert.True(t, farmacia.IsMalformedError(farmacia.ErrTokenMalformed))
	assert.True(t, farmacia.IsMalformedError(errors.New("token is malformed")))
	assert.True(t, farmacia.IsMalformedError(errors.New("missing or malformed JWT")))

	assert.False(t, farmacia.IsMalformedError(nil))
	assert.False(t, farmacia.IsMalformedError(farmacia.ErrTokenExpired))
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, farmacia.UserMessage(nil))

	rich := goerrors.New("credenciales incorrectas", goerrors.CategoryAuth)
	assert.Equal(t, "credenciales incorrectas", farmacia.UserMessage(rich))

	wrapped := goerrors.Wrap(errors.New("dial tcp: refused"), goerrors.CategoryOperation, "the service is unreachable")
	assert.Equal(t, "the service is unreachable", farmacia.UserMessage(wrapped))

	plain := errors.New("something odd")
	assert.Equal(t, "something odd", farmacia.UserMessage(plain))
}
