package auth

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(repository.New(logger), &sync.RWMutex{}, logger)
}

func TestAddUserHashesPassword(t *testing.T) {
	svc := newTestService()

	user, err := svc.AddUser(Credentials{Username: "yeezy", Password: "Abcd1234"})
	require.NoError(t, err)

	got, err := svc.GetUser("yeezy")
	require.NoError(t, err)
	assert.Same(t, user, got)
	assert.NotEqual(t, "Abcd1234", got.PasswordHash)
	assert.True(t, strings.HasPrefix(got.PasswordHash, "$2"))
}

func TestAddUserRejectsExistingName(t *testing.T) {
	svc := newTestService()

	_, err := svc.AddUser(Credentials{Username: "nton939", Password: "Abcd1234"})
	require.NoError(t, err)

	_, err = svc.AddUser(Credentials{Username: "nton939", Password: "Other1234"})
	assert.ErrorIs(t, err, ErrNameNotUnique)
}

func TestAddUserValidatesInput(t *testing.T) {
	svc := newTestService()

	_, err := svc.AddUser(Credentials{Username: "ab", Password: "Abcd1234"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.AddUser(Credentials{Username: "validname", Password: "short"})
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.GetUser("ab")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	_, err := svc.AddUser(Credentials{Username: "newuser", Password: "Abcd1234"})
	require.NoError(t, err)

	user, err := svc.Authenticate("newuser", "Abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "newuser", user.Username)

	_, err = svc.Authenticate("newuser", "123456789")
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = svc.Authenticate("ghost", "Abcd1234")
	assert.ErrorIs(t, err, ErrAuthentication)
}
