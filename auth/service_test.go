package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

type fakeUserFinder struct {
	users map[string]models.User
}

func (f *fakeUserFinder) GetUserByEmail(_ context.Context, email string) (models.User, bool, error) {
	user, ok := f.users[email]
	return user, ok, nil
}

func newFinderWith(email, password string) *fakeUserFinder {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &fakeUserFinder{users: map[string]models.User{
		email: {ID: "user-1", Email: email, PasswordHash: string(hash)},
	}}
}

// TestLoginSuccess: credenciais corretas devolvem um token válido.
func TestLoginSuccess(t *testing.T) {
	secret := []byte("segredo-de-teste")
	service := NewService(newFinderWith("alice@x.com", "super-secreta"), secret, time.Hour)

	token, err := service.Login(context.Background(), "alice@x.com", "super-secreta")
	require.NoError(t, err)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

// TestLoginWrongPassword e usuário desconhecido produzem o mesmo erro.
func TestLoginWrongPassword(t *testing.T) {
	service := NewService(newFinderWith("alice@x.com", "super-secreta"), []byte("s"), time.Hour)

	_, err := service.Login(context.Background(), "alice@x.com", "errada")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), "ninguem@x.com", "qualquer")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
