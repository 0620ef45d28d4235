package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

// UserFinder é o recorte do Ledger Store necessário para autenticar.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, bool, error)
}

// Service autentica credenciais e emite tokens de sessão.
type Service struct {
	users         UserFinder
	secretKey     []byte
	tokenValidity time.Duration
}

// NewService cria o provedor de identidade.
func NewService(users UserFinder, secretKey []byte, tokenValidity time.Duration) *Service {
	return &Service{users: users, secretKey: secretKey, tokenValidity: tokenValidity}
}

// Login verifica email e senha e devolve um token de sessão. Credenciais
// erradas e usuário inexistente produzem o mesmo erro.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, found, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !found {
		return "", shared.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}

	return GenerateToken(user.ID, s.secretKey, s.tokenValidity)
}

// SecretKey expõe a chave para o middleware montado em main.
func (s *Service) SecretKey() []byte {
	return s.secretKey
}
