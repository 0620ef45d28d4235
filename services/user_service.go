package services

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

// SellerOnboarder é o recorte do gateway usado para vincular vendedores.
type SellerOnboarder interface {
	ConnectURL(userID string) string
	GetMerchantID(ctx context.Context, trackingID string) (string, error)
}

// UserService trata registro de contas, cores do usuário e o vínculo com a
// conta de recebimento PayPal.
type UserService struct {
	ledger    Ledger
	onboarder SellerOnboarder
	log       *logrus.Entry
}

// NewUserService cria o service de usuários.
func NewUserService(ledger Ledger, onboarder SellerOnboarder, log *logrus.Logger) *UserService {
	return &UserService{
		ledger:    ledger,
		onboarder: onboarder,
		log:       log.WithField("component", "users"),
	}
}

// validateRegistration aplica as mesmas regras do formulário de inscrição:
// username de 3 a 20 caracteres, email válido, senha de pelo menos 8.
func validateRegistration(username, email, password string) error {
	if len(username) < 3 || len(username) > 20 {
		return fmt.Errorf("%w: username deve ter entre 3 e 20 caracteres", shared.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email inválido", shared.ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: senha deve ter pelo menos 8 caracteres", shared.ErrValidation)
	}
	return nil
}

// Register cria a conta e concede uma cor aleatória do pool livre, de forma
// atômica: ou o usuário nasce com a sua cor, ou nada é criado.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, models.Color, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return models.User{}, models.Color{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.Color{}, fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}

	user, color, err := s.ledger.RegisterUserWithColor(ctx, username, email, string(hash))
	if err != nil {
		return models.User{}, models.Color{}, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"color":    color.HexCode,
	}).Info("Usuário registrado com cor inicial.")
	return user, color, nil
}

// Colors lista as cores do usuário autenticado, ordenadas por id.
func (s *UserService) Colors(ctx context.Context, userID string) ([]models.Color, error) {
	return s.ledger.GetColorsByOwner(ctx, userID)
}

// RenameColor altera o nome de exibição de uma cor do próprio usuário.
func (s *UserService) RenameColor(ctx context.Context, userID string, colorID int, name string) (models.Color, error) {
	if len(name) > 60 {
		return models.Color{}, fmt.Errorf("%w: nome da cor deve ter no máximo 60 caracteres", shared.ErrValidation)
	}
	return s.ledger.RenameColor(ctx, userID, colorID, name)
}

// ConnectURL gera o link de onboarding PayPal do usuário.
func (s *UserService) ConnectURL(userID string) string {
	return s.onboarder.ConnectURL(userID)
}

// PayPalStatus informa se o usuário já vinculou uma conta de recebimento.
func (s *UserService) PayPalStatus(ctx context.Context, userID string) (bool, error) {
	user, found, err := s.ledger.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, shared.ErrNotFound
	}
	return user.PayPalMerchantID != nil && *user.PayPalMerchantID != "", nil
}

// SyncMerchant consulta o PayPal pelo tracking id do usuário e grava o
// merchant id retornado. Chamado quando o onboarding retorna ao dashboard.
func (s *UserService) SyncMerchant(ctx context.Context, userID string) error {
	merchantID, err := s.onboarder.GetMerchantID(ctx, userID)
	if err != nil {
		return err
	}
	if merchantID == "" {
		return shared.ErrNotFound
	}
	return s.ledger.SetMerchantID(ctx, userID, merchantID)
}
