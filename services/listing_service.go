package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

// DefaultMinListingPrice é o preço mínimo de venda (0,50 na moeda corrente).
var DefaultMinListingPrice = decimal.NewFromFloat(0.50)

// ListingService é o Listing Manager: cria e cancela ofertas de venda.
// As verificações de posse e de listagem duplicada acontecem dentro da
// transação do Ledger Store; aqui fica apenas a validação de entrada.
type ListingService struct {
	ledger   Ledger
	minPrice decimal.Decimal
	log      *logrus.Entry
}

// NewListingService cria o service com o preço mínimo configurado.
func NewListingService(ledger Ledger, minPrice decimal.Decimal, log *logrus.Logger) *ListingService {
	if minPrice.IsZero() {
		minPrice = DefaultMinListingPrice
	}
	return &ListingService{
		ledger:   ledger,
		minPrice: minPrice,
		log:      log.WithField("component", "listings"),
	}
}

// Create publica uma cor à venda pelo preço pedido.
func (s *ListingService) Create(ctx context.Context, sellerID string, colorID int, price decimal.Decimal) (models.Listing, error) {
	if colorID < 0 || colorID > models.MaxColorID {
		return models.Listing{}, fmt.Errorf("%w: cor %d fora do intervalo", shared.ErrNotFound, colorID)
	}
	if price.LessThan(s.minPrice) {
		return models.Listing{}, fmt.Errorf("%w: mínimo %s", shared.ErrInvalidPrice, s.minPrice.StringFixed(2))
	}

	listing, err := s.ledger.CreateListing(ctx, sellerID, colorID, price)
	if err != nil {
		return models.Listing{}, err
	}

	s.log.WithFields(logrus.Fields{
		"listing_id": listing.ID,
		"color_id":   colorID,
		"seller_id":  sellerID,
		"price":      price.StringFixed(2),
	}).Info("Listagem criada.")
	return listing, nil
}

// Cancel encerra uma listagem ativa do próprio vendedor. Cancelamento não
// gera registro de transação.
func (s *ListingService) Cancel(ctx context.Context, sellerID, listingID string) error {
	if err := s.ledger.CancelListing(ctx, sellerID, listingID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"listing_id": listingID,
		"seller_id":  sellerID,
	}).Info("Listagem cancelada.")
	return nil
}

// Marketplace devolve as listagens ativas para a vitrine pública.
func (s *ListingService) Marketplace(ctx context.Context) ([]models.MarketplaceItem, error) {
	return s.ledger.ActiveListings(ctx)
}
