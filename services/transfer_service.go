package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

// Tolerância de arredondamento entre o preço da listagem e o valor capturado.
var captureTolerance = decimal.NewFromFloat(0.005)

// TransferService é o Transfer Engine: executa a compra de uma cor listada
// como um evento lógico único — captura de fundos e troca de posse, tudo ou
// nada, com no máximo um vencedor entre compradores concorrentes.
type TransferService struct {
	ledger  Ledger
	gateway PaymentGateway
	log     *logrus.Entry
}

// NewTransferService cria o engine com o ledger e o gateway injetados.
func NewTransferService(ledger Ledger, gateway PaymentGateway, log *logrus.Logger) *TransferService {
	return &TransferService{
		ledger:  ledger,
		gateway: gateway,
		log:     log.WithField("component", "transfer"),
	}
}

// Purchase compra a listagem em nome do comprador usando uma ordem PayPal já
// autorizada por ele. Ordem das etapas:
//
//  1. validações síncronas (listagem ativa, não é autocompra);
//  2. captura dos fundos no PayPal — antes de abrir a transação no ledger,
//     para não segurar lock de banco durante I/O de rede;
//  3. transação atômica no ledger com revalidação de is_active no commit.
//
// Falha de captura não toca o ledger. Falha após a captura (listagem vendida
// por outro comprador, divergência de valor, erro de commit) registra uma
// pendência de reconciliação: fundos capturados nunca são esquecidos.
func (s *TransferService) Purchase(ctx context.Context, listingID, buyerID, orderID string) (models.Transaction, error) {
	listing, found, err := s.ledger.GetListing(ctx, listingID)
	if err != nil {
		return models.Transaction{}, err
	}
	if !found || !listing.IsActive {
		return models.Transaction{}, shared.ErrListingUnavailable
	}
	if listing.SellerID == buyerID {
		return models.Transaction{}, shared.ErrSelfPurchase
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %v", shared.ErrPaymentNotCompleted, err)
	}
	if !capture.Completed() {
		return models.Transaction{}, fmt.Errorf("%w: status %q", shared.ErrPaymentNotCompleted, capture.Status)
	}

	// Daqui em diante há dinheiro capturado: qualquer falha exige
	// reconciliação, nunca retorno silencioso.
	if capture.Amount.Sub(listing.Price).Abs().GreaterThan(captureTolerance) {
		s.enqueueReconciliation(ctx, listing, buyerID, capture,
			fmt.Sprintf("valor capturado %s diverge do preço %s",
				capture.Amount.StringFixed(2), listing.Price.StringFixed(2)))
		return models.Transaction{}, fmt.Errorf("%w: valor capturado diverge do preço", shared.ErrPaymentNotCompleted)
	}

	record, err := s.ledger.ExecutePurchase(ctx, listingID, buyerID, orderID)
	if errors.Is(err, shared.ErrListingAlreadySold) {
		s.enqueueReconciliation(ctx, listing, buyerID, capture,
			"listagem vendida a outro comprador após captura")
		return models.Transaction{}, err
	}
	if err != nil {
		s.enqueueReconciliation(ctx, listing, buyerID, capture,
			"falha de armazenamento após captura")
		return models.Transaction{}, fmt.Errorf("%w: %v", shared.ErrOrderFailedAfterCapture, err)
	}

	s.log.WithFields(logrus.Fields{
		"listing_id": listingID,
		"buyer_id":   buyerID,
		"order_id":   orderID,
		"price":      record.Price.StringFixed(2),
	}).Info("Compra concluída.")
	return record, nil
}

// enqueueReconciliation registra a pendência; se até isso falhar, loga em
// nível de erro com todos os dados para tratamento manual.
func (s *TransferService) enqueueReconciliation(ctx context.Context, listing models.Listing, buyerID string, capture CaptureResult, reason string) {
	rec := models.Reconciliation{
		ID:            uuid.New().String(),
		PayPalOrderID: capture.OrderID,
		ListingID:     listing.ID,
		BuyerID:       buyerID,
		Amount:        capture.Amount,
		Reason:        reason,
		Status:        models.ReconciliationPending,
	}
	if err := s.ledger.EnqueueReconciliation(ctx, rec); err != nil {
		s.log.WithFields(logrus.Fields{
			"order_id":   capture.OrderID,
			"listing_id": listing.ID,
			"buyer_id":   buyerID,
			"amount":     capture.Amount.StringFixed(2),
			"reason":     reason,
		}).WithError(err).Error("Pagamento capturado sem efeito no ledger e sem pendência registrada; tratar manualmente.")
		return
	}
	s.log.WithFields(logrus.Fields{
		"order_id":   capture.OrderID,
		"listing_id": listing.ID,
		"reason":     reason,
	}).Warn("Pagamento capturado enviado para reconciliação.")
}
