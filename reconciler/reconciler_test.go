package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/colorverse/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) PendingReconciliations(ctx context.Context, limit int) ([]models.Reconciliation, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Reconciliation), args.Error(1)
}

func (m *MockStore) UpdateReconciliationStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func newTestReconciler(store Store) *Reconciler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(store, time.Second, log)
}

// TestProcessPending: cada pendência vai para refund_required.
func TestProcessPending(t *testing.T) {
	store := new(MockStore)
	pending := []models.Reconciliation{
		{ID: "rec-1", PayPalOrderID: "order-1", ListingID: "listing-1", Amount: decimal.RequireFromString("10.00"), Status: models.ReconciliationPending},
		{ID: "rec-2", PayPalOrderID: "order-2", ListingID: "listing-2", Amount: decimal.RequireFromString("5.00"), Status: models.ReconciliationPending},
	}
	store.On("PendingReconciliations", mock.Anything, 50).Return(pending, nil)
	store.On("UpdateReconciliationStatus", mock.Anything, "rec-1", models.ReconciliationRefundRequired).Return(nil)
	store.On("UpdateReconciliationStatus", mock.Anything, "rec-2", models.ReconciliationRefundRequired).Return(nil)

	newTestReconciler(store).ProcessPending(context.Background())

	store.AssertExpectations(t)
}

// TestProcessPendingUpdateFailure: falha em uma pendência não bloqueia as demais.
func TestProcessPendingUpdateFailure(t *testing.T) {
	store := new(MockStore)
	pending := []models.Reconciliation{
		{ID: "rec-1", Status: models.ReconciliationPending},
		{ID: "rec-2", Status: models.ReconciliationPending},
	}
	store.On("PendingReconciliations", mock.Anything, 50).Return(pending, nil)
	store.On("UpdateReconciliationStatus", mock.Anything, "rec-1", models.ReconciliationRefundRequired).
		Return(errors.New("banco indisponível"))
	store.On("UpdateReconciliationStatus", mock.Anything, "rec-2", models.ReconciliationRefundRequired).Return(nil)

	newTestReconciler(store).ProcessPending(context.Background())

	store.AssertExpectations(t)
}

// TestProcessPendingFetchFailure: erro na busca encerra a rodada sem pânico.
func TestProcessPendingFetchFailure(t *testing.T) {
	store := new(MockStore)
	store.On("PendingReconciliations", mock.Anything, 50).
		Return([]models.Reconciliation{}, errors.New("banco indisponível"))

	newTestReconciler(store).ProcessPending(context.Background())

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "UpdateReconciliationStatus", mock.Anything, mock.Anything, mock.Anything)
}

// TestStartStopsOnContextCancel garante que o laço respeita o cancelamento.
func TestStartStopsOnContextCancel(t *testing.T) {
	store := new(MockStore)
	r := New(store, time.Hour, func() *logrus.Logger {
		log := logrus.New()
		log.SetLevel(logrus.PanicLevel)
		return log
	}())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start não retornou após o cancelamento do contexto")
	}
}
