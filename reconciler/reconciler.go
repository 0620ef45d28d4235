package reconciler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ferreirogomes/colorverse/models"
)

// Store é o recorte do Ledger Store usado pelo reconciliador.
type Store interface {
	PendingReconciliations(ctx context.Context, limit int) ([]models.Reconciliation, error)
	UpdateReconciliationStatus(ctx context.Context, id, status string) error
}

// Reconciler varre periodicamente os pagamentos capturados que ficaram sem
// efeito no ledger e os encaminha para estorno. Roda em goroutine própria,
// iniciada em main.
type Reconciler struct {
	store     Store
	interval  time.Duration
	batchSize int
	log       *logrus.Entry
}

// New cria o reconciliador.
func New(store Store, interval time.Duration, log *logrus.Logger) *Reconciler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Reconciler{
		store:     store,
		interval:  interval,
		batchSize: 50,
		log:       log.WithField("component", "reconciler"),
	}
}

// Start inicia o laço de varredura; retorna quando o contexto é cancelado.
func (r *Reconciler) Start(ctx context.Context) {
	r.log.Info("Iniciando reconciliador de pagamentos...")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Reconciliador encerrado.")
			return
		case <-ticker.C:
			r.ProcessPending(ctx)
		}
	}
}

// ProcessPending trata um lote de pendências: marca cada uma como
// refund_required para a fila de estorno.
func (r *Reconciler) ProcessPending(ctx context.Context) {
	pending, err := r.store.PendingReconciliations(ctx, r.batchSize)
	if err != nil {
		r.log.WithError(err).Error("Falha ao buscar pendências de reconciliação.")
		return
	}

	for _, rec := range pending {
		entry := r.log.WithFields(logrus.Fields{
			"reconciliation_id": rec.ID,
			"order_id":          rec.PayPalOrderID,
			"listing_id":        rec.ListingID,
			"amount":            rec.Amount.StringFixed(2),
			"reason":            rec.Reason,
		})

		if err := r.store.UpdateReconciliationStatus(ctx, rec.ID, models.ReconciliationRefundRequired); err != nil {
			entry.WithError(err).Error("Falha ao marcar pendência para estorno.")
			continue
		}
		entry.Warn("Pagamento capturado marcado para estorno.")
	}
}
