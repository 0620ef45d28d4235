package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

// Código de erro do PostgreSQL para violação de constraint UNIQUE.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

// ---- Usuários ----

// GetUserByEmail busca um usuário pelo email.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (models.User, bool, error) {
	var user models.User
	err := d.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("falha ao buscar usuário por email: %w", err)
	}
	return user, true, nil
}

// GetUserByID busca um usuário pelo id.
func (d *DB) GetUserByID(ctx context.Context, id string) (models.User, bool, error) {
	var user models.User
	err := d.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return user, true, nil
}

// RegisterUserWithColor cria o usuário e lhe atribui uma cor livre sorteada,
// tudo na mesma transação: nunca fica usuário sem cor nem cor com dois donos.
func (d *DB) RegisterUserWithColor(ctx context.Context, username, email, passwordHash string) (models.User, models.Color, error) {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return models.User{}, models.Color{}, fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	var user models.User
	err = tx.GetContext(ctx, &user, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING *`,
		username, email, passwordHash)
	if isUniqueViolation(err) {
		return models.User{}, models.Color{}, shared.ErrDuplicateUser
	}
	if err != nil {
		return models.User{}, models.Color{}, fmt.Errorf("falha ao inserir usuário: %w", err)
	}

	// Sorteia uma cor sem dono. SKIP LOCKED evita que dois registros
	// simultâneos disputem a mesma linha.
	var color models.Color
	err = tx.GetContext(ctx, &color, `
		UPDATE colors SET owner_id = $1
		WHERE id = (
			SELECT id FROM colors
			WHERE owner_id IS NULL
			ORDER BY random()
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.Color{}, shared.ErrColorPoolExhausted
	}
	if err != nil {
		return models.User{}, models.Color{}, fmt.Errorf("falha ao atribuir cor inicial: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, models.Color{}, fmt.Errorf("falha ao confirmar registro: %w", err)
	}
	return user, color, nil
}

// SetMerchantID grava o vínculo do usuário com a conta de recebimento PayPal.
func (d *DB) SetMerchantID(ctx context.Context, userID, merchantID string) error {
	res, err := d.ExecContext(ctx,
		`UPDATE users SET paypal_merchant_id = $1 WHERE id = $2`, merchantID, userID)
	if err != nil {
		return fmt.Errorf("falha ao gravar merchant id: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ---- Cores ----

// GetColorsByOwner lista as cores de um usuário, ordenadas por id.
func (d *DB) GetColorsByOwner(ctx context.Context, ownerID string) ([]models.Color, error) {
	colors := []models.Color{}
	err := d.SelectContext(ctx, &colors, `
		SELECT * FROM colors
		WHERE owner_id = $1
		ORDER BY id ASC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar cores do usuário: %w", err)
	}
	return colors, nil
}

// RenameColor altera o nome de exibição de uma cor, somente pelo dono.
func (d *DB) RenameColor(ctx context.Context, ownerID string, colorID int, name string) (models.Color, error) {
	var color models.Color
	err := d.GetContext(ctx, &color, `
		UPDATE colors SET name = $1
		WHERE id = $2 AND owner_id = $3
		RETURNING *`,
		name, colorID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		// Distingue cor inexistente de cor de outro dono.
		var exists bool
		if err := d.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM colors WHERE id = $1)`, colorID); err != nil {
			return models.Color{}, fmt.Errorf("falha ao verificar cor: %w", err)
		}
		if !exists {
			return models.Color{}, shared.ErrNotFound
		}
		return models.Color{}, shared.ErrNotOwner
	}
	if err != nil {
		return models.Color{}, fmt.Errorf("falha ao renomear cor: %w", err)
	}
	return color, nil
}

// ---- Listagens ----

// GetListing busca uma listagem pelo id.
func (d *DB) GetListing(ctx context.Context, id string) (models.Listing, bool, error) {
	var listing models.Listing
	err := d.GetContext(ctx, &listing, `SELECT * FROM market_listings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, false, nil
	}
	if err != nil {
		return models.Listing{}, false, fmt.Errorf("falha ao buscar listagem: %w", err)
	}
	return listing, true, nil
}

// ActiveListings retorna as listagens ativas com a cor anunciada,
// da mais recente para a mais antiga.
func (d *DB) ActiveListings(ctx context.Context) ([]models.MarketplaceItem, error) {
	rows := []struct {
		ID             string          `db:"id"`
		Price          decimal.Decimal `db:"price"`
		HexCode        string          `db:"hex_code"`
		Name           string          `db:"name"`
		InfluenceScore int             `db:"influence_score"`
	}{}
	err := d.SelectContext(ctx, &rows, `
		SELECT l.id, l.price, c.hex_code, c.name, c.influence_score
		FROM market_listings l
		JOIN colors c ON c.id = l.color_id
		WHERE l.is_active
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar marketplace: %w", err)
	}

	items := make([]models.MarketplaceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, models.MarketplaceItem{
			ID:    r.ID,
			Price: r.Price,
			Color: models.MarketplaceColor{
				HexCode:        r.HexCode,
				Name:           r.Name,
				InfluenceScore: r.InfluenceScore,
			},
		})
	}
	return items, nil
}

// CreateListing insere a listagem validando, dentro da transação, que o
// vendedor é o dono atual e que não existe listagem ativa para a cor.
func (d *DB) CreateListing(ctx context.Context, sellerID string, colorID int, price decimal.Decimal) (models.Listing, error) {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return models.Listing{}, fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	var color models.Color
	err = tx.GetContext(ctx, &color,
		`SELECT * FROM colors WHERE id = $1 FOR UPDATE`, colorID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, shared.ErrNotFound
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("falha ao buscar cor: %w", err)
	}
	if color.OwnerID == nil || *color.OwnerID != sellerID {
		return models.Listing{}, shared.ErrNotOwner
	}

	var listing models.Listing
	err = tx.GetContext(ctx, &listing, `
		INSERT INTO market_listings (color_id, seller_id, price)
		VALUES ($1, $2, $3)
		RETURNING *`,
		colorID, sellerID, price)
	if isUniqueViolation(err) {
		// Índice único parcial: já existe listagem ativa para esta cor.
		return models.Listing{}, shared.ErrAlreadyListed
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("falha ao inserir listagem: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE colors SET is_for_sale = TRUE WHERE id = $1`, colorID); err != nil {
		return models.Listing{}, fmt.Errorf("falha ao marcar cor à venda: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Listing{}, fmt.Errorf("falha ao confirmar listagem: %w", err)
	}
	return listing, nil
}

// CancelListing encerra uma listagem ativa do próprio vendedor. O fechamento
// usa o mesmo UPDATE condicional da compra, então um cancelamento que corre
// contra uma compra perde de forma determinística.
func (d *DB) CancelListing(ctx context.Context, sellerID, listingID string) error {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	var listing models.Listing
	err = tx.GetContext(ctx, &listing,
		`SELECT * FROM market_listings WHERE id = $1`, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return shared.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("falha ao buscar listagem: %w", err)
	}
	if listing.SellerID != sellerID {
		return shared.ErrNotOwner
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE market_listings SET is_active = FALSE
		WHERE id = $1 AND is_active`,
		listingID)
	if err != nil {
		return fmt.Errorf("falha ao encerrar listagem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return shared.ErrAlreadyClosed
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE colors SET is_for_sale = FALSE WHERE id = $1`, listing.ColorID); err != nil {
		return fmt.Errorf("falha ao desmarcar cor à venda: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("falha ao confirmar cancelamento: %w", err)
	}
	return nil
}

// ---- Transferência ----

// ExecutePurchase executa a etapa atômica da compra: fecha a listagem com um
// UPDATE condicional (apenas um comprador concorrente observa sucesso), move a
// posse da cor e grava o registro imutável da transação. Qualquer falha
// desfaz tudo; o chamador decide a reconciliação do pagamento já capturado.
func (d *DB) ExecutePurchase(ctx context.Context, listingID, buyerID, paypalOrderID string) (models.Transaction, error) {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	// Compare-and-close: revalida is_active no momento do commit, não só no
	// início da operação.
	var closed struct {
		ColorID  int             `db:"color_id"`
		SellerID string          `db:"seller_id"`
		Price    decimal.Decimal `db:"price"`
	}
	err = tx.GetContext(ctx, &closed, `
		UPDATE market_listings SET is_active = FALSE
		WHERE id = $1 AND is_active
		RETURNING color_id, seller_id, price`,
		listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, shared.ErrListingAlreadySold
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("falha ao fechar listagem: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE colors SET owner_id = $1, is_for_sale = FALSE
		WHERE id = $2`,
		buyerID, closed.ColorID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("falha ao transferir posse da cor: %w", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return models.Transaction{}, fmt.Errorf("cor %d da listagem %s não encontrada", closed.ColorID, listingID)
	}

	var record models.Transaction
	err = tx.GetContext(ctx, &record, `
		INSERT INTO market_transactions (listing_id, buyer_id, seller_id, price, paypal_order_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`,
		listingID, buyerID, closed.SellerID, closed.Price, paypalOrderID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("falha ao gravar transação: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Transaction{}, fmt.Errorf("falha ao confirmar compra: %w", err)
	}
	return record, nil
}

// ---- Reconciliação ----

// EnqueueReconciliation registra um pagamento capturado sem efeito no ledger.
// Executa fora de qualquer transação: precisa sobreviver ao rollback da compra.
func (d *DB) EnqueueReconciliation(ctx context.Context, rec models.Reconciliation) error {
	_, err := d.ExecContext(ctx, `
		INSERT INTO payment_reconciliations (id, paypal_order_id, listing_id, buyer_id, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.PayPalOrderID, rec.ListingID, rec.BuyerID, rec.Amount, rec.Reason, rec.Status)
	if err != nil {
		return fmt.Errorf("falha ao registrar pendência de reconciliação: %w", err)
	}
	return nil
}

// PendingReconciliations retorna pendências ainda não tratadas.
func (d *DB) PendingReconciliations(ctx context.Context, limit int) ([]models.Reconciliation, error) {
	recs := []models.Reconciliation{}
	err := d.SelectContext(ctx, &recs, `
		SELECT * FROM payment_reconciliations
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2`,
		models.ReconciliationPending, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar pendências: %w", err)
	}
	return recs, nil
}

// UpdateReconciliationStatus avança o estado de uma pendência.
func (d *DB) UpdateReconciliationStatus(ctx context.Context, id, status string) error {
	res, err := d.ExecContext(ctx, `
		UPDATE payment_reconciliations
		SET status = $1, updated_at = now()
		WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar pendência: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return shared.ErrNotFound
	}
	return nil
}
