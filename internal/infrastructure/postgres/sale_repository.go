package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.CanceledOrderRepository = (*CanceledOrderRepo)(nil)
)

const saleColumns = `id, user_id, order_number, sku, product_name, quantity, unit_price, shipping_fee,
	unit_cost, additional_cost, sale_date, status, created_at`

// SaleRepo líneas de venta sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateBatch inserta todas las líneas de un pedido en un solo round-trip.
func (r *SaleRepo) CreateBatch(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	batch := &pgx.Batch{}
	for _, s := range sales {
		batch.Queue(query,
			s.ID, s.UserID, s.OrderNumber, s.SKU, s.ProductName, s.Quantity, s.UnitPrice, s.ShippingFee,
			s.UnitCost, s.AdditionalCost, s.SaleDate, s.Status, s.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range sales {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert sale: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert sales batch: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de venta del usuario.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 AND id = $2`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, userID, id).Scan(saleDest(&s)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List ventas del usuario en [From, To] ordenadas por fecha. Limit 0 = sin límite.
func (r *SaleRepo) List(ctx context.Context, userID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR sale_date >= $2)
		  AND ($3::timestamptz IS NULL OR sale_date <= $3)
		  AND ($4 = '' OR status = $4)
		  AND ($5 = '' OR sku = $5)
		ORDER BY sale_date, id
		LIMIT NULLIF($6::int, 0) OFFSET $7`
	rows, err := r.q.Query(ctx, query,
		userID, nullableTime(f.From), nullableTime(f.To), f.Status, f.SKU, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(saleDest(&s)...); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una línea. Sin filas afectadas → domain.ErrNotFound.
func (r *SaleRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET status = $3 WHERE user_id = $1 AND id = $2`, userID, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func saleDest(s *entity.Sale) []any {
	return []any{
		&s.ID, &s.UserID, &s.OrderNumber, &s.SKU, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.ShippingFee,
		&s.UnitCost, &s.AdditionalCost, &s.SaleDate, &s.Status, &s.CreatedAt,
	}
}

// CanceledOrderRepo cancelaciones sobre PostgreSQL.
type CanceledOrderRepo struct {
	q Querier
}

// NewCanceledOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCanceledOrderRepository(q Querier) *CanceledOrderRepo {
	return &CanceledOrderRepo{q: q}
}

// Create registra la cancelación. Una venta solo se cancela una vez (UNIQUE sale_id).
func (r *CanceledOrderRepo) Create(ctx context.Context, c *entity.CanceledOrder) error {
	query := `
		INSERT INTO canceled_orders (id, user_id, sale_id, refund_amount, shipping_status, loss, reason, canceled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.SaleID, c.RefundAmount, c.ShippingStatus, c.Loss, c.Reason, c.CanceledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert canceled order: %w", err)
	}
	return nil
}

// ListBySaleDate cancelaciones cuya venta original cae en [from, to].
func (r *CanceledOrderRepo) ListBySaleDate(ctx context.Context, userID string, from, to time.Time) ([]*entity.CanceledOrder, error) {
	query := `
		SELECT c.id, c.user_id, c.sale_id, c.refund_amount, c.shipping_status, c.loss, c.reason, c.canceled_at
		FROM canceled_orders c
		JOIN sales s ON s.id = c.sale_id
		WHERE c.user_id = $1 AND s.sale_date BETWEEN $2 AND $3
		ORDER BY s.sale_date, c.id`
	rows, err := r.q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list canceled orders: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.CanceledOrder, 0)
	for rows.Next() {
		var c entity.CanceledOrder
		if err := rows.Scan(&c.ID, &c.UserID, &c.SaleID, &c.RefundAmount, &c.ShippingStatus, &c.Loss, &c.Reason, &c.CanceledAt); err != nil {
			return nil, fmt.Errorf("scan canceled order: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
