package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, sku, name, quantity, cost_per_unit, supplier, status, reorder_point, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU duplicado para el mismo usuario → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.SKU, p.Name, p.Quantity, p.CostPerUnit, p.Supplier,
		p.Status, p.ReorderPoint, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del usuario por ID.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2`
	return r.getOne(ctx, "get product", query, userID, id)
}

// GetBySKU obtiene un producto del usuario por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, userID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND sku = $2`
	return r.getOne(ctx, "get product by sku", query, userID, sku)
}

// LockBySKU bloquea la fila hasta el fin de la transacción (ventas concurrentes del mismo SKU).
func (r *ProductRepo) LockBySKU(ctx context.Context, userID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND sku = $2 FOR UPDATE`
	return r.getOne(ctx, "lock product", query, userID, sku)
}

// List lista productos con filtro de estado, búsqueda por SKU/nombre y paginación.
func (r *ProductRepo) List(ctx context.Context, userID string, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR sku ILIKE $4 OR name ILIKE $4)
		ORDER BY sku
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, userID, f.Status, f.Search, likePattern(f.Search), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

// ListAll todos los productos del usuario, incluidos los descontinuados.
func (r *ProductRepo) ListAll(ctx context.Context, userID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY sku`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return scanProducts(rows)
}

// Update persiste los campos mutables. Sin filas afectadas → domain.ErrNotFound.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $3, quantity = $4, cost_per_unit = $5, supplier = $6, status = $7,
		    reorder_point = $8, updated_at = $9
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.UserID, p.ID, p.Name, p.Quantity, p.CostPerUnit, p.Supplier, p.Status, p.ReorderPoint, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.UserID, &p.SKU, &p.Name, &p.Quantity, &p.CostPerUnit, &p.Supplier,
		&p.Status, &p.ReorderPoint, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.SKU, &p.Name, &p.Quantity, &p.CostPerUnit, &p.Supplier,
			&p.Status, &p.ReorderPoint, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
