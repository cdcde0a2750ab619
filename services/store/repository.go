package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepository define a interface para operações de banco de dados de clientes
type CustomerRepository interface {
	// FindByID busca um cliente pelo ID (nil quando não existe)
	FindByID(ctx context.Context, customerID string) (*Customer, error)

	// FindByEmail busca um cliente pelo e-mail (nil quando não existe)
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// CreateCustomer cria um novo cliente no banco de dados
	CreateCustomer(ctx context.Context, name, email string) (*Customer, error)
}

// ProductRepository define a interface para operações de banco de dados de produtos
type ProductRepository interface {
	// FindByName busca um produto pelo nome exato (nil quando não existe)
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAllByID busca em uma única consulta os produtos dos IDs informados,
	// retornando apenas o subconjunto que existe
	FindAllByID(ctx context.Context, productIDs []string) ([]Product, error)

	// ListProducts retorna o catálogo completo
	ListProducts(ctx context.Context) ([]Product, error)

	// CreateProduct cria um novo produto no banco de dados
	CreateProduct(ctx context.Context, name string, price float64, quantity int) (*Product, error)

	// UpdateQuantity aplica todas as atualizações de estoque em uma única
	// chamada em lote, gravando as quantidades absolutas informadas
	UpdateQuantity(ctx context.Context, updates []ProductStockUpdate) ([]Product, error)
}

// OrderRepository define a interface para operações de banco de dados de pedidos
type OrderRepository interface {
	// CreateOrder cria o pedido e seus itens como uma unidade
	CreateOrder(ctx context.Context, customer *Customer, products []OrderProduct) (*Order, error)

	// FindByID busca um pedido com cliente e itens (nil quando não existe)
	FindByID(ctx context.Context, orderID string) (*Order, error)
}

// PostgresCustomerRepository implementa CustomerRepository usando PostgreSQL
type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de PostgresCustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PostgresCustomerRepository{
		db: db,
	}
}

// FindByID busca um cliente pelo ID
func (r *PostgresCustomerRepository) FindByID(ctx context.Context, customerID string) (*Customer, error) {
	var customer Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers WHERE id = $1
	`, customerID).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

// FindByEmail busca um cliente pelo e-mail
func (r *PostgresCustomerRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers WHERE email = $1
	`, email).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}
	return &customer, nil
}

// CreateCustomer cria um novo cliente no banco de dados
func (r *PostgresCustomerRepository) CreateCustomer(ctx context.Context, name, email string) (*Customer, error) {
	customer := NewCustomer(uuid.New().String(), name, email)

	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, customer.ID, customer.Name, customer.Email, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// PostgresProductRepository implementa ProductRepository usando PostgreSQL
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de PostgresProductRepository
func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &PostgresProductRepository{
		db: db,
	}
}

// FindByName busca um produto pelo nome exato
func (r *PostgresProductRepository) FindByName(ctx context.Context, name string) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE name = $1
	`, name).Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return &product, nil
}

// FindAllByID busca todos os produtos dos IDs informados em uma única consulta
func (r *PostgresProductRepository) FindAllByID(ctx context.Context, productIDs []string) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE id = ANY($1)
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// ListProducts retorna o catálogo completo ordenado por nome
func (r *PostgresProductRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// CreateProduct cria um novo produto no banco de dados
func (r *PostgresProductRepository) CreateProduct(ctx context.Context, name string, price float64, quantity int) (*Product, error) {
	product := NewProduct(uuid.New().String(), name, price, quantity)

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, product.ID, product.Name, product.Price, product.Quantity, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateQuantity aplica todas as atualizações de estoque em um único batch.
// As quantidades são absolutas: o caso de uso já calculou o estoque final.
func (r *PostgresProductRepository) UpdateQuantity(ctx context.Context, updates []ProductStockUpdate) ([]Product, error) {
	batch := &pgx.Batch{}
	for _, update := range updates {
		batch.Queue(`
			UPDATE products
			SET quantity = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING id, name, price, quantity, created_at, updated_at
		`, update.Quantity, update.ID)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	products := make([]Product, 0, len(updates))
	for range updates {
		var product Product
		err := results.QueryRow().Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to update product quantity: %w", err)
		}
		products = append(products, product)
	}
	return products, nil
}

// PostgresOrderRepository implementa OrderRepository usando PostgreSQL
type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de PostgresOrderRepository
func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// CreateOrder cria o pedido e seus itens dentro de uma única transação
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, customer *Customer, products []OrderProduct) (*Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := NewOrder(uuid.New().String(), customer, nil)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, order.ID, customer.ID, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.OrderProducts = make([]OrderProduct, 0, len(products))
	for _, item := range products {
		item.ID = uuid.New().String()
		item.OrderID = order.ID
		item.CreatedAt = order.CreatedAt
		item.UpdatedAt = order.UpdatedAt

		_, err = tx.Exec(ctx, `
			INSERT INTO order_products (id, order_id, product_id, price, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, item.OrderID, item.ProductID, item.Price, item.Quantity, item.CreatedAt, item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create order product: %w", err)
		}
		order.OrderProducts = append(order.OrderProducts, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

// FindByID busca um pedido com o cliente e os itens
func (r *PostgresOrderRepository) FindByID(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	var customer Customer
	err := r.db.QueryRow(ctx, `
		SELECT o.id, o.created_at, o.updated_at,
			c.id, c.name, c.email, c.created_at, c.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`, orderID).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt,
		&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	order.Customer = &customer

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, price, quantity, created_at, updated_at
		FROM order_products
		WHERE order_id = $1
		ORDER BY created_at, id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderProduct
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order product: %w", err)
		}
		order.OrderProducts = append(order.OrderProducts, item)
	}
	return &order, rows.Err()
}
