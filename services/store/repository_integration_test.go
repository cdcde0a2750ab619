package main

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// setupPostgres sobe um PostgreSQL descartável e devolve um pool já com o
// schema criado. Os testes são pulados com -short (exigem Docker).
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("store_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgC.Terminate(ctx)
	})

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.New(ctx, pgURL)
		if err == nil && pool.Ping(ctx) == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, ensureSchema(ctx, pool))
	return pool
}

func TestPostgresCustomerRepository_RoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewCustomerRepository(pool)

	// Cliente ausente retorna nil sem erro
	missing, err := repo.FindByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.CreateCustomer(ctx, "John Doe", "john@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", found.Name)
	assert.Equal(t, "john@example.com", found.Email)

	byEmail, err := repo.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestPostgresProductRepository_RoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewProductRepository(pool)

	widget, err := repo.CreateProduct(ctx, "Widget", 4.5, 10)
	require.NoError(t, err)
	gadget, err := repo.CreateProduct(ctx, "Gadget", 9.9, 3)
	require.NoError(t, err)

	byName, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, widget.ID, byName.ID)
	assert.Equal(t, 4.5, byName.Price)

	missing, err := repo.FindByName(ctx, "Gizmo")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	// FindAllByID retorna apenas o subconjunto que existe
	found, err := repo.FindAllByID(ctx, []string{widget.ID, gadget.ID, "11111111-1111-1111-1111-111111111111"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// UpdateQuantity grava as quantidades absolutas em lote
	updated, err := repo.UpdateQuantity(ctx, []ProductStockUpdate{
		{ID: widget.ID, Quantity: 8},
		{ID: gadget.ID, Quantity: 0},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	after, err := repo.FindAllByID(ctx, []string{widget.ID, gadget.ID})
	require.NoError(t, err)
	quantities := map[string]int{}
	for _, p := range after {
		quantities[p.ID] = p.Quantity
	}
	assert.Equal(t, 8, quantities[widget.ID])
	assert.Equal(t, 0, quantities[gadget.ID])

	catalog, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
}

func TestPostgresOrderRepository_RoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()

	customers := NewCustomerRepository(pool)
	products := NewProductRepository(pool)
	orders := NewOrderRepository(pool)

	customer, err := customers.CreateCustomer(ctx, "John Doe", "john@example.com")
	require.NoError(t, err)
	widget, err := products.CreateProduct(ctx, "Widget", 4.5, 10)
	require.NoError(t, err)

	created, err := orders.CreateOrder(ctx, customer, []OrderProduct{
		{ProductID: widget.ID, Price: 4.5, Quantity: 2},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.OrderProducts, 1)

	found, err := orders.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.Customer.ID)
	require.Len(t, found.OrderProducts, 1)
	assert.Equal(t, widget.ID, found.OrderProducts[0].ProductID)
	assert.Equal(t, 4.5, found.OrderProducts[0].Price)
	assert.Equal(t, 2, found.OrderProducts[0].Quantity)

	missing, err := orders.FindByID(ctx, "22222222-2222-2222-2222-222222222222")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateOrderUseCase_EndToEnd(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()

	customers := NewCustomerRepository(pool)
	products := NewProductRepository(pool)
	orders := NewOrderRepository(pool)

	customer, err := customers.CreateCustomer(ctx, "John Doe", "john@example.com")
	require.NoError(t, err)
	widget, err := products.CreateProduct(ctx, "Widget", 4.5, 10)
	require.NoError(t, err)

	useCase := NewCreateOrderUseCase(orders, products, customers)

	order, err := useCase.Execute(ctx, customer.ID, []OrderProductRequest{
		{ID: widget.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, order.OrderProducts, 1)
	assert.Equal(t, 4.5, order.OrderProducts[0].Price)

	// O estoque foi baixado para 8
	after, err := products.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 8, after.Quantity)

	// Estoque insuficiente aborta sem alterar nada
	_, err = useCase.Execute(ctx, customer.ID, []OrderProductRequest{
		{ID: widget.ID, Quantity: 50},
	})
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	after, err = products.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 8, after.Quantity)
}
