package main

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CreateCustomerUseCase contém a lógica de negócio de criação de clientes
type CreateCustomerUseCase struct {
	customers CustomerRepository
}

// NewCreateCustomerUseCase cria uma nova instância de CreateCustomerUseCase
func NewCreateCustomerUseCase(customers CustomerRepository) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{
		customers: customers,
	}
}

// Execute cria um cliente garantindo a unicidade do e-mail
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, name, email string) (*Customer, error) {
	tracer := otel.Tracer("store-service")
	ctx, span := tracer.Start(ctx, "create_customer")
	defer span.End()

	existing, err := uc.customers.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to check customer email: %w", err)
	}
	if existing != nil {
		span.RecordError(ErrCustomerAlreadyExists)
		return nil, ErrCustomerAlreadyExists
	}

	customer, err := uc.customers.CreateCustomer(ctx, name, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("customer.id", customer.ID))
	log.Printf("✅ Customer created: %s", customer.ID)
	return customer, nil
}

// CreateProductUseCase contém a lógica de negócio de criação de produtos
type CreateProductUseCase struct {
	products ProductRepository
}

// NewCreateProductUseCase cria uma nova instância de CreateProductUseCase
func NewCreateProductUseCase(products ProductRepository) *CreateProductUseCase {
	return &CreateProductUseCase{
		products: products,
	}
}

// Execute cria um produto garantindo a unicidade do nome
func (uc *CreateProductUseCase) Execute(ctx context.Context, name string, price float64, quantity int) (*Product, error) {
	tracer := otel.Tracer("store-service")
	ctx, span := tracer.Start(ctx, "create_product")
	defer span.End()

	// 1. Verifica se já existe produto com o mesmo nome
	existing, err := uc.products.FindByName(ctx, name)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if existing != nil {
		log.Printf("❌ CREATE PRODUCT FAILED: duplicate name %q", name)
		span.RecordError(ErrProductAlreadyExists)
		return nil, ErrProductAlreadyExists
	}

	// 2. Cria o produto
	product, err := uc.products.CreateProduct(ctx, name, price, quantity)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)
	log.Printf("✅ Product created: %s (%s)", product.Name, product.ID)
	return product, nil
}

// CreateOrderUseCase contém a lógica de negócio de criação de pedidos
type CreateOrderUseCase struct {
	orders        OrderRepository
	products      ProductRepository
	customers     CustomerRepository
	ordersCreated metric.Int64Counter
}

// NewCreateOrderUseCase cria uma nova instância de CreateOrderUseCase
func NewCreateOrderUseCase(
	orders OrderRepository,
	products ProductRepository,
	customers CustomerRepository,
) *CreateOrderUseCase {
	meter := otel.Meter("store-service")
	ordersCreated, _ := meter.Int64Counter("orders_created_total",
		metric.WithDescription("Total de pedidos criados com sucesso"))

	return &CreateOrderUseCase{
		orders:        orders,
		products:      products,
		customers:     customers,
		ordersCreated: ordersCreated,
	}
}

// Execute valida cliente, produtos e estoque, cria o pedido e então aplica a
// baixa de estoque. Qualquer falha de validação aborta a operação inteira,
// antes de qualquer escrita.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, customerID string, products []OrderProductRequest) (*Order, error) {
	tracer := otel.Tracer("store-service")
	ctx, span := tracer.Start(ctx, "create_order")
	defer span.End()

	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.Int("order.items", len(products)),
	)

	log.Printf("➡️ [CREATE ORDER] CustomerID: %s | Items: %d", customerID, len(products))

	// 1. Verifica se o cliente existe
	customer, err := uc.customers.FindByID(ctx, customerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if customer == nil {
		log.Printf("❌ CREATE ORDER FAILED: customer not found | CustomerID=%s", customerID)
		span.RecordError(ErrCustomerNotFound)
		return nil, ErrCustomerNotFound
	}

	// 2. Busca todos os produtos solicitados em uma única consulta
	productIDs := make([]string, 0, len(products))
	for _, item := range products {
		productIDs = append(productIDs, item.ID)
	}

	existingProducts, err := uc.products.FindAllByID(ctx, productIDs)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	existingByID := make(map[string]Product, len(existingProducts))
	for _, product := range existingProducts {
		existingByID[product.ID] = product
	}

	// 3. Valida cada item na ordem da requisição e monta itens do pedido e
	// baixas de estoque pendentes. Itens repetidos do mesmo produto são
	// validados de forma independente contra o estoque originalmente lido.
	updateQuantityProducts := make([]ProductStockUpdate, 0, len(products))
	orderProducts := make([]OrderProduct, 0, len(products))

	for _, item := range products {
		currentProduct, ok := existingByID[item.ID]
		if !ok {
			log.Printf("❌ CREATE ORDER FAILED: product not found | ProductID=%s", item.ID)
			span.RecordError(ErrOrderProductsNotFound)
			return nil, ErrOrderProductsNotFound
		}

		if item.Quantity > currentProduct.Quantity {
			log.Printf("❌ CREATE ORDER FAILED: insufficient quantity | ProductID=%s | Requested=%d | Stock=%d",
				item.ID, item.Quantity, currentProduct.Quantity)
			span.RecordError(ErrInsufficientQuantity)
			return nil, ErrInsufficientQuantity
		}

		updateQuantityProducts = append(updateQuantityProducts, ProductStockUpdate{
			ID:       currentProduct.ID,
			Quantity: currentProduct.Quantity - item.Quantity,
		})

		orderProducts = append(orderProducts, OrderProduct{
			ProductID: currentProduct.ID,
			Price:     currentProduct.Price,
			Quantity:  item.Quantity,
		})
	}

	// 4. Cria o pedido como uma unidade
	order, err := uc.orders.CreateOrder(ctx, customer, orderProducts)
	if err != nil {
		log.Printf("❌ Failed to create order: %v", err)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// 5. Aplica as baixas de estoque em uma única chamada em lote.
	// A leitura do passo 2 e esta escrita não são atômicas entre execuções
	// concorrentes: dois pedidos simultâneos do mesmo produto podem ambos
	// passar na validação contra o estoque antigo.
	if _, err := uc.products.UpdateQuantity(ctx, updateQuantityProducts); err != nil {
		log.Printf("❌ Failed to update stock for order %s: %v", order.ID, err)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to update product quantities: %w", err)
	}

	uc.ordersCreated.Add(ctx, 1)
	span.SetAttributes(attribute.String("order.id", order.ID))
	log.Printf("✅ Order created: %s | Items: %d", order.ID, len(order.OrderProducts))
	return order, nil
}

// FindOrderUseCase contém a lógica de consulta de pedidos
type FindOrderUseCase struct {
	orders OrderRepository
}

// NewFindOrderUseCase cria uma nova instância de FindOrderUseCase
func NewFindOrderUseCase(orders OrderRepository) *FindOrderUseCase {
	return &FindOrderUseCase{
		orders: orders,
	}
}

// Execute busca um pedido com cliente e itens
func (uc *FindOrderUseCase) Execute(ctx context.Context, orderID string) (*Order, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListProductsUseCase contém a lógica de listagem do catálogo
type ListProductsUseCase struct {
	products ProductRepository
}

// NewListProductsUseCase cria uma nova instância de ListProductsUseCase
func NewListProductsUseCase(products ProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{
		products: products,
	}
}

// Execute lista o catálogo completo
func (uc *ListProductsUseCase) Execute(ctx context.Context) ([]Product, error) {
	return uc.products.ListProducts(ctx)
}
