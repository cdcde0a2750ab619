package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateCustomerRequest representa a requisição para criar um cliente
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreateProductRequest representa a requisição para criar um produto
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gte=0"`
	Quantity int     `json:"quantity" binding:"required,gte=0"`
}

// CreateOrderRequest representa a requisição para criar um pedido
type CreateOrderRequest struct {
	CustomerID string                `json:"customer_id" binding:"required"`
	Products   []OrderProductRequest `json:"products" binding:"required,min=1,dive"`
}

// CreateCustomerExecutor define a interface para o caso de uso de clientes
type CreateCustomerExecutor interface {
	Execute(ctx context.Context, name, email string) (*Customer, error)
}

// CreateProductExecutor define a interface para o caso de uso de produtos
type CreateProductExecutor interface {
	Execute(ctx context.Context, name string, price float64, quantity int) (*Product, error)
}

// CreateOrderExecutor define a interface para o caso de uso de pedidos
type CreateOrderExecutor interface {
	Execute(ctx context.Context, customerID string, products []OrderProductRequest) (*Order, error)
}

// FindOrderExecutor define a interface para a consulta de pedidos
type FindOrderExecutor interface {
	Execute(ctx context.Context, orderID string) (*Order, error)
}

// ListProductsExecutor define a interface para a listagem do catálogo
type ListProductsExecutor interface {
	Execute(ctx context.Context) ([]Product, error)
}

// StoreHandler contém os handlers HTTP
type StoreHandler struct {
	createCustomer CreateCustomerExecutor
	createProduct  CreateProductExecutor
	createOrder    CreateOrderExecutor
	findOrder      FindOrderExecutor
	listProducts   ListProductsExecutor
	tracer         trace.Tracer
}

// NewStoreHandler cria uma nova instância de StoreHandler
func NewStoreHandler(
	createCustomer CreateCustomerExecutor,
	createProduct CreateProductExecutor,
	createOrder CreateOrderExecutor,
	findOrder FindOrderExecutor,
	listProducts ListProductsExecutor,
	tracer trace.Tracer,
) *StoreHandler {
	return &StoreHandler{
		createCustomer: createCustomer,
		createProduct:  createProduct,
		createOrder:    createOrder,
		findOrder:      findOrder,
		listProducts:   listProducts,
		tracer:         tracer,
	}
}

// CreateCustomer cria um novo cliente
func (h *StoreHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.createCustomer.Execute(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateProduct cria um novo produto
func (h *StoreHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.createProduct.Execute(c.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts lista o catálogo
func (h *StoreHandler) ListProducts(c *gin.Context) {
	products, err := h.listProducts.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateOrder cria um novo pedido
func (h *StoreHandler) CreateOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handle_create_order")
	defer span.End()

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("customer_id", req.CustomerID),
		attribute.Int("items", len(req.Products)),
	)

	order, err := h.createOrder.Execute(ctx, req.CustomerID, req.Products)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	span.SetAttributes(attribute.String("order_id", order.ID))
	c.JSON(http.StatusOK, order)
}

// FindOrder busca um pedido pelo ID
func (h *StoreHandler) FindOrder(c *gin.Context) {
	order, err := h.findOrder.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// HealthCheck verifica a saúde do serviço
func (h *StoreHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "store-service",
	})
}

// respondError mapeia erros de negócio para 400 e falhas de infraestrutura para 500
func respondError(c *gin.Context, err error) {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": businessErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
