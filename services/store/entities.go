package main

import (
	"time"
)

// Customer representa um cliente da loja
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewCustomer cria uma nova instância de Customer
func NewCustomer(id, name, email string) *Customer {
	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Product representa um produto do catálogo
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(id, name string, price float64, quantity int) *Product {
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// OrderProduct representa um item de um pedido.
// Price é uma cópia do preço do produto no momento da criação do pedido.
type OrderProduct struct {
	ID        string    `json:"id" db:"id"`
	OrderID   string    `json:"order_id" db:"order_id"`
	ProductID string    `json:"product_id" db:"product_id"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Order representa um pedido no sistema
type Order struct {
	ID            string         `json:"id" db:"id"`
	Customer      *Customer      `json:"customer"`
	OrderProducts []OrderProduct `json:"order_products"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// NewOrder cria uma nova instância de Order
func NewOrder(id string, customer *Customer, products []OrderProduct) *Order {
	return &Order{
		ID:            id,
		Customer:      customer,
		OrderProducts: products,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// OrderProductRequest representa um item solicitado na criação de um pedido
type OrderProductRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// ProductStockUpdate representa a quantidade final de estoque a ser gravada
// para um produto após a criação de um pedido
type ProductStockUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
