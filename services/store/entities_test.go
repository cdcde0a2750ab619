package main

import (
	"testing"
	"time"
)

func TestNewProduct(t *testing.T) {
	// Arrange
	id := "prod-123"
	name := "Widget"
	price := 10.0
	quantity := 5

	// Act
	product := NewProduct(id, name, price, quantity)

	// Assert
	if product.ID != id {
		t.Errorf("Expected ID %s, got %s", id, product.ID)
	}
	if product.Name != name {
		t.Errorf("Expected Name %s, got %s", name, product.Name)
	}
	if product.Price != price {
		t.Errorf("Expected Price %f, got %f", price, product.Price)
	}
	if product.Quantity != quantity {
		t.Errorf("Expected Quantity %d, got %d", quantity, product.Quantity)
	}
	if product.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	if product.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	// Verify that CreatedAt and UpdatedAt are within a reasonable time range
	now := time.Now()
	if product.CreatedAt.After(now) || product.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestNewCustomer(t *testing.T) {
	// Arrange
	id := "cust-123"
	name := "John Doe"
	email := "john@example.com"

	// Act
	customer := NewCustomer(id, name, email)

	// Assert
	if customer.ID != id {
		t.Errorf("Expected ID %s, got %s", id, customer.ID)
	}
	if customer.Name != name {
		t.Errorf("Expected Name %s, got %s", name, customer.Name)
	}
	if customer.Email != email {
		t.Errorf("Expected Email %s, got %s", email, customer.Email)
	}
	if customer.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestNewOrder(t *testing.T) {
	// Arrange
	customer := NewCustomer("cust-123", "John Doe", "john@example.com")
	products := []OrderProduct{
		{ProductID: "prod-123", Price: 4.5, Quantity: 2},
	}

	// Act
	order := NewOrder("order-123", customer, products)

	// Assert
	if order.ID != "order-123" {
		t.Errorf("Expected ID order-123, got %s", order.ID)
	}
	if order.Customer != customer {
		t.Error("Expected Customer to be set")
	}
	if len(order.OrderProducts) != 1 {
		t.Errorf("Expected 1 order product, got %d", len(order.OrderProducts))
	}
	if order.OrderProducts[0].Price != 4.5 {
		t.Errorf("Expected price snapshot 4.5, got %f", order.OrderProducts[0].Price)
	}
	if order.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}
