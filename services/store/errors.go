package main

// BusinessError representa uma violação de regra de negócio (erro do usuário,
// não falha de infraestrutura). O handler HTTP mapeia para status 400.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// Erros de negócio
var (
	ErrProductAlreadyExists = &BusinessError{
		Code:    "duplicate_product",
		Message: "Product already created",
	}
	ErrCustomerAlreadyExists = &BusinessError{
		Code:    "duplicate_customer",
		Message: "This e-mail is already in use",
	}
	ErrCustomerNotFound = &BusinessError{
		Code:    "customer_not_found",
		Message: "This customer does not exists",
	}
	ErrOrderProductsNotFound = &BusinessError{
		Code:    "product_not_found",
		Message: "One or more products in order do not exist",
	}
	ErrInsufficientQuantity = &BusinessError{
		Code:    "insufficient_quantity",
		Message: "One or more products have an insufficient quantity available",
	}
	ErrOrderNotFound = &BusinessError{
		Code:    "order_not_found",
		Message: "Order does not exists",
	}
)
