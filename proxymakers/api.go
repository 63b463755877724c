package proxymakers

import (
	"context"
)

// API defines the interface for ProxyMakers operations
type API interface {
	// CheckCredit returns the account balance
	CheckCredit(ctx context.Context) (*CheckCreditResponse, error)

	// CalculateOrderPrice returns order and renew prices for the given resources
	CalculateOrderPrice(ctx context.Context, q PriceQuery) (*CalculateOrderPriceResponse, error)

	// OrderProxy places a new order
	OrderProxy(ctx context.Context, o OrderRequest) (*OrderProxyResponse, error)

	// RenewOrder renews an existing order
	RenewOrder(ctx context.Context, orderID string, period int) (*RenewOrderResponse, error)

	// ListOrders retrieves all orders
	ListOrders(ctx context.Context) (*ListOrdersResponse, error)

	// GetOrderDetails retrieves a single order with its proxies
	GetOrderDetails(ctx context.Context, orderID string) (*GetOrderDetailsResponse, error)

	// UpdateOrderSettings changes alias, schedule or auto renew of an order
	UpdateOrderSettings(ctx context.Context, orderID string, s OrderSettings) (*UpdateOrderSettingsResponse, error)

	// SetOrderStatus starts or stops an order
	SetOrderStatus(ctx context.Context, orderID string, active bool) (*SetOrderStatusResponse, error)
}
