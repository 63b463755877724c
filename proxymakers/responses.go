package proxymakers

// CheckCreditResponse wraps the result of CheckCredit
type CheckCreditResponse struct {
	view[CreditPayload]
}

// Credit returns the amount of credit available in the account
func (r *CheckCreditResponse) Credit() (float64, error) {
	return r.payload.Credit, r.err
}

// Currency returns the currency code of the balance
func (r *CheckCreditResponse) Currency() (string, error) {
	return r.payload.Currency, r.err
}

// CalculateOrderPriceResponse wraps the result of CalculateOrderPrice
type CalculateOrderPriceResponse struct {
	view[PricePayload]
}

// Credit returns the credit available in the account
func (r *CalculateOrderPriceResponse) Credit() (float64, error) {
	return r.payload.User.Credit, r.err
}

// Currency returns the currency code of the balance
func (r *CalculateOrderPriceResponse) Currency() (string, error) {
	return r.payload.User.Currency, r.err
}

// OrderPrice returns the credit required to order the given resources
func (r *CalculateOrderPriceResponse) OrderPrice() (float64, error) {
	return r.payload.Prices.Order, r.err
}

// RenewPrice returns the credit required to renew the given resources
func (r *CalculateOrderPriceResponse) RenewPrice() (float64, error) {
	return r.payload.Prices.Renew, r.err
}

// PriceRank returns the membership rank the price was calculated for
func (r *CalculateOrderPriceResponse) PriceRank() (string, error) {
	return r.payload.Prices.Rank, r.err
}

// OrderProxyResponse wraps the result of OrderProxy
type OrderProxyResponse struct {
	view[OrderPayload]
}

// OrderID returns the id of the created order
func (r *OrderProxyResponse) OrderID() (string, error) {
	return r.payload.ID().String(), r.err
}

// OrderPrice returns the amount subtracted from the credit for the order
func (r *OrderProxyResponse) OrderPrice() (float64, error) {
	return r.payload.Price.Amount, r.err
}

// OrderPriceCurrency returns the currency the order price was charged in
func (r *OrderProxyResponse) OrderPriceCurrency() (string, error) {
	return r.payload.Price.Currency, r.err
}

// RenewOrderResponse wraps the result of RenewOrder
type RenewOrderResponse struct {
	view[RenewPayload]
}

// RenewPrice returns the amount subtracted from the credit for the renewal
func (r *RenewOrderResponse) RenewPrice() (float64, error) {
	return r.payload.Price.Amount, r.err
}

// RenewCurrency returns the currency the renewal was charged in
func (r *RenewOrderResponse) RenewCurrency() (string, error) {
	return r.payload.Price.Currency, r.err
}

// ListOrdersResponse wraps the result of ListOrders
type ListOrdersResponse struct {
	view[OrdersPayload]
}

// Orders returns every order of the account
func (r *ListOrdersResponse) Orders() ([]Fields, error) {
	return r.payload.Orders, r.err
}

// GetOrderDetailsResponse wraps the result of GetOrderDetails
type GetOrderDetailsResponse struct {
	view[OrderDetailsPayload]
}

// Proxies returns every proxy of the order
func (r *GetOrderDetailsResponse) Proxies() ([]Fields, error) {
	return r.payload.Proxies, r.err
}

// UpdateOrderSettingsResponse wraps the result of UpdateOrderSettings
type UpdateOrderSettingsResponse struct {
	view[SettingsPayload]
}

// ProxyDetails returns the order details after the update
func (r *UpdateOrderSettingsResponse) ProxyDetails() (Fields, error) {
	return r.payload.Details, r.err
}

// SetOrderStatusResponse wraps the result of SetOrderStatus
type SetOrderStatusResponse struct {
	view[StatusPayload]
}

// UpdatedStatus returns the status the order now has
func (r *SetOrderStatusResponse) UpdatedStatus() (string, error) {
	return r.payload.Status, r.err
}
