package proxymakers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCreditResponse(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"status":"success","data":{"credit":12.5,"currency":"USD"}}`)
	client := newTestClient(t, server)

	resp, err := client.CheckCredit(context.Background())
	require.NoError(t, err)

	credit, err := resp.Credit()
	require.NoError(t, err)
	assert.Equal(t, 12.5, credit)

	currency, err := resp.Currency()
	require.NoError(t, err)
	assert.Equal(t, "USD", currency)

	status, err := resp.Status()
	require.NoError(t, err)
	assert.Equal(t, "success", status)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "USD", resp.Field("currency"))
}

func TestCalculateOrderPriceResponse(t *testing.T) {
	body := `{"status":"success","data":{
		"user":{"credit":40,"currency":"EUR"},
		"prices":{"order":18.75,"renew":15.5,"rank":"silver"}
	}}`
	server, _ := newTestServer(t, http.StatusOK, body)
	client := newTestClient(t, server)

	resp, err := client.CalculateOrderPrice(context.Background(), PriceQuery{Service: ServiceIPv4, Quantity: 5, Period: 30})
	require.NoError(t, err)

	credit, err := resp.Credit()
	require.NoError(t, err)
	assert.Equal(t, 40.0, credit)

	currency, err := resp.Currency()
	require.NoError(t, err)
	assert.Equal(t, "EUR", currency)

	orderPrice, err := resp.OrderPrice()
	require.NoError(t, err)
	assert.Equal(t, 18.75, orderPrice)

	renewPrice, err := resp.RenewPrice()
	require.NoError(t, err)
	assert.Equal(t, 15.5, renewPrice)

	rank, err := resp.PriceRank()
	require.NoError(t, err)
	assert.Equal(t, "silver", rank)
}

func TestOrderProxyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "top level order id",
			body: `{"status":"success","data":{"order_id":"abc123","price":{"amount":3.2,"currency":"USD"}}}`,
			want: "abc123",
		},
		{
			name: "nested order id",
			body: `{"status":"success","data":{"order":{"order_id":"abc123"},"price":{"amount":3.2,"currency":"USD"}}}`,
			want: "abc123",
		},
		{
			name: "numeric order id",
			body: `{"status":"success","data":{"order":{"order_id":991},"price":{"amount":3.2,"currency":"USD"}}}`,
			want: "991",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, http.StatusOK, tt.body)
			client := newTestClient(t, server)

			resp, err := client.OrderProxy(context.Background(), OrderRequest{Service: ServiceIPv4, Geo: GeoUS, Quantity: 1, Period: 30})
			require.NoError(t, err)

			id, err := resp.OrderID()
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)

			price, err := resp.OrderPrice()
			require.NoError(t, err)
			assert.Equal(t, 3.2, price)

			currency, err := resp.OrderPriceCurrency()
			require.NoError(t, err)
			assert.Equal(t, "USD", currency)
		})
	}
}

func TestRenewOrderResponse(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"status":"success","data":{"price":{"amount":9.99,"currency":"USD"}}}`)
	client := newTestClient(t, server)

	resp, err := client.RenewOrder(context.Background(), "abc123", 30)
	require.NoError(t, err)

	price, err := resp.RenewPrice()
	require.NoError(t, err)
	assert.Equal(t, 9.99, price)

	currency, err := resp.RenewCurrency()
	require.NoError(t, err)
	assert.Equal(t, "USD", currency)
}

func TestListOrdersResponse(t *testing.T) {
	body := `{"status":"success","data":{"orders":[
		{"order_id":"a1","service":"proxy_ipv4","quantity":5,"auto_renew":true},
		{"order_id":"b2","service":"proxy_ipv6","quantity":20,"auto_renew":false}
	]}}`
	server, _ := newTestServer(t, http.StatusOK, body)
	client := newTestClient(t, server)

	resp, err := client.ListOrders(context.Background())
	require.NoError(t, err)

	orders, err := resp.Orders()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "a1", orders[0].String("order_id"))
	assert.Equal(t, "20", orders[1].String("quantity"))
	assert.Equal(t, "false", orders[1].String("auto_renew"))

	payload, err := resp.Payload()
	require.NoError(t, err)
	assert.Len(t, payload.Orders, 2)
}

func TestGetOrderDetailsResponse(t *testing.T) {
	body := `{"status":"success","data":{"proxies":[{"ip":"10.0.0.1","port":3128},{"ip":"10.0.0.2","port":3128}]}}`
	server, _ := newTestServer(t, http.StatusOK, body)
	client := newTestClient(t, server)

	resp, err := client.GetOrderDetails(context.Background(), "abc123")
	require.NoError(t, err)

	proxies, err := resp.Proxies()
	require.NoError(t, err)
	require.Len(t, proxies, 2)
	assert.Equal(t, "10.0.0.2", proxies[1].String("ip"))
	assert.Equal(t, "3128", proxies[0].String("port"))
}

func TestDegradedResponseGetters(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `not json at all`)
	client := newTestClient(t, server)

	resp, err := client.CheckCredit(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Decoded())
	assert.Equal(t, "not json at all", resp.Data())
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	_, err = resp.Status()
	assert.ErrorIs(t, err, ErrUndecodedPayload)

	_, err = resp.Credit()
	assert.ErrorIs(t, err, ErrUndecodedPayload)

	_, err = resp.Currency()
	assert.ErrorIs(t, err, ErrUndecodedPayload)

	assert.Equal(t, "", resp.Field("credit"))
}

func TestUnexpectedDataShape(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"status":"success","data":{"orders":"none"}}`)
	client := newTestClient(t, server)

	resp, err := client.ListOrders(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Decoded())
	_, err = resp.Orders()
	assert.ErrorIs(t, err, ErrUndecodedPayload)
	assert.Equal(t, "none", resp.Field("orders"))
}
