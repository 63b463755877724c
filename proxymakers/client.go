package proxymakers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-ID"

// Client represents a ProxyMakers API client
type Client struct {
	baseURL string
	token   string
	http    *resty.Client
	logger  zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new ProxyMakers client. The HTTP transport is built
// here once and reused by every call; no request is made.
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
		if o.timeoutSet {
			rc.SetTimeout(o.timeout)
		}
	} else {
		rc = resty.New().SetTimeout(o.timeout)
	}

	rc.SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", o.userAgent).
		SetLogger(restyLogger{logger: logger}).
		SetDebug(o.debug).
		OnRequestLog(redactRequestLog)

	return &Client{
		baseURL: o.baseURL,
		token:   token,
		http:    rc,
		logger:  logger,
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call performs one request. A nil form sends no body.
func (c *Client) call(ctx context.Context, method, endpoint string, form url.Values) (*Response, error) {
	requestID := uuid.NewString()

	req := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, requestID)
	if form != nil {
		req.SetFormDataFromValues(form)
	}

	resp, err := req.Execute(method, c.baseURL+endpoint)
	if err != nil {
		return nil, fmt.Errorf("proxymakers: %s %s: %w", method, endpoint, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("ProxyMakers API request")

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s %s rejected with status 401", ErrInvalidToken, method, endpoint)
	case resp.IsError():
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Method:     method,
			Endpoint:   endpoint,
			Body:       string(resp.Body()),
		}
	}

	return NewResponse(resp.RawResponse, resp.Body()), nil
}

// orderPath builds orders/{id}[/suffix]
func orderPath(orderID, suffix string) (string, error) {
	if strings.TrimSpace(orderID) == "" {
		return "", ErrMissingOrderID
	}
	path := "orders/" + url.PathEscape(orderID)
	if suffix != "" {
		path += "/" + suffix
	}
	return path, nil
}

// CheckCredit returns how much credit the account has
func (c *Client) CheckCredit(ctx context.Context) (*CheckCreditResponse, error) {
	resp, err := c.call(ctx, http.MethodGet, "account/credit", nil)
	if err != nil {
		return nil, err
	}
	return &CheckCreditResponse{newView[CreditPayload](resp)}, nil
}

// CalculateOrderPrice asks the server for the price of an order or renewal.
// Prices depend on membership rank, quantity, period and service.
func (c *Client) CalculateOrderPrice(ctx context.Context, q PriceQuery) (*CalculateOrderPriceResponse, error) {
	resp, err := c.call(ctx, http.MethodPost, "order/price/calculate", q.form())
	if err != nil {
		return nil, err
	}
	return &CalculateOrderPriceResponse{newView[PricePayload](resp)}, nil
}

// OrderProxy registers new proxies
func (c *Client) OrderProxy(ctx context.Context, o OrderRequest) (*OrderProxyResponse, error) {
	resp, err := c.call(ctx, http.MethodPost, "orders", o.form())
	if err != nil {
		return nil, err
	}
	return &OrderProxyResponse{newView[OrderPayload](resp)}, nil
}

// RenewOrder extends an order by period days
func (c *Client) RenewOrder(ctx context.Context, orderID string, period int) (*RenewOrderResponse, error) {
	path, err := orderPath(orderID, "renew")
	if err != nil {
		return nil, err
	}
	resp, err := c.call(ctx, http.MethodPost, path, url.Values{
		"period": {strconv.Itoa(period)},
	})
	if err != nil {
		return nil, err
	}
	return &RenewOrderResponse{newView[RenewPayload](resp)}, nil
}

// ListOrders retrieves every order of the account
func (c *Client) ListOrders(ctx context.Context) (*ListOrdersResponse, error) {
	resp, err := c.call(ctx, http.MethodGet, "orders", nil)
	if err != nil {
		return nil, err
	}
	return &ListOrdersResponse{newView[OrdersPayload](resp)}, nil
}

// GetOrderDetails retrieves an order and its proxies
func (c *Client) GetOrderDetails(ctx context.Context, orderID string) (*GetOrderDetailsResponse, error) {
	path, err := orderPath(orderID, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return &GetOrderDetailsResponse{newView[OrderDetailsPayload](resp)}, nil
}

// UpdateOrderSettings sets an order's alias, schedule algorithm or auto renew flag
func (c *Client) UpdateOrderSettings(ctx context.Context, orderID string, s OrderSettings) (*UpdateOrderSettingsResponse, error) {
	path, err := orderPath(orderID, "settings")
	if err != nil {
		return nil, err
	}
	resp, err := c.call(ctx, http.MethodPost, path, s.form())
	if err != nil {
		return nil, err
	}
	return &UpdateOrderSettingsResponse{newView[SettingsPayload](resp)}, nil
}

// SetOrderStatus starts (active) or stops an order. Stopping and starting
// again restarts its proxies.
func (c *Client) SetOrderStatus(ctx context.Context, orderID string, active bool) (*SetOrderStatusResponse, error) {
	path, err := orderPath(orderID, "status")
	if err != nil {
		return nil, err
	}
	resp, err := c.call(ctx, http.MethodPost, path, url.Values{
		"status": {statusValue(active)},
	})
	if err != nil {
		return nil, err
	}
	return &SetOrderStatusResponse{newView[StatusPayload](resp)}, nil
}
