package proxymakers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Service is the proxy product being priced or ordered
type Service string

const (
	// ServiceIPv4 is a dedicated IPv4 proxy
	ServiceIPv4 Service = "proxy_ipv4"
	// ServiceIPv6 is a dedicated IPv6 proxy
	ServiceIPv6 Service = "proxy_ipv6"
)

// Geo is the location of the proxy IPs
type Geo string

const (
	GeoUS Geo = "US"
	GeoDE Geo = "DE"
)

// Schedule is the rotation algorithm used by an order
type Schedule string

const (
	ScheduleNone            Schedule = "none"
	ScheduleFirstAvailable  Schedule = "first_available"
	ScheduleRoundRobin      Schedule = "round_robin"
	ScheduleRandomChoice    Schedule = "random_choice"
	ScheduleLeastConnection Schedule = "least_connection"
)

// Intent tells the price calculator which rank to apply
type Intent string

const (
	IntentOrder Intent = "order"
	IntentRenew Intent = "renew"
)

// Order status values sent by SetOrderStatus
const (
	StatusActive  = "active"
	StatusStopped = "stopped"
)

// Period bounds in days
const (
	MinPeriod = 1
	MaxPeriod = 90
)

// Schedules lists every schedule the API accepts
var Schedules = []Schedule{
	ScheduleNone,
	ScheduleFirstAvailable,
	ScheduleRoundRobin,
	ScheduleRandomChoice,
	ScheduleLeastConnection,
}

// PriceQuery holds the parameters of CalculateOrderPrice.
// An empty Intent is sent as IntentOrder.
type PriceQuery struct {
	Service  Service `validate:"required,oneof=proxy_ipv4 proxy_ipv6"`
	Quantity int     `validate:"min=1"`
	Period   int     `validate:"min=1,max=90"`
	Intent   Intent  `validate:"omitempty,oneof=order renew"`
}

func (q PriceQuery) form() url.Values {
	intent := q.Intent
	if intent == "" {
		intent = IntentOrder
	}
	return url.Values{
		"service":  {string(q.Service)},
		"quantity": {strconv.Itoa(q.Quantity)},
		"period":   {strconv.Itoa(q.Period)},
		"intent":   {string(intent)},
	}
}

// OrderRequest holds the parameters of OrderProxy.
// An empty Schedule is sent as ScheduleNone.
type OrderRequest struct {
	Service  Service  `validate:"required,oneof=proxy_ipv4 proxy_ipv6"`
	Geo      Geo      `validate:"required,oneof=US DE"`
	Quantity int      `validate:"min=1"`
	Period   int      `validate:"min=1,max=90"`
	Schedule Schedule `validate:"omitempty,oneof=none first_available round_robin random_choice least_connection"`
}

func (o OrderRequest) form() url.Values {
	schedule := o.Schedule
	if schedule == "" {
		schedule = ScheduleNone
	}
	return url.Values{
		"service":  {string(o.Service)},
		"geo":      {string(o.Geo)},
		"quantity": {strconv.Itoa(o.Quantity)},
		"period":   {strconv.Itoa(o.Period)},
		"schedule": {string(schedule)},
	}
}

// OrderSettings holds the optional fields of UpdateOrderSettings.
// Nil fields are left out of the request.
type OrderSettings struct {
	Name      *string
	AutoRenew *bool
	Schedule  *Schedule `validate:"omitempty,oneof=none first_available round_robin random_choice least_connection"`
}

// IsEmpty reports whether no setting would be sent
func (s OrderSettings) IsEmpty() bool {
	return s.Name == nil && s.AutoRenew == nil && s.Schedule == nil
}

func (s OrderSettings) form() url.Values {
	values := url.Values{}
	if s.Name != nil {
		values.Set("name", *s.Name)
	}
	if s.AutoRenew != nil {
		values.Set("auto_renew", formBool(*s.AutoRenew))
	}
	if s.Schedule != nil {
		values.Set("schedule", string(*s.Schedule))
	}
	return values
}

// formBool matches how form encoders on the server side expect booleans
func formBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// statusValue maps the active flag onto the API's status vocabulary
func statusValue(active bool) string {
	if active {
		return StatusActive
	}
	return StatusStopped
}

// Fields is an order, proxy or settings record whose layout is owned by the server.
type Fields map[string]any

// Get returns the named field, or "" when absent or null.
func (f Fields) Get(name string) any {
	if v, ok := f[name]; ok && v != nil {
		return v
	}
	return ""
}

// String returns the named field formatted as text.
func (f Fields) String(name string) string {
	switch v := f.Get(name).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// ID is an identifier the API may send either as a JSON string or number.
type ID string

// UnmarshalJSON accepts strings and numbers
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("order id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text
func (id ID) String() string {
	return string(id)
}

// Money is an amount with its currency code
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreditPayload is the data of account/credit
type CreditPayload struct {
	Credit   float64 `json:"credit"`
	Currency string  `json:"currency"`
}

// PriceBreakdown is the prices block of a price calculation
type PriceBreakdown struct {
	Order float64 `json:"order"`
	Renew float64 `json:"renew"`
	Rank  string  `json:"rank"`
}

// PricePayload is the data of order/price/calculate
type PricePayload struct {
	User   CreditPayload  `json:"user"`
	Prices PriceBreakdown `json:"prices"`
}

// OrderRef identifies a created order
type OrderRef struct {
	OrderID ID `json:"order_id"`
}

// OrderPayload is the data of a newly placed order. Some API versions
// return order_id nested under order and some at the top level.
type OrderPayload struct {
	Order   OrderRef `json:"order"`
	OrderID ID       `json:"order_id"`
	Price   Money    `json:"price"`
}

// ID returns the created order's id from whichever location carries it
func (p OrderPayload) ID() ID {
	if p.Order.OrderID != "" {
		return p.Order.OrderID
	}
	return p.OrderID
}

// RenewPayload is the data of orders/{id}/renew
type RenewPayload struct {
	Price Money `json:"price"`
}

// OrdersPayload is the data of GET orders
type OrdersPayload struct {
	Orders []Fields `json:"orders"`
}

// OrderDetailsPayload is the data of GET orders/{id}
type OrderDetailsPayload struct {
	Proxies []Fields `json:"proxies"`
}

// SettingsPayload is the data of orders/{id}/settings
type SettingsPayload struct {
	Details Fields `json:"details"`
}

// StatusPayload is the data of orders/{id}/status
type StatusPayload struct {
	Status string `json:"status"`
}
