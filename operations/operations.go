package operations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/proxymakers/filter"
	"github.com/s0up4200/proxymakers/proxymakers"
)

// DefaultConcurrency bounds fan-out when no limit is configured
const DefaultConcurrency = 5

// Operations runs multi-call workflows on top of the ProxyMakers API
type Operations struct {
	client      proxymakers.API
	logger      zerolog.Logger
	concurrency int
}

// NewOperations creates a new Operations instance
func NewOperations(client proxymakers.API, logger zerolog.Logger, concurrency int) *Operations {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Operations{
		client:      client,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Overview is the account balance together with every order
type Overview struct {
	Credit   float64              `json:"credit" yaml:"credit"`
	Currency string               `json:"currency" yaml:"currency"`
	Orders   []proxymakers.Fields `json:"orders" yaml:"orders"`
}

// AccountOverview fetches credit and orders concurrently
func (o *Operations) AccountOverview(ctx context.Context) (*Overview, error) {
	var overview Overview

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := o.client.CheckCredit(ctx)
		if err != nil {
			return fmt.Errorf("failed to check credit: %w", err)
		}
		payload, err := resp.Payload()
		if err != nil {
			return fmt.Errorf("failed to read credit: %w", err)
		}
		overview.Credit = payload.Credit
		overview.Currency = payload.Currency
		return nil
	})

	g.Go(func() error {
		orders, err := o.listOrders(ctx)
		if err != nil {
			return err
		}
		overview.Orders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}

// SearchOrders lists orders and keeps those matching f. A nil filter
// matches every order. Orders the filter cannot evaluate are logged and
// skipped.
func (o *Operations) SearchOrders(ctx context.Context, f *filter.Filter) ([]proxymakers.Fields, error) {
	orders, err := o.listOrders(ctx)
	if err != nil {
		return nil, err
	}

	if f != nil {
		matches, err := f.Select(orders)
		if err != nil {
			o.logger.Warn().Err(err).Str("filter", f.Expression()).Msg("Some orders could not be evaluated")
		}
		orders = matches
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return strings.ToLower(orders[i].String("order_id")) < strings.ToLower(orders[j].String("order_id"))
	})

	o.logger.Debug().Msgf("Found %d matching orders", len(orders))
	return orders, nil
}

// OrderDetails holds the proxies of one order, or the error fetching them
type OrderDetails struct {
	OrderID string               `json:"order_id" yaml:"order_id"`
	Proxies []proxymakers.Fields `json:"proxies,omitempty" yaml:"proxies,omitempty"`
	Err     error                `json:"-" yaml:"-"`
}

// FetchOrderDetails retrieves proxies for several orders concurrently.
// Results keep the order of ids. A failing order does not stop the others.
func (o *Operations) FetchOrderDetails(ctx context.Context, ids []string) []OrderDetails {
	results := make([]OrderDetails, len(ids))
	if len(ids) == 0 {
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, id := range ids {
		results[i].OrderID = id
		g.Go(func() error {
			resp, err := o.client.GetOrderDetails(ctx, id)
			if err == nil {
				results[i].Proxies, err = resp.Proxies()
			}
			if err != nil {
				o.logger.Warn().Err(err).Str("order_id", id).Msg("Failed to get order details")
				results[i].Err = err
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// BatchResult contains the results of a batch status change
type BatchResult struct {
	Requested  int
	Successful []string
	Failed     []OrderError
	DryRun     bool
}

// Err summarises the failures, or returns nil when every order succeeded
func (r BatchResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, failure := range r.Failed {
		errs = append(errs, failure)
	}
	return fmt.Errorf("failed to update %d of %d orders: %w", len(r.Failed), r.Requested, errors.Join(errs...))
}

// OrderError contains information about a failed order operation
type OrderError struct {
	OrderID string
	Err     error
}

// Error implements the error interface
func (e OrderError) Error() string {
	return fmt.Sprintf("order %s: %v", e.OrderID, e.Err)
}

func (e OrderError) Unwrap() error {
	return e.Err
}

// SetOrdersStatus starts or stops several orders. An invalid token cancels
// the remaining calls since every one of them would fail the same way.
func (o *Operations) SetOrdersStatus(ctx context.Context, ids []string, active, dryRun bool) BatchResult {
	result := BatchResult{Requested: len(ids), DryRun: dryRun}
	if len(ids) == 0 {
		return result
	}

	action := "stop"
	if active {
		action = "start"
	}

	if dryRun {
		o.logger.Info().Str("action", action).Strs("orders", ids).Msg("DRY RUN MODE - No orders will be changed")
		result.Successful = append(result.Successful, ids...)
		return result
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	var mu sync.Mutex
	for _, id := range ids {
		g.Go(func() error {
			_, err := o.client.SetOrderStatus(ctx, id, active)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, OrderError{OrderID: id, Err: err})
				if errors.Is(err, proxymakers.ErrInvalidToken) {
					cancel()
				}
				return nil
			}
			result.Successful = append(result.Successful, id)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(result.Successful)
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].OrderID < result.Failed[j].OrderID })

	o.logger.Info().
		Str("action", action).
		Int("updated", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("Status change complete")

	return result
}

func (o *Operations) listOrders(ctx context.Context) ([]proxymakers.Fields, error) {
	resp, err := o.client.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders, err := resp.Orders()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}
