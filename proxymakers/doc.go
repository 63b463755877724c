// Package proxymakers provides a client for the ProxyMakers proxy
// provisioning API.
//
// The client authenticates with a bearer token and maps each REST endpoint
// onto one method. Every method performs exactly one request and wraps the
// JSON envelope ({"status": ..., "data": ...}) in a typed response.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := proxymakers.NewClient(os.Getenv("PROXYMAKERS_TOKEN"), logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	credit, err := client.CheckCredit(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	amount, _ := credit.Credit()
//	currency, _ := credit.Currency()
//
// # Error Handling
//
//   - ErrInvalidToken: empty token at construction, or HTTP 401 on any call
//   - *APIError: any other HTTP status of 400 and above
//   - transport failures are returned wrapped and can be inspected with errors.As
//
// A body that is not a JSON envelope is not an error. The response is
// degraded instead: Decoded reports false, Data returns the raw text and the
// typed getters return an error wrapping ErrUndecodedPayload.
//
//	if errors.Is(err, proxymakers.ErrInvalidToken) {
//		// ask for a new token
//	}
//	if apiErr, ok := proxymakers.AsAPIError(err); ok && apiErr.IsNotFound() {
//		// unknown order
//	}
//
// # Input constraints
//
// PriceQuery, OrderRequest and OrderSettings carry Validate methods that
// check the documented constraints (services, geos, schedules, intents and
// the 1-90 day period). The client never validates on its own.
package proxymakers
