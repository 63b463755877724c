package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxymakers/proxymakers"
)

var (
	service  string
	geo      string
	quantity int
	period   int
	schedule string
	forRenew bool
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Calculate the price of an order or renewal",
	Long: `Ask the API what an order would cost. Prices depend on the account's
membership rank, the quantity, the period and the service.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runPrice,
}

// orderCmd represents the order command
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Order new proxies",
	Long: `Place a new proxy order. Unset flags fall back to the defaults section
of the config file. With --dry-run the price is calculated and nothing is
ordered.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runOrder,
}

// renewCmd represents the renew command
var renewCmd = &cobra.Command{
	Use:     "renew <order-id>",
	Short:   "Renew an existing order",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runRenew,
}

func init() {
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(renewCmd)

	for _, c := range []*cobra.Command{priceCmd, orderCmd} {
		c.Flags().StringVar(&service, "service", "", "proxy service: proxy_ipv4 or proxy_ipv6")
		c.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of proxies")
		c.Flags().IntVarP(&period, "period", "p", 0, "period in days (1-90)")
	}
	priceCmd.Flags().BoolVar(&forRenew, "renew", false, "price a renewal instead of a new order")

	orderCmd.Flags().StringVar(&geo, "geo", "", "proxy location: US or DE")
	orderCmd.Flags().StringVar(&schedule, "schedule", "", "rotation schedule: none, first_available, round_robin, random_choice or least_connection")
	orderCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	renewCmd.Flags().IntVarP(&period, "period", "p", 0, "period in days (1-90)")
}

type priceOutput struct {
	Credit     float64 `json:"credit" yaml:"credit"`
	Currency   string  `json:"currency" yaml:"currency"`
	OrderPrice float64 `json:"order_price" yaml:"order_price"`
	RenewPrice float64 `json:"renew_price" yaml:"renew_price"`
	PriceRank  string  `json:"price_rank" yaml:"price_rank"`
}

type orderOutput struct {
	OrderID  string  `json:"order_id" yaml:"order_id"`
	Price    float64 `json:"price" yaml:"price"`
	Currency string  `json:"currency" yaml:"currency"`
}

type renewOutput struct {
	OrderID  string  `json:"order_id" yaml:"order_id"`
	Period   int     `json:"period" yaml:"period"`
	Price    float64 `json:"price" yaml:"price"`
	Currency string  `json:"currency" yaml:"currency"`
	DryRun   bool    `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// fillDefaults applies config defaults to unset order flags
func fillDefaults() {
	if service == "" {
		service = cfg.Defaults.Service
	}
	if geo == "" {
		geo = cfg.Defaults.Geo
	}
	if period == 0 {
		period = cfg.Defaults.Period
	}
	if schedule == "" {
		schedule = cfg.Defaults.Schedule
	}
}

func priceQuery(intent proxymakers.Intent) proxymakers.PriceQuery {
	return proxymakers.PriceQuery{
		Service:  proxymakers.Service(service),
		Quantity: quantity,
		Period:   period,
		Intent:   intent,
	}
}

func fetchPrice(cmd *cobra.Command, q proxymakers.PriceQuery) (priceOutput, error) {
	resp, err := client.CalculateOrderPrice(cmd.Context(), q)
	if err != nil {
		return priceOutput{}, err
	}
	payload, err := resp.Payload()
	if err != nil {
		return priceOutput{}, fmt.Errorf("unexpected price response: %w", err)
	}
	return priceOutput{
		Credit:     payload.User.Credit,
		Currency:   payload.User.Currency,
		OrderPrice: payload.Prices.Order,
		RenewPrice: payload.Prices.Renew,
		PriceRank:  payload.Prices.Rank,
	}, nil
}

func printPrice(cmd *cobra.Command, price priceOutput) error {
	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(price, func(w io.Writer) {
		printKeyValues(w, [][2]string{
			{"Order price:", formatMoney(price.OrderPrice, price.Currency)},
			{"Renew price:", formatMoney(price.RenewPrice, price.Currency)},
			{"Price rank:", price.PriceRank},
			{"Credit:", formatMoney(price.Credit, price.Currency)},
		})
	})
}

func runPrice(cmd *cobra.Command, _ []string) error {
	fillDefaults()

	intent := proxymakers.IntentOrder
	if forRenew {
		intent = proxymakers.IntentRenew
	}

	q := priceQuery(intent)
	if err := q.Validate(); err != nil {
		return err
	}

	price, err := fetchPrice(cmd, q)
	if err != nil {
		return err
	}
	return printPrice(cmd, price)
}

func runOrder(cmd *cobra.Command, _ []string) error {
	fillDefaults()

	req := proxymakers.OrderRequest{
		Service:  proxymakers.Service(service),
		Geo:      proxymakers.Geo(geo),
		Quantity: quantity,
		Period:   period,
		Schedule: proxymakers.Schedule(schedule),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	logger.Info().
		Str("service", service).
		Str("geo", geo).
		Int("quantity", quantity).
		Int("period", period).
		Str("schedule", schedule).
		Msg("Preparing order")

	if cfg.Safety.DryRun || (cfg.Safety.ConfirmOrders && !noConfirm) {
		price, err := fetchPrice(cmd, priceQuery(proxymakers.IntentOrder))
		if err != nil {
			return err
		}
		if cfg.Safety.DryRun {
			logger.Info().Msg("DRY RUN MODE - No order will be placed")
			return printPrice(cmd, price)
		}

		question := fmt.Sprintf("Order %d %s %s for %d days at %s?",
			quantity, service, pluralize(quantity, "proxy", "proxies"), period, formatMoney(price.OrderPrice, price.Currency))
		if !confirm(cmd, question) {
			logger.Info().Msg("Order cancelled by user")
			return nil
		}
	}

	resp, err := client.OrderProxy(cmd.Context(), req)
	if err != nil {
		return err
	}

	orderID, err := resp.OrderID()
	if err != nil {
		return fmt.Errorf("order placed but the response could not be read: %w", err)
	}
	if orderID == "" {
		logger.Warn().Msg("Order response did not contain an order id")
	}
	amount, _ := resp.OrderPrice()
	currency, _ := resp.OrderPriceCurrency()

	out := orderOutput{OrderID: orderID, Price: amount, Currency: currency}
	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(out, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Order %s placed (%s)\n", orderID, formatMoney(amount, currency))
	})
}

func runRenew(cmd *cobra.Command, args []string) error {
	orderID := args[0]
	if period == 0 {
		period = cfg.Defaults.Period
	}
	if err := proxymakers.ValidatePeriod(period); err != nil {
		return err
	}

	if cfg.Safety.DryRun {
		logger.Info().Str("order_id", orderID).Int("period", period).Msg("DRY RUN MODE - Order will not be renewed")
		out := renewOutput{OrderID: orderID, Period: period, DryRun: true}
		return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(out, func(w io.Writer) {
			fmt.Fprintf(w, "Would renew order %s for %d days\n", orderID, period)
		})
	}

	resp, err := client.RenewOrder(cmd.Context(), orderID, period)
	if err != nil {
		return err
	}

	amount, err := resp.RenewPrice()
	if err != nil {
		return fmt.Errorf("order renewed but the response could not be read: %w", err)
	}
	currency, _ := resp.RenewCurrency()

	out := renewOutput{OrderID: orderID, Period: period, Price: amount, Currency: currency}
	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(out, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Order %s renewed for %d days (%s)\n", orderID, period, formatMoney(amount, currency))
	})
}

// confirm prompts the user for a yes/no answer
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
