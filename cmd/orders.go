package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/proxymakers/filter"
	"github.com/s0up4200/proxymakers/operations"
	"github.com/s0up4200/proxymakers/proxymakers"
)

var (
	filterExpr string

	// settings flags
	aliasName string
	autoRenew bool
)

// ordersCmd groups the commands working on existing orders
var ordersCmd = &cobra.Command{
	Use:               "orders",
	Short:             "List and manage existing orders",
	PersistentPreRunE: initializeApp,
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, optionally filtered",
	Long: `List every order on the account. --filter takes an expression over the
order fields, for example:

  proxymakers orders list --filter 'service == "proxy_ipv6" && quantity >= 10'
  proxymakers orders list --filter 'hasField("name") && icontains(name, "scrape")'`,
	Args: cobra.NoArgs,
	RunE: runOrdersList,
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order-id>...",
	Short: "Show the proxies of one or more orders",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOrdersShow,
}

var ordersSettingsCmd = &cobra.Command{
	Use:   "settings <order-id>",
	Short: "Change the alias, schedule or auto renew of an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersSettings,
}

var ordersStartCmd = &cobra.Command{
	Use:   "start [order-id]...",
	Short: "Start stopped orders",
	RunE:  runOrdersStatus(true),
}

var ordersStopCmd = &cobra.Command{
	Use:   "stop [order-id]...",
	Short: "Stop active orders",
	RunE:  runOrdersStatus(false),
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersSettingsCmd, ordersStartCmd, ordersStopCmd)

	ordersListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")

	ordersSettingsCmd.Flags().StringVar(&aliasName, "name", "", "order alias")
	ordersSettingsCmd.Flags().BoolVar(&autoRenew, "auto-renew", false, "renew the order automatically")
	ordersSettingsCmd.Flags().StringVar(&schedule, "schedule", "", "rotation schedule")

	for _, c := range []*cobra.Command{ordersStartCmd, ordersStopCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "select orders with a filter expression instead of ids")
		c.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	}
}

func compileFilter() (*filter.Filter, error) {
	if filterExpr == "" {
		return nil, nil
	}
	f, err := filter.Compile(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

func runOrdersList(cmd *cobra.Command, _ []string) error {
	f, err := compileFilter()
	if err != nil {
		return err
	}

	orders, err := ops.SearchOrders(cmd.Context(), f)
	if err != nil {
		return err
	}

	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(orders, func(w io.Writer) {
		if len(orders) == 0 {
			fmt.Fprintln(w, "No orders found.")
			return
		}
		fmt.Fprintf(w, "Found %d %s:\n\n", len(orders), pluralize(len(orders), "order", "orders"))
		printRecords(w, orders)
	})
}

func runOrdersShow(cmd *cobra.Command, args []string) error {
	results := ops.FetchOrderDetails(cmd.Context(), args)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", r.OrderID, r.Err))
		}
	}

	err := newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(results, func(w io.Writer) {
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Order %s\n", r.OrderID)
			switch {
			case r.Err != nil:
				fmt.Fprintf(w, "  ✗ %v\n", r.Err)
			case len(r.Proxies) == 0:
				fmt.Fprintln(w, "  No proxies.")
			default:
				printRecords(w, r.Proxies)
			}
		}
	})
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}

func runOrdersSettings(cmd *cobra.Command, args []string) error {
	orderID := args[0]

	var settings proxymakers.OrderSettings
	if cmd.Flags().Changed("name") {
		settings.Name = &aliasName
	}
	if cmd.Flags().Changed("auto-renew") {
		settings.AutoRenew = &autoRenew
	}
	if cmd.Flags().Changed("schedule") {
		s := proxymakers.Schedule(schedule)
		settings.Schedule = &s
	}
	if settings.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one of --name, --auto-renew or --schedule")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if cfg.Safety.DryRun {
		logger.Info().Str("order_id", orderID).Msg("DRY RUN MODE - Settings will not be changed")
		return nil
	}

	resp, err := client.UpdateOrderSettings(cmd.Context(), orderID, settings)
	if err != nil {
		return err
	}

	details, err := resp.ProxyDetails()
	if err != nil {
		logger.Warn().Err(err).Msg("Settings updated but the response could not be read")
		details = proxymakers.Fields{}
	}

	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(details, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Settings of order %s updated\n", orderID)
		if len(details) > 0 {
			printKeyValues(w, fieldRows(details))
		}
	})
}

func runOrdersStatus(active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ids := args
		if filterExpr != "" {
			if len(args) > 0 {
				return fmt.Errorf("pass order ids or --filter, not both")
			}
			f, err := compileFilter()
			if err != nil {
				return err
			}
			orders, err := ops.SearchOrders(cmd.Context(), f)
			if err != nil {
				return err
			}
			for _, o := range orders {
				id := o.String("order_id")
				if id == "" {
					logger.Warn().Interface("order", o).Msg("Skipping matched order without order_id")
					continue
				}
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("no orders selected: pass order ids or --filter")
		}

		action := "Stop"
		if active {
			action = "Start"
		}

		if !cfg.Safety.DryRun && cfg.Safety.ConfirmOrders && !noConfirm && len(ids) > 1 {
			if !confirm(cmd, fmt.Sprintf("%s %d orders?", action, len(ids))) {
				logger.Info().Msg("Status change cancelled by user")
				return nil
			}
		}

		result := ops.SetOrdersStatus(cmd.Context(), ids, active, cfg.Safety.DryRun)
		if err := printBatchResult(cmd, action, result); err != nil {
			return err
		}
		return result.Err()
	}
}

type batchOutput struct {
	Requested  int               `json:"requested" yaml:"requested"`
	Successful []string          `json:"successful" yaml:"successful"`
	Failed     map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
	DryRun     bool              `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

func printBatchResult(cmd *cobra.Command, action string, result operations.BatchResult) error {
	out := batchOutput{
		Requested:  result.Requested,
		Successful: result.Successful,
		DryRun:     result.DryRun,
	}
	if len(result.Failed) > 0 {
		out.Failed = make(map[string]string, len(result.Failed))
		for _, f := range result.Failed {
			out.Failed[f.OrderID] = f.Err.Error()
		}
	}

	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(out, func(w io.Writer) {
		verb := "Updated"
		if result.DryRun {
			verb = "Would " + action
		}
		for _, id := range result.Successful {
			fmt.Fprintf(w, "✓ %s %s\n", verb, id)
		}
		for _, f := range result.Failed {
			fmt.Fprintf(w, "✗ %s: %v\n", f.OrderID, f.Err)
		}
	})
}
