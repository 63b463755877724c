package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// creditCmd represents the credit command
var creditCmd = &cobra.Command{
	Use:     "credit",
	Short:   "Show the account credit balance",
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runCredit,
}

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show credit and every order in one view",
	Long: `Fetch the credit balance and the order list concurrently and print
them together.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runAccount,
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the API token and connection",
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(creditCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(testCmd)
}

type creditOutput struct {
	Credit   float64 `json:"credit" yaml:"credit"`
	Currency string  `json:"currency" yaml:"currency"`
}

func runCredit(cmd *cobra.Command, _ []string) error {
	resp, err := client.CheckCredit(cmd.Context())
	if err != nil {
		return err
	}

	credit, err := resp.Credit()
	if err != nil {
		return fmt.Errorf("unexpected credit response: %w", err)
	}
	currency, _ := resp.Currency()

	out := creditOutput{Credit: credit, Currency: currency}
	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(out, func(w io.Writer) {
		fmt.Fprintf(w, "Credit: %s\n", formatMoney(credit, currency))
	})
}

func runAccount(cmd *cobra.Command, _ []string) error {
	overview, err := ops.AccountOverview(cmd.Context())
	if err != nil {
		return err
	}

	return newPrinter(cfg.Output.Format, cmd.OutOrStdout()).print(overview, func(w io.Writer) {
		fmt.Fprintf(w, "Credit: %s\n", formatMoney(overview.Credit, overview.Currency))
		fmt.Fprintf(w, "Orders: %d\n", len(overview.Orders))
		if len(overview.Orders) > 0 {
			fmt.Fprintln(w)
			printRecords(w, overview.Orders)
		}
	})
}

func runTest(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to ProxyMakers at %s...\n", client.BaseURL())

	resp, err := client.CheckCredit(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Token accepted!")
	fmt.Fprintf(out, "- HTTP status: %d\n", resp.StatusCode())
	if !resp.Decoded() {
		fmt.Fprintln(out, "- Warning: response body was not the expected JSON envelope")
		return nil
	}
	if credit, err := resp.Credit(); err == nil {
		currency, _ := resp.Currency()
		fmt.Fprintf(out, "- Credit: %s\n", formatMoney(credit, currency))
	}
	return nil
}
