package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/paycycle/internal/export"
	"github.com/MrJamesThe3rd/paycycle/internal/importer"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

func (c *cli) addCmd() *cobra.Command {
	var amount, description, date string

	cmd := &cobra.Command{
		Use:   "add <userId>",
		Short: "Add a transaction for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			params := transaction.AddParams{Amount: d, Description: description}

			if date != "" {
				if params.Date, err = transaction.ParseDate(date); err != nil {
					return err
				}
			}

			tx, err := c.app.Store.Add(args[0], params)
			if err != nil {
				return err
			}

			if err := c.app.Store.Persist(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tx.ID)

			return err
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, e.g. -12.50")
	cmd.Flags().StringVar(&description, "description", "", "free text description")
	cmd.Flags().StringVar(&date, "date", "", "YYYY-MM-DD or RFC 3339 timestamp (default now)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var bank, path string

	cmd := &cobra.Command{
		Use:   "import <userId>",
		Short: "Import a bank CSV statement for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := importer.ParseBank(bank)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			txs, err := importer.NewService(c.app.Store).Import(args[0], b, f)
			if err != nil {
				return err
			}

			if err := c.app.Store.Persist(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d transactions\n", len(txs))

			return err
		},
	}

	cmd.Flags().StringVar(&bank, "bank", string(importer.BankCGD), "statement format")
	cmd.Flags().StringVar(&path, "csv", "", "path to the CSV statement")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <userId>",
		Short: "Write a user's transactions and report to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = "report_" + args[0] + ".xlsx"
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}

			if err := export.NewService(c.app.Store).WriteXLSX(f, args[0]); err != nil {
				f.Close()
				return err
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default report_<userId>.xlsx)")

	return cmd
}

var errNotConfirmed = errors.New("refusing to clear without --yes")

func (c *cli) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every user record from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}

			if err := c.app.Store.Clear(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "store cleared")

			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
