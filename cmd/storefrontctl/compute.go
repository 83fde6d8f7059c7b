package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// lineInput is one line of the totals input file
type lineInput struct {
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       int64           `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
}

func newTotalsCmd() *cobra.Command {
	var adjustment int64
	cmd := &cobra.Command{
		Use:   "totals <file|->",
		Short: "Compute document totals from a JSON array of line items",
		Example: `  echo '[{"description":"Beans","quantity":"2","unit_price":1250,"tax_rate_percent":"10"}]' | storefrontctl totals -
  storefrontctl totals lines.json --adjustment 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var lines []lineInput
			if err := json.NewDecoder(r).Decode(&lines); err != nil {
				return fmt.Errorf("invalid line items: %w", err)
			}
			items := make([]finance.LineItem, 0, len(lines))
			for i, line := range lines {
				item, err := finance.NewLineItem(finance.LineItemInput{
					Description:     line.Description,
					Quantity:        line.Quantity,
					UnitPrice:       line.UnitPrice,
					DiscountPercent: line.DiscountPercent,
					TaxRatePercent:  line.TaxRatePercent,
				})
				if err != nil {
					return fmt.Errorf("line %d: %w", i+1, err)
				}
				items = append(items, *item)
			}
			totals, err := finance.ComputeDocumentTotalsChecked(items, adjustment)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), totals)
		},
	}
	cmd.Flags().Int64Var(&adjustment, "adjustment", 0, "Flat adjustment in minor units, e.g. transport cost")
	return cmd
}

func newAccountCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account-code <category> <number>",
		Short: "Print the display code of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account number %q", args[1])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), finance.GenerateCode(args[0], number))
			return err
		},
	}
}

func newConvertCmd() *cobra.Command {
	var currency, lang string
	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Show how an amount string is read into minor units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("invalid language %q", lang)
			}
			code := valueobject.Currency(currency)
			if !code.IsValid() {
				return fmt.Errorf("invalid currency %q", currency)
			}
			resp := financeapp.NewCalculatorService(nil).Convert(args[0], code, tag)
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&currency, "currency", string(valueobject.DefaultCurrency), "ISO currency code")
	cmd.Flags().StringVar(&lang, "lang", "en-US", "BCP 47 language tag for the display string")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
