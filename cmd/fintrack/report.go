package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
)

func newReportCmd(c *cli) *cobra.Command {
	var userID, start, end, symbol string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the trading report of a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := request.ParseReportQuery(start, end, symbol)
			if err != nil {
				return err
			}

			db, err := c.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			// Reports never price open positions, so no providers are wired.
			svc := service.NewPortfolioService(repository.NewTransactionRepository(db), nil, c.log)
			report, err := svc.GetReport(cmd.Context(), userID, q)
			if err != nil {
				return err
			}

			return printReport(cmd.OutOrStdout(), report, c.cfg.Report.Currency)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user to report on")
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&symbol, "symbol", "", "restrict to one symbol")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func printReport(out io.Writer, r accounting.Report, currency string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Period\t%s .. %s\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	if r.Symbol != "" {
		fmt.Fprintf(tw, "Symbol\t%s\n", r.Symbol)
	}
	fmt.Fprintf(tw, "Total buy\t%s\n", formatMoney(r.TotalBuy, currency))
	fmt.Fprintf(tw, "Total sell\t%s\n", formatMoney(r.TotalSell, currency))
	fmt.Fprintf(tw, "Net flow\t%s\n", formatMoney(r.NetFlow, currency))
	fmt.Fprintf(tw, "Realized P/L\t%s\n", formatMoney(r.RealizedPL, currency))
	fmt.Fprintf(tw, "ROI\t%s%%\n", r.ROI.StringFixed(2))
	fmt.Fprintf(tw, "Sells\t%d (%d wins, %d losses)\n", r.SellStats.Count, r.SellStats.Wins, r.SellStats.Losses)

	if len(r.Details) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Date\tSymbol\tQuantity\tCost\tPrice\tProfit")
		for _, d := range r.Details {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				d.Date.Format("2006-01-02"),
				d.Symbol,
				d.Quantity.String(),
				formatMoney(d.CostPrice, currency),
				formatMoney(d.Price, currency),
				formatMoney(d.Profit, currency),
			)
		}
	}

	return tw.Flush()
}

// formatMoney renders amount in currency's notation, rounded to the
// currency's minor unit. Unknown codes fall back to two decimals.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}

	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
