package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newthinker/stratix/internal/backtest"
	"github.com/newthinker/stratix/internal/marketdata"
	"github.com/newthinker/stratix/internal/strategy"
	"github.com/newthinker/stratix/internal/strategy/emacross"
)

var (
	backtestSymbol  string
	backtestFrom    string
	backtestTo      string
	backtestCapital float64
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run a curated strategy backtest from the command line",
	Long:  "Run a curated strategy against historical data and print performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().Float64Var(&backtestCapital, "capital", 10000, "Starting capital")

	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	entry, ok := strategy.CatalogEntry(args[0])
	if !ok {
		return fmt.Errorf("unknown strategy %q; see the strategies catalog for IDs", args[0])
	}

	fromDate, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}
	if toDate.Before(fromDate) {
		return fmt.Errorf("end date must be after start date")
	}

	provider := marketdata.NewGenerator()
	runner := backtest.New(provider)
	strat := emacross.New(entry.Params)

	result, err := runner.Run(cmd.Context(), strat, backtestSymbol, fromDate, toDate, backtestCapital)
	if err != nil {
		return fmt.Errorf("running backtest: %w", err)
	}

	fmt.Println("=== Stratix Backtest ===")
	fmt.Printf("Strategy: %s\n", entry.Name)
	fmt.Printf("Symbol:   %s\n", result.Symbol)
	fmt.Printf("Period:   %s to %s\n", fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"))
	fmt.Println()
	fmt.Printf("Trades:       %d (%d won, %d lost)\n",
		result.Stats.NumTrades, result.Stats.WinningTrades, result.Stats.LosingTrades)
	fmt.Printf("Win rate:     %.1f%%\n", result.Stats.WinRate)
	fmt.Printf("Total return: %.2f%%\n", result.Stats.TotalReturn)
	fmt.Printf("Max drawdown: %.2f%%\n", result.Stats.MaxDrawdown)
	fmt.Printf("Sharpe ratio: %.2f\n", result.Stats.SharpeRatio)

	return nil
}
