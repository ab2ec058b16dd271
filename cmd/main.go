package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-dashboard",
	Short: "A CLI for managing the stock dashboard services",
	Long:  `Stock Dashboard serves CSV-snapshot market data, derived statistics, and trade-prediction notes over an HTTP API.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
