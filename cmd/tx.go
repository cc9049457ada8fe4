package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pvergne/ofxgen/date"
	"github.com/pvergne/ofxgen/renderer"
)

type txCmd struct {
	input  string
	layout string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of a statement" }
func (*txCmd) Usage() string {
	return `ofxgen tx -i <statement.csv> [-d <layout>]

  Compiles a CSV statement and lists its transactions, normalized, as a
  table in the terminal.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input CSV statement, or a directory to scan.")
	f.StringVar(&c.layout, "d", date.DefaultLayout, "Date layout of the trade_date column.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := applyConfig(f, "tx"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required.")
		return subcommands.ExitUsageError
	}

	ledger, err := compileInput(c.input, c.layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Transactions(ledger))
	return subcommands.ExitSuccess
}
