package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	ofx "github.com/pvergne/ofxgen"
	"github.com/pvergne/ofxgen/date"
	"github.com/pvergne/ofxgen/renderer"
)

type securitiesCmd struct {
	input    string
	output   string
	layout   string
	currency string
}

func (*securitiesCmd) Name() string     { return "securities" }
func (*securitiesCmd) Synopsis() string { return "export the security registry of a statement" }
func (*securitiesCmd) Usage() string {
	return `ofxgen securities -i <statement.csv> [-o <out.csv>] [-d <layout>] [-c <currency>]

  Compiles a CSV statement and exports its security registry. Without -o
  the registry is shown as a table in the terminal.
`
}

func (c *securitiesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input CSV statement, or a directory to scan.")
	f.StringVar(&c.output, "o", "", "Output CSV file, or a directory. Defaults to the terminal.")
	f.StringVar(&c.layout, "d", date.DefaultLayout, "Date layout of the trade_date column.")
	f.StringVar(&c.currency, "c", "", "Statement currency. Defaults to USD.")
}

func (c *securitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := applyConfig(f, "securities"); err != nil {
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
	currency, err := ofx.NormalizeCurrency(c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		printMarkdown(renderer.Securities(ledger, currency))
		return subcommands.ExitSuccess
	}

	output := resolveOutput(c.output, c.input, ".csv")
	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	records := ledger.SecurityRecords(date.Date{}, currency)
	w := csv.NewWriter(file)
	w.Write([]string{"uniqueid", "uniqueidtype", "secname", "ticker", "unitprice", "dtasof", "cursym"})
	for _, rec := range records {
		w.Write([]string{rec.UniqueID, rec.UniqueIDType, rec.Name, rec.Ticker, rec.UnitPrice, rec.AsOf, rec.Currency})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d securities to %s\n", len(records), output)
	return subcommands.ExitSuccess
}

// compileInput resolves, reads and compiles a CSV statement.
func compileInput(input, layout string) (*ofx.Ledger, error) {
	path, err := resolveInput(input, "*.csv")
	if err != nil {
		return nil, fmt.Errorf("resolving input: %w", err)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()
	rows, err := readRows(file)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	ledger, err := ofx.Compile(rows, ofx.CompileOptions{DateLayout: layout})
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", path, err)
	}
	return ledger, nil
}
