package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	ofx "github.com/pvergne/ofxgen"
	"github.com/pvergne/ofxgen/date"
)

type genCmd struct {
	input    string
	output   string
	layout   string
	trnuid   string
	brokerID string
	acctID   string
	currency string
	version  int
	pretty   bool
}

func (*genCmd) Name() string     { return "gen" }
func (*genCmd) Synopsis() string { return "generate an OFX file from a CSV statement" }
func (*genCmd) Usage() string {
	return `ofxgen gen -i <statement.csv> [-o <out.ofx>] [-d <layout>] [-t <trnuid>] [-b <brokerid>] [-a <acctid>] [-c <currency>] [-v <version>] [-p]

  Compiles a CSV statement into an OFX investment statement file.
  A directory for -i resolves to its most recent *.csv file; a directory
  for -o derives the output name from the input. See 'ofxgen topic csv-schema'.
`
}

func (c *genCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input CSV statement, or a directory to scan.")
	f.StringVar(&c.output, "o", "", "Output OFX file, or a directory. Defaults to stdout.")
	f.StringVar(&c.layout, "d", date.DefaultLayout, "Date layout of the trade_date column.")
	f.StringVar(&c.trnuid, "t", "", "Statement TRNUID. Defaults to a random UUID.")
	f.StringVar(&c.brokerID, "b", "", "Broker id (FI identifier).")
	f.StringVar(&c.acctID, "a", "", "Account id at the FI.")
	f.StringVar(&c.currency, "c", "", "Statement currency. Defaults to USD.")
	f.IntVar(&c.version, "v", ofx.DefaultVersion, "OFX format version (102 for 1.x, 202 for 2.x).")
	f.BoolVar(&c.pretty, "p", false, "Pretty-print the XML body.")
}

func (c *genCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := applyConfig(f, "gen"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required.")
		return subcommands.ExitUsageError
	}

	input, err := resolveInput(c.input, "*.csv")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving input: %v\n", err)
		return subcommands.ExitFailure
	}

	file, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	rows, err := readRows(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", input, err)
		return subcommands.ExitFailure
	}

	ledger, err := ofx.Compile(rows, ofx.CompileOptions{DateLayout: c.layout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling %q: %v\n", input, err)
		return subcommands.ExitFailure
	}

	trnuid := c.trnuid
	if trnuid == "" {
		trnuid = uuid.NewString()
	}

	doc, err := ofx.Assemble(ledger, ofx.StatementConfig{
		TrnUID:   trnuid,
		BrokerID: c.brokerID,
		AcctID:   c.acctID,
		Currency: c.currency,
		Version:  c.version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error assembling statement: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := doc.Render(c.pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering statement: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		fmt.Print(out)
		return subcommands.ExitSuccess
	}
	output := resolveOutput(c.output, input, ".ofx")
	if err := os.WriteFile(output, []byte(out), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d transactions to %s\n", ledger.Len(), output)
	return subcommands.ExitSuccess
}
