package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pvergne/ofxgen/fidelity"
)

type fidelityCmd struct {
	input      string
	output     string
	mapper     string
	headerLine int
}

func (*fidelityCmd) Name() string     { return "fidelity" }
func (*fidelityCmd) Synopsis() string { return "normalize a raw Fidelity history export" }
func (*fidelityCmd) Usage() string {
	return `ofxgen fidelity -i <export.csv> -o <statement.csv> [-m <mapper.csv>] [-l <lineno>]

  Converts a raw Fidelity "Accounts History" export into the statement row
  schema the gen command consumes. See 'ofxgen topic fidelity'.
`
}

func (c *fidelityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Raw Fidelity export, or a directory to scan.")
	f.StringVar(&c.output, "o", "", "Output statement CSV, or a directory.")
	f.StringVar(&c.mapper, "m", "", "Security mapper CSV (symbol,type).")
	f.IntVar(&c.headerLine, "l", fidelity.DefaultHeaderLine, "Line number of the header row.")
}

func (c *fidelityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := applyConfig(f, "fidelity"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.input == "" || c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -i and -o are required.")
		return subcommands.ExitUsageError
	}

	var mapper *fidelity.Mapper
	if c.mapper != "" {
		mf, err := os.Open(c.mapper)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening mapper %q: %v\n", c.mapper, err)
			return subcommands.ExitFailure
		}
		mapper, err = fidelity.ReadMapper(mf)
		mf.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
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

	rows, skipped, err := fidelity.Read(file, fidelity.Options{HeaderLine: c.headerLine, Mapper: mapper})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "skipping line %d: no mapping for action %q\n", s.Line, s.Action)
	}

	output := resolveOutput(c.output, input, ".csv")
	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	w := csv.NewWriter(out)
	w.Write(fidelity.Columns)
	for _, row := range rows {
		rec := make([]string, len(fidelity.Columns))
		for i, col := range fidelity.Columns {
			rec[i] = row[col]
		}
		w.Write(rec)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d rows to %s (%d skipped)\n", len(rows), output, len(skipped))
	return subcommands.ExitSuccess
}
