package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pvergne/ofxgen/sgml"
)

type dumpCmd struct {
	input  string
	asJSON bool
	path   string
	header bool
}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "repair and inspect a downloaded OFX file" }
func (*dumpCmd) Usage() string {
	return `ofxgen dump -i <statement.ofx> [-json | -path <jsonpath>] [-header]

  Repairs the SGML of an OFX download into well-formed XML and prints it
  pretty-printed, as JSON, or reduced to a JSONPath expression.
  See 'ofxgen topic repair'.
`
}

func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input OFX file, or a directory to scan.")
	f.BoolVar(&c.asJSON, "json", false, "Print the body as JSON instead of XML.")
	f.StringVar(&c.path, "path", "", "Print the value of a JSONPath expression.")
	f.BoolVar(&c.header, "header", false, "Also print the OFX header block.")
}

func (c *dumpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := applyConfig(f, "dump"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required.")
		return subcommands.ExitUsageError
	}

	input, err := resolveInput(c.input, "*.ofx")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving input: %v\n", err)
		return subcommands.ExitFailure
	}
	raw, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", input, err)
		return subcommands.ExitFailure
	}

	doc, err := sgml.Repair(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error repairing %q: %v\n", input, err)
		return subcommands.ExitFailure
	}

	if c.header {
		fmt.Println(doc.Header)
	}

	switch {
	case c.path != "":
		value, err := doc.Extract(c.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting %q: %v\n", c.path, err)
			return subcommands.ExitFailure
		}
		fmt.Println(value)
	case c.asJSON:
		out, err := doc.JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting to JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(out)
	default:
		out, err := doc.Pretty()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pretty-printing: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(out)
	}
	return subcommands.ExitSuccess
}
