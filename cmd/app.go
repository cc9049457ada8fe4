// Package cmd implements the CLI application converting brokerage CSV
// statements to and from OFX files.
package cmd

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	ofx "github.com/pvergne/ofxgen"
	"gopkg.in/yaml.v3"
)

// Register the subcommands. A main package calls Register() and then
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&genCmd{}, "statements")
	c.Register(&securitiesCmd{}, "statements")
	c.Register(&txCmd{}, "statements")
	c.Register(&fidelityCmd{}, "statements")

	c.Register(&dumpCmd{}, "inspection")
	c.Register(&topicCmd{}, "inspection")
}

// defaultConfigFile is looked up in the working directory unless
// OFXGEN_CONFIG points elsewhere.
const defaultConfigFile = "ofxgen.yaml"

// applyConfig fills flags the user did not set from the command's section
// of the YAML config file. A missing file is not an error.
func applyConfig(f *flag.FlagSet, section string) error {
	filename := os.Getenv("OFXGEN_CONFIG")
	if filename == "" {
		filename = defaultConfigFile
	}
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %q: %w", filename, err)
	}

	var cfg map[string]map[string]string
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config %q: %w", filename, err)
	}

	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for name, value := range cfg[section] {
		if set[name] || f.Lookup(name) == nil {
			continue
		}
		if err := f.Set(name, value); err != nil {
			return fmt.Errorf("config %q: flag %s: %w", filename, name, err)
		}
	}
	return nil
}

// resolveInput accepts a file or a directory; a directory resolves to its
// most recently modified file matching pattern.
func resolveInput(path, pattern string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	matches, err := filepath.Glob(filepath.Join(path, pattern))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s file in %s", pattern, path)
	}
	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).After(modTime(matches[j]))
	})
	return matches[0], nil
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// resolveOutput accepts a file or a directory; a directory resolves to the
// input's base name with ext substituted.
func resolveOutput(path, input, ext string) string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(path, stem+ext)
}

// readRows reads a headered CSV into compiler rows.
func readRows(r io.Reader) ([]ofx.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty statement: no header row")
	}
	headers := records[0]
	rows := make([]ofx.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(ofx.Row, len(headers))
		for i := 0; i < len(headers) && i < len(rec); i++ {
			row[headers[i]] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
