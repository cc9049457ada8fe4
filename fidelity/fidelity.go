// Package fidelity normalizes raw Fidelity "Accounts History" CSV exports
// into the statement row schema the compiler consumes.
//
// A raw export carries a few banner lines before the real header row, and a
// disclaimer after the data separated by a blank line. Reading skips to the
// header, stops at the blank line, and maps the Action wording of each line
// to a transaction type. Actions with no mapping (transfers, journal
// entries) are reported as skipped, not converted.
package fidelity

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	ofx "github.com/pvergne/ofxgen"
)

// DefaultHeaderLine is the 1-based line the header row usually sits on in a
// Fidelity export.
const DefaultHeaderLine = 6

// Columns is the output column order of a normalized statement.
var Columns = []string{"txn_type", "trade_date", "symbol", "symbol_type", "units", "unitprice", "total", "memo"}

// Mapper classifies securities as stock or fund, driving whether a BOUGHT
// action becomes BUYSTOCK or BUYFUND. It is loaded from a two-column CSV
// (symbol, type); anything unlisted is a fund, which is what Fidelity's own
// money market sweep positions are.
type Mapper struct {
	mappings []mapping
}

type mapping struct {
	symbol string
	class  ofx.SecurityClass
}

// ReadMapper loads a mapper from a CSV with a symbol,type header.
func ReadMapper(r io.Reader) (*Mapper, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mapper: %w", err)
	}
	m := &Mapper{}
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		class, ok := ofx.ParseSecurityClass(rec[1])
		if !ok {
			return nil, fmt.Errorf("mapper line %d: unknown security type %q", i+1, rec[1])
		}
		m.mappings = append(m.mappings, mapping{symbol: rec[0], class: class})
	}
	return m, nil
}

// Class resolves a Security Description cell against the mapper entries.
func (m *Mapper) Class(securityType string) ofx.SecurityClass {
	if m != nil {
		for _, e := range m.mappings {
			if strings.Contains(e.symbol, securityType) {
				return e.class
			}
		}
	}
	return ofx.ClassFund
}

// Options tunes reading of a raw export. The zero value uses
// DefaultHeaderLine and an empty mapper.
type Options struct {
	HeaderLine int
	Mapper     *Mapper
}

// Skipped is one raw line whose Action has no transaction-type mapping.
type Skipped struct {
	Line   int // 1-based line number in the raw export
	Action string
}

// Read parses a raw export and returns compiler rows plus the lines that
// were skipped for lack of an action mapping.
func Read(r io.Reader, opts Options) ([]ofx.Row, []Skipped, error) {
	headerLine := opts.HeaderLine
	if headerLine == 0 {
		headerLine = DefaultHeaderLine
	}

	section, offset, err := dataSection(r, headerLine)
	if err != nil {
		return nil, nil, err
	}

	cr := csv.NewReader(strings.NewReader(section))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing export: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no header row found at line %d", headerLine)
	}

	headers := records[0]
	var rows []ofx.Row
	var skipped []Skipped
	for i, rec := range records[1:] {
		raw := make(map[string]string, len(headers))
		for j := 0; j < len(headers) && j < len(rec); j++ {
			raw[headers[j]] = rec[j]
		}

		class := opts.Mapper.Class(raw["Security Description"])
		kind, ok := action(raw["Action"], class)
		if !ok {
			skipped = append(skipped, Skipped{Line: offset + i + 1, Action: strings.TrimSpace(raw["Action"])})
			continue
		}
		rows = append(rows, ofx.Row{
			"txn_type":    kind,
			"trade_date":  raw["Run Date"],
			"symbol":      raw["Symbol"],
			"symbol_type": class.String(),
			"units":       raw["Quantity"],
			"unitprice":   raw["Price ($)"],
			"total":       raw["Amount ($)"],
			"memo":        raw["Action"],
		})
	}
	return rows, skipped, nil
}

// dataSection extracts the text from the header line to the blank line that
// separates data from the trailing disclaimer. It returns the section and
// the 1-based line number of the header row.
func dataSection(r io.Reader, headerLine int) (string, int, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if line < headerLine {
			continue
		}
		text := scanner.Text()
		if line > headerLine && strings.TrimSpace(text) == "" {
			break
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", 0, fmt.Errorf("reading export: %w", err)
	}
	return b.String(), headerLine, nil
}

// action maps Fidelity's Action wording to a transaction type. BOUGHT splits
// on the security class; dividend and capital gain distributions are income.
func action(value string, class ofx.SecurityClass) (string, bool) {
	v := strings.ToUpper(value)
	switch {
	case strings.Contains(v, "BOUGHT"):
		if class == ofx.ClassStock {
			return "BUYSTOCK", true
		}
		return "BUYFUND", true
	case strings.Contains(v, "REINVESTMENT"):
		return "REINVEST", true
	case strings.Contains(v, "DIVIDEND"),
		strings.Contains(v, "LONG-TERM CAP GAIN"),
		strings.Contains(v, "SHORT-TERM CAP GAIN"):
		return "INCOME", true
	}
	return "", false
}
