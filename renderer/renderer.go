// Package renderer turns compiled ledgers and security registries into
// markdown for terminal display.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	ofx "github.com/pvergne/ofxgen"
)

// Transactions renders the ledger as a markdown table, one row per
// transaction in statement order.
func Transactions(l *ofx.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	doc.PlainText(fmt.Sprintf("%d transactions from %s to %s.", l.Len(), l.Start(), l.End()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Type", "Symbol", "Units", "Unit Price", "Total", "Memo"},
	}
	for _, tx := range l.Transactions() {
		table.Rows = append(table.Rows, []string{
			tx.TradeDate.String(),
			tx.Kind.String(),
			tx.Symbol,
			tx.Units.String(),
			tx.UnitPrice.String(),
			tx.Total.String(),
			tx.Memo,
		})
	}
	doc.Table(table)

	return doc.String()
}

// Securities renders the security registry as a markdown table.
func Securities(l *ofx.Ledger, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Securities")
	doc.PlainText(fmt.Sprintf("Prices in %s.", currency))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Type", "Class", "Last Price"},
	}
	for s := range l.Securities() {
		table.Rows = append(table.Rows, []string{
			s.Symbol,
			s.IDType,
			fmt.Sprint(s.Class),
			s.LastPrice.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
