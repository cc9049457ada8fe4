package ofx

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pvergne/ofxgen/date"
)

// Row is one statement line keyed by column name. Required columns are
// txn_type, trade_date, symbol and total; units and unitprice are required
// by the kinds that carry them; symbol_type and memo are optional. Unknown
// columns are ignored by the compiler but participate in id hashing.
type Row map[string]string

// trimmed returns a copy of the row with surrounding whitespace stripped
// from every value.
func (r Row) trimmed() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// Compiler defaults, overridable through CompileOptions.
const (
	DefaultIDType     = "TICKER"
	DefaultSubAccount = "CASH"
)

// CompileOptions tunes how rows are interpreted. The zero value is usable:
// every field falls back to its package default.
type CompileOptions struct {
	DateLayout   string        // time layout for trade_date, default date.DefaultLayout
	IDType       string        // UNIQUEIDTYPE stamped on every security, default TICKER
	SubAccount   string        // sub-account bucket, default CASH
	DefaultClass SecurityClass // registry class when symbol_type is absent, default ClassStock
}

func (o CompileOptions) withDefaults() CompileOptions {
	if o.DateLayout == "" {
		o.DateLayout = date.DefaultLayout
	}
	if o.IDType == "" {
		o.IDType = DefaultIDType
	}
	if o.SubAccount == "" {
		o.SubAccount = DefaultSubAccount
	}
	if o.DefaultClass == ClassUnknown {
		o.DefaultClass = ClassStock
	}
	return o
}

// Compile turns statement rows into a Ledger. It is all-or-nothing: the
// first bad row aborts the whole compilation with an error naming the row.
// Identical input compiles to an identical ledger, transaction ids included,
// so regenerating a statement is idempotent.
func Compile(rows []Row, opts CompileOptions) (*Ledger, error) {
	opts = opts.withDefaults()
	ledger := newLedger()
	for i, raw := range rows {
		n := i + 1
		row := raw.trimmed()

		kind, ok := ParseKind(row["txn_type"])
		if !ok {
			return nil, &UnknownKindError{Row: n, Kind: row["txn_type"]}
		}
		spec := kindSpecs[kind]

		trade, err := date.ParseLayout(opts.DateLayout, row["trade_date"])
		if err != nil {
			return nil, &FieldError{Row: n, Field: "trade_date", Err: err}
		}

		symbol := row["symbol"]
		if symbol == "" {
			return nil, &FieldError{Row: n, Field: "symbol", Err: ErrMissingField}
		}

		units, err := parseField(row, "units", n, spec.needsUnits)
		if err != nil {
			return nil, err
		}
		price, err := parseField(row, "unitprice", n, spec.needsPrice)
		if err != nil {
			return nil, err
		}
		total, err := parseField(row, "total", n, true)
		if err != nil {
			return nil, err
		}

		class := spec.class
		if class == ClassUnknown {
			if c, ok := ParseSecurityClass(row["symbol_type"]); ok {
				class = c
			} else {
				class = opts.DefaultClass
			}
		}

		ledger.register(symbol, opts.IDType, class, price)
		ledger.append(Transaction{
			Kind:      kind,
			TradeDate: trade,
			Symbol:    symbol,
			IDType:    opts.IDType,
			Units:     spec.unitsSign.apply(units),
			UnitPrice: price,
			Total:     spec.totalSign.apply(total),
			FitID:     ledger.fitid(row, n),
			Memo:      row["memo"],
			SubAcct:   opts.SubAccount,
		})
	}
	return ledger, nil
}

func parseField(row Row, field string, n int, required bool) (Quantity, error) {
	q, err := ParseQuantity(row[field])
	if err != nil {
		return Quantity{}, &FieldError{Row: n, Field: field, Err: err}
	}
	if required && !q.Present() {
		return Quantity{}, &FieldError{Row: n, Field: field, Err: ErrMissingField}
	}
	return q, nil
}

// fitid derives the transaction id from the full row content: the md5 of
// its canonical key-sorted JSON encoding. A fully duplicate row collides on
// purpose and is disambiguated by appending its 1-based ordinal, which keeps
// ids stable across runs on unchanged input.
func (l *Ledger) fitid(row Row, ordinal int) string {
	enc, err := json.Marshal(map[string]string(row))
	if err != nil {
		panic(fmt.Sprintf("encoding row %d: %v", ordinal, err))
	}
	sum := md5.Sum(enc)
	id := hex.EncodeToString(sum[:])
	if _, dup := l.fitids[id]; !dup {
		return id
	}
	id += "_" + strconv.Itoa(ordinal)
	if _, dup := l.fitids[id]; dup {
		// ordinals are unique within a run, so a second collision means
		// the id bookkeeping itself is broken
		panic(fmt.Sprintf("row %d: transaction id %s already assigned", ordinal, id))
	}
	return id
}
