package ofx

import (
	"iter"

	"github.com/pvergne/ofxgen/date"
)

// Ledger is the compiled form of a statement: transactions in source order,
// the security registry built while compiling them, and the covered date
// range. A Ledger is immutable once Compile returns it.
type Ledger struct {
	transactions []Transaction
	securities   map[string]*SecurityInfo
	symbols      []string // registry iteration order, first seen first
	fitids       map[string]struct{}
	start, end   date.Date
}

func newLedger() *Ledger {
	return &Ledger{
		securities: make(map[string]*SecurityInfo),
		fitids:     make(map[string]struct{}),
	}
}

func (l *Ledger) append(t Transaction) {
	l.transactions = append(l.transactions, t)
	l.fitids[t.FitID] = struct{}{}
	if l.start.IsZero() {
		l.start, l.end = t.TradeDate, t.TradeDate
		return
	}
	l.start = date.Min(l.start, t.TradeDate)
	l.end = date.Max(l.end, t.TradeDate)
}

// register adds a symbol to the security registry, or refreshes the last
// observed price of an already-registered one. The classification written by
// the first sighting wins.
func (l *Ledger) register(symbol, idtype string, class SecurityClass, price Quantity) {
	if s, ok := l.securities[symbol]; ok {
		if price.Present() {
			s.LastPrice = price
		}
		return
	}
	l.securities[symbol] = &SecurityInfo{
		Symbol:    symbol,
		IDType:    idtype,
		Name:      symbol,
		Class:     class,
		LastPrice: price,
	}
	l.symbols = append(l.symbols, symbol)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Start returns the earliest trade date; zero for an empty ledger.
func (l *Ledger) Start() date.Date { return l.start }

// End returns the latest trade date; zero for an empty ledger.
func (l *Ledger) End() date.Date { return l.end }

// Transactions iterates the transactions in statement order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, t := range l.transactions {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Securities iterates the registry in first-seen order.
func (l *Ledger) Securities() iter.Seq[SecurityInfo] {
	return func(yield func(SecurityInfo) bool) {
		for _, sym := range l.symbols {
			if !yield(*l.securities[sym]) {
				return
			}
		}
	}
}

// Security looks a symbol up in the registry.
func (l *Ledger) Security(symbol string) (SecurityInfo, bool) {
	s, ok := l.securities[symbol]
	if !ok {
		return SecurityInfo{}, false
	}
	return *s, true
}

// SecurityRecords flattens the registry for export, stamped with the given
// as-of date and currency. A zero asof falls back to the ledger's end date.
func (l *Ledger) SecurityRecords(asof date.Date, currency string) []SecurityRecord {
	if asof.IsZero() {
		asof = l.end
	}
	records := make([]SecurityRecord, 0, len(l.symbols))
	for s := range l.Securities() {
		records = append(records, s.Record(asof, currency))
	}
	return records
}
