package ofx

import (
	"fmt"

	"github.com/pvergne/ofxgen/date"
)

// Transaction is one normalized investment event, ready to be emitted as an
// OFX aggregate. Signs follow the OFX convention: buys hold positive units
// and a negative total, sells the opposite; income kinds keep the signs the
// statement reported.
type Transaction struct {
	Kind      Kind
	TradeDate date.Date
	Symbol    string
	IDType    string // UNIQUEIDTYPE for the SECID aggregate
	Units     Quantity
	UnitPrice Quantity
	Total     Quantity
	FitID     string
	Memo      string
	SubAcct   string // SUBACCTSEC and SUBACCTFUND value
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s units=%s total=%s", t.TradeDate, t.Kind, t.Symbol, t.Units, t.Total)
}
