package ofx

import (
	"errors"
	"strings"
	"testing"

	"github.com/pvergne/ofxgen/date"
)

func row(kind, trade, symbol, units, price, total string) Row {
	return Row{
		"txn_type":   kind,
		"trade_date": trade,
		"symbol":     symbol,
		"units":      units,
		"unitprice":  price,
		"total":      total,
	}
}

func TestCompileSingleBuy(t *testing.T) {
	rows := []Row{row("BUYSTOCK", "2022/08/25", "TSLA", "100", "50.00", "-5000.00")}
	ledger, err := Compile(rows, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ledger.Len())
	}
	var tx Transaction
	for _, v := range ledger.Transactions() {
		tx = v
	}
	if got := tx.Units.String(); got != "100" {
		t.Errorf("units = %q, want 100", got)
	}
	if got := tx.Total.String(); got != "-5000" {
		t.Errorf("total = %q, want -5000", got)
	}
	if tx.IDType != "TICKER" {
		t.Errorf("id type = %q, want TICKER", tx.IDType)
	}
	want := date.New(2022, 8, 25)
	if ledger.Start() != want || ledger.End() != want {
		t.Errorf("range = %s..%s, want %s..%s", ledger.Start(), ledger.End(), want, want)
	}
	sec, ok := ledger.Security("TSLA")
	if !ok {
		t.Fatal("TSLA missing from registry")
	}
	if sec.Class != ClassStock {
		t.Errorf("class = %s, want STOCK", sec.Class)
	}
}

func TestCompileSignNormalization(t *testing.T) {
	tests := []struct {
		kind, units, total   string
		wantUnits, wantTotal string
	}{
		{"BUYSTOCK", "100", "5000", "100", "-5000"},
		{"BUYSTOCK", "-100", "-5000", "100", "-5000"},
		{"BUYMF", "-10.5", "120", "10.5", "-120"},
		{"BUYFUND", "10.5", "-120", "10.5", "-120"},
		{"SELLSTOCK", "100", "-5000", "-100", "5000"},
		{"SELLMF", "-3", "42.10", "-3", "42.1"},
		{"SELLFUND", "3", "42.10", "-3", "42.1"},
		{"REINVEST", "-11.172", "-528.42", "-11.172", "-528.42"},
		{"INCOME", "", "-12.50", "", "-12.5"},
	}
	for _, tc := range tests {
		t.Run(tc.kind+"/"+tc.units, func(t *testing.T) {
			r := row(tc.kind, "2023/01/03", "SYM", tc.units, "47.30", tc.total)
			ledger, err := Compile([]Row{r}, CompileOptions{})
			if err != nil {
				t.Fatal(err)
			}
			for _, tx := range ledger.Transactions() {
				if got := tx.Units.String(); got != tc.wantUnits {
					t.Errorf("units = %q, want %q", got, tc.wantUnits)
				}
				if got := tx.Total.String(); got != tc.wantTotal {
					t.Errorf("total = %q, want %q", got, tc.wantTotal)
				}
			}
		})
	}
}

func TestCompileFundSpellings(t *testing.T) {
	for _, spelling := range []string{"BUYMF", "BUYFUND", "buyfund"} {
		if kind, ok := ParseKind(spelling); !ok || kind != BuyFund {
			t.Errorf("ParseKind(%q) = %v, %v", spelling, kind, ok)
		}
	}
}

func TestCompileIdempotent(t *testing.T) {
	rows := []Row{
		row("BUYSTOCK", "2023/01/03", "TSLA", "100", "50.00", "-5000.00"),
		row("SELLSTOCK", "2023/01/10", "TSLA", "40", "55.00", "2200.00"),
		row("INCOME", "2023/01/20", "FDRXX", "", "", "12.50"),
	}
	first, err := Compile(rows, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compile(rows, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for i, tx := range first.transactions {
		if other := second.transactions[i]; tx.FitID != other.FitID {
			t.Errorf("run 1 id %q != run 2 id %q", tx.FitID, other.FitID)
		}
	}
}

func TestCompileDuplicateRows(t *testing.T) {
	r := row("BUYSTOCK", "2023/01/03", "TSLA", "100", "50.00", "-5000.00")
	ledger, err := Compile([]Row{r, r}, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	first, second := ledger.transactions[0].FitID, ledger.transactions[1].FitID
	if first == second {
		t.Fatalf("duplicate rows share id %q", first)
	}
	if want := first + "_2"; second != want {
		t.Errorf("second id = %q, want %q", second, want)
	}
}

func TestCompileDateRange(t *testing.T) {
	rows := []Row{
		row("BUYSTOCK", "2023/01/10", "AAA", "1", "1", "-1"),
		row("BUYSTOCK", "2023/01/03", "BBB", "1", "1", "-1"),
		row("BUYSTOCK", "2023/01/20", "CCC", "1", "1", "-1"),
	}
	ledger, err := Compile(rows, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if want := date.New(2023, 1, 3); ledger.Start() != want {
		t.Errorf("start = %s, want %s", ledger.Start(), want)
	}
	if want := date.New(2023, 1, 20); ledger.End() != want {
		t.Errorf("end = %s, want %s", ledger.End(), want)
	}
	for _, tx := range ledger.Transactions() {
		if tx.TradeDate.Before(ledger.Start()) || tx.TradeDate.After(ledger.End()) {
			t.Errorf("%s outside %s..%s", tx.TradeDate, ledger.Start(), ledger.End())
		}
	}
}

func TestCompileRegistry(t *testing.T) {
	reinvest := row("REINVEST", "2023/01/05", "FDRXX", "11.172", "47.30", "-528.42")
	reinvest["symbol_type"] = "FUND"
	income := row("INCOME", "2023/01/06", "TSLA", "", "", "12.50")
	income["symbol_type"] = "FUND" // ignored: TSLA is already classified
	rows := []Row{
		row("BUYSTOCK", "2023/01/03", "TSLA", "100", "50.00", "-5000.00"),
		row("SELLSTOCK", "2023/01/04", "TSLA", "40", "55.00", "2200.00"),
		reinvest,
		income,
	}
	ledger, err := Compile(rows, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}

	var symbols []string
	for s := range ledger.Securities() {
		symbols = append(symbols, s.Symbol)
	}
	if got := strings.Join(symbols, ","); got != "TSLA,FDRXX" {
		t.Fatalf("registry order = %s, want TSLA,FDRXX", got)
	}

	tsla, _ := ledger.Security("TSLA")
	if tsla.Class != ClassStock {
		t.Errorf("TSLA class = %s, want STOCK (first sighting wins)", tsla.Class)
	}
	if got := tsla.LastPrice.String(); got != "55" {
		t.Errorf("TSLA last price = %q, want 55", got)
	}
	fdrxx, _ := ledger.Security("FDRXX")
	if fdrxx.Class != ClassFund {
		t.Errorf("FDRXX class = %s, want FUND", fdrxx.Class)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want string
	}{
		{"unknown kind", row("TRANSFER", "2023/01/03", "TSLA", "1", "1", "-1"), `unknown transaction type "TRANSFER"`},
		{"bad date", row("BUYSTOCK", "03-01-2023", "TSLA", "1", "1", "-1"), `field "trade_date"`},
		{"missing symbol", row("BUYSTOCK", "2023/01/03", "", "1", "1", "-1"), `field "symbol"`},
		{"missing units", row("BUYSTOCK", "2023/01/03", "TSLA", "", "1", "-1"), `field "units"`},
		{"missing price", row("SELLMF", "2023/01/03", "FDRXX", "1", "", "1"), `field "unitprice"`},
		{"missing total", row("INCOME", "2023/01/03", "TSLA", "", "", ""), `field "total"`},
		{"bad decimal", row("BUYSTOCK", "2023/01/03", "TSLA", "ten", "1", "-1"), `field "units"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile([]Row{tc.row}, CompileOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want it to mention %s", err, tc.want)
			}
			if !strings.Contains(err.Error(), "row 1") {
				t.Errorf("error = %q, want it to name row 1", err)
			}
		})
	}
}

func TestCompileMissingFieldIs(t *testing.T) {
	_, err := Compile([]Row{row("INCOME", "2023/01/03", "TSLA", "", "", "")}, CompileOptions{})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("errors.Is(%v, ErrMissingField) = false", err)
	}
	var ferr *FieldError
	if !errors.As(err, &ferr) || ferr.Field != "total" {
		t.Fatalf("errors.As FieldError failed: %v", err)
	}
}

func TestCompileTrimsWhitespace(t *testing.T) {
	r := row(" BUYSTOCK ", " 2023/01/03 ", " TSLA ", " 100 ", " 50 ", " -5000 ")
	ledger, err := Compile([]Row{r}, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, tx := range ledger.Transactions() {
		if tx.Symbol != "TSLA" {
			t.Errorf("symbol = %q, want TSLA", tx.Symbol)
		}
	}
}

func TestSecurityRecords(t *testing.T) {
	rows := []Row{
		row("BUYSTOCK", "2023/01/03", "TSLA", "100", "50.00", "-5000.00"),
		row("BUYMF", "2023/01/05", "FDRXX", "10", "1.00", "-10.00"),
	}
	ledger, err := Compile(rows, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	records := ledger.SecurityRecords(date.Date{}, "USD")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	first := records[0]
	if first.UniqueID != "TSLA" || first.UniqueIDType != "TICKER" || first.Ticker != "TSLA" {
		t.Errorf("unexpected record %+v", first)
	}
	if first.AsOf != "20230105000000" {
		t.Errorf("asof = %q, want ledger end date", first.AsOf)
	}
	if first.UnitPrice != "50" {
		t.Errorf("unitprice = %q, want 50", first.UnitPrice)
	}
	if first.Currency != "USD" {
		t.Errorf("currency = %q, want USD", first.Currency)
	}
}
