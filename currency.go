package ofx

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is the CURDEF used when a statement does not name one.
const DefaultCurrency = "USD"

// NormalizeCurrency upper-cases a currency code and checks it against the
// ISO 4217 table. An empty code resolves to DefaultCurrency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if money.GetCurrency(code) == nil {
		return "", fmt.Errorf("unknown currency code %q", code)
	}
	return code, nil
}
