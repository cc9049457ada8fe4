package ofx

import (
	"fmt"
	"strings"

	"github.com/pvergne/ofxgen/date"
)

// SecurityClass selects which SECLIST aggregate describes a security.
type SecurityClass int

const (
	ClassUnknown SecurityClass = iota
	ClassStock
	ClassFund
)

func (c SecurityClass) String() string {
	switch c {
	case ClassStock:
		return "STOCK"
	case ClassFund:
		return "FUND"
	default:
		return "UNKNOWN"
	}
}

// ParseSecurityClass resolves a symbol_type column value.
func ParseSecurityClass(s string) (SecurityClass, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STOCK":
		return ClassStock, true
	case "FUND", "MF", "MUTUALFUND":
		return ClassFund, true
	default:
		return ClassUnknown, false
	}
}

// SecurityInfo is one entry of the ledger's security registry.
// Classification is first-write-wins: the first transaction that mentions a
// symbol fixes its class, later rows only refresh the last observed price.
type SecurityInfo struct {
	Symbol    string
	IDType    string // UNIQUEIDTYPE: TICKER or CUSIP
	Name      string
	Class     SecurityClass
	LastPrice Quantity // most recent unit price seen for the symbol, if any
}

// SecurityRecord is the flat, spreadsheet-friendly projection of a registry
// entry used by the securities export.
type SecurityRecord struct {
	UniqueID     string `json:"uniqueid"`
	UniqueIDType string `json:"uniqueidtype"`
	Name         string `json:"secname"`
	Ticker       string `json:"ticker"`
	UnitPrice    string `json:"unitprice"`
	AsOf         string `json:"dtasof"`
	Currency     string `json:"cursym"`
}

// Record flattens the entry for export, stamping it with the statement's
// as-of date and currency.
func (s SecurityInfo) Record(asof date.Date, currency string) SecurityRecord {
	return SecurityRecord{
		UniqueID:     s.Symbol,
		UniqueIDType: s.IDType,
		Name:         s.Name,
		Ticker:       s.Symbol,
		UnitPrice:    s.LastPrice.String(),
		AsOf:         asof.OFX(),
		Currency:     currency,
	}
}

func (s SecurityInfo) String() string {
	return fmt.Sprintf("%s (%s %s)", s.Symbol, s.Class, s.IDType)
}
