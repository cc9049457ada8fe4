package ofx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// DefaultVersion is the OFX format version emitted when none is requested.
const DefaultVersion = 202

const stampLayout = "20060102150405"

// StatementConfig identifies the statement being assembled. Zero fields fall
// back to defaults; a zero Now falls back to the wall clock, so tests pass a
// fixed one.
type StatementConfig struct {
	TrnUID   string    // client-assigned statement transaction id
	BrokerID string
	AcctID   string
	Currency string    // CURDEF, default USD
	Version  int       // OFX format version, default 202
	Now      time.Time // DTSERVER and DTASOF stamp
}

// Document is an assembled OFX response, ready to render. It is built once
// and never mutated.
type Document struct {
	version int
	root    ofxRoot
}

// Assemble builds the OFX response tree for a compiled ledger: signon
// response, investment statement response carrying the transaction list,
// and the security list derived from the registry.
func Assemble(ledger *Ledger, cfg StatementConfig) (*Document, error) {
	currency, err := NormalizeCurrency(cfg.Currency)
	if err != nil {
		return nil, err
	}
	version := cfg.Version
	if version == 0 {
		version = DefaultVersion
	}
	if version < 100 || version > 299 {
		return nil, fmt.Errorf("unsupported OFX version %d", version)
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	stamp := now.Format(stampLayout)

	list := ofxInvTranList{
		DtStart: ledger.Start().OFX(),
		DtEnd:   ledger.End().OFX(),
	}
	for _, t := range ledger.Transactions() {
		list.Transactions = append(list.Transactions, aggregate(t))
	}

	var secs ofxSecList
	for s := range ledger.Securities() {
		info := ofxSecInfo{
			SecID:   ofxSecID{UniqueID: s.Symbol, UniqueIDType: s.IDType},
			SecName: s.Name,
			Ticker:  s.Symbol,
		}
		if s.Class == ClassFund {
			secs.Securities = append(secs.Securities, ofxMFInfo{SecInfo: info})
		} else {
			secs.Securities = append(secs.Securities, ofxStockInfo{SecInfo: info})
		}
	}

	ok := ofxStatus{Code: 0, Severity: "INFO"}
	return &Document{
		version: version,
		root: ofxRoot{
			Signon: ofxSignon{Sonrs: ofxSonrs{
				Status:   ok,
				DtServer: stamp,
				Language: "ENG",
			}},
			InvMsgs: ofxInvMsgs{Trn: ofxInvStmtTrnRs{
				TrnUID: cfg.TrnUID,
				Status: ok,
				InvStmt: ofxInvStmtRs{
					DtAsOf:      stamp,
					CurDef:      currency,
					InvAcctFrom: ofxInvAcctFrom{BrokerID: cfg.BrokerID, AcctID: cfg.AcctID},
					InvTranList: list,
				},
			}},
			SecMsgs: ofxSecListMsgs{SecList: secs},
		},
	}, nil
}

// aggregate maps one transaction to its OFX aggregate struct.
func aggregate(t Transaction) any {
	tran := ofxInvTran{FitID: t.FitID, DtTrade: t.TradeDate.OFX(), Memo: t.Memo}
	sec := ofxSecID{UniqueID: t.Symbol, UniqueIDType: t.IDType}
	trade := ofxInvBuy{
		InvTran:     tran,
		SecID:       sec,
		Units:       t.Units.String(),
		UnitPrice:   t.UnitPrice.String(),
		Total:       t.Total.String(),
		SubAcctSec:  t.SubAcct,
		SubAcctFund: t.SubAcct,
	}
	switch t.Kind {
	case BuyStock:
		return ofxBuyStock{InvBuy: trade, BuyType: "BUY"}
	case BuyFund:
		return ofxBuyMF{InvBuy: trade, BuyType: "BUY"}
	case SellStock:
		return ofxSellStock{InvSell: trade, SellType: "SELL"}
	case SellFund:
		return ofxSellMF{InvSell: trade, SellType: "SELL"}
	case Reinvest:
		return ofxReinvest{
			InvTran:    tran,
			SecID:      sec,
			IncomeType: "DIV",
			Total:      t.Total.String(),
			SubAcctSec: t.SubAcct,
			Units:      t.Units.String(),
			UnitPrice:  t.UnitPrice.String(),
		}
	default: // Income
		return ofxIncome{
			InvTran:     tran,
			SecID:       sec,
			IncomeType:  "DIV",
			Total:       t.Total.String(),
			SubAcctSec:  t.SubAcct,
			SubAcctFund: t.SubAcct,
		}
	}
}

// Version returns the OFX format version the document renders as.
func (d *Document) Version() int { return d.version }

// Render emits the version header block followed by the XML body. With
// pretty set, the body is re-parsed and re-indented; content and order are
// unchanged.
func (d *Document) Render(pretty bool) (string, error) {
	raw, err := xml.Marshal(d.root)
	if err != nil {
		return "", fmt.Errorf("rendering OFX body: %w", err)
	}
	body := string(raw)
	if pretty {
		tree := etree.NewDocument()
		if err := tree.ReadFromString(body); err != nil {
			return "", fmt.Errorf("rendering OFX body: %w", err)
		}
		tree.Indent(2)
		if body, err = tree.WriteToString(); err != nil {
			return "", fmt.Errorf("rendering OFX body: %w", err)
		}
	}
	return header(d.version) + body, nil
}

// header renders the block that precedes the XML body. Versions below 200
// use the OFX 1.x colon-separated literal header, 200 and above the 2.x
// processing-instruction header.
func header(version int) string {
	if version < 200 {
		return strings.Join([]string{
			"OFXHEADER:100",
			"DATA:OFXSGML",
			fmt.Sprintf("VERSION:%d", version),
			"SECURITY:NONE",
			"ENCODING:USASCII",
			"CHARSET:1252",
			"COMPRESSION:NONE",
			"OLDFILEUID:NONE",
			"NEWFILEUID:NONE",
			"", "",
		}, "\r\n")
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\r\n" +
		fmt.Sprintf(`<?OFX OFXHEADER="200" VERSION="%d" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>`, version) + "\r\n"
}
