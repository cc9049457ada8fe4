package ofx

// OFX aggregate shapes, per OFX 2.2 §2.5.1 (signon), §13.9.2 (investment
// statement) and §13.8.5 (security list). Field order follows the aggregate
// order the standard mandates; encoding/xml emits fields in declaration
// order.

import "encoding/xml"

type ofxStatus struct {
	Code     int    `xml:"CODE"`
	Severity string `xml:"SEVERITY"`
}

type ofxSonrs struct {
	Status   ofxStatus `xml:"STATUS"`
	DtServer string    `xml:"DTSERVER"`
	Language string    `xml:"LANGUAGE"`
}

type ofxSignon struct {
	Sonrs ofxSonrs `xml:"SONRS"`
}

type ofxSecID struct {
	UniqueID     string `xml:"UNIQUEID"`
	UniqueIDType string `xml:"UNIQUEIDTYPE"`
}

type ofxInvTran struct {
	FitID   string `xml:"FITID"`
	DtTrade string `xml:"DTTRADE"`
	Memo    string `xml:"MEMO,omitempty"`
}

// ofxInvBuy doubles as INVBUY and INVSELL; only the wrapping element and
// the BUYTYPE/SELLTYPE sibling differ.
type ofxInvBuy struct {
	InvTran     ofxInvTran `xml:"INVTRAN"`
	SecID       ofxSecID   `xml:"SECID"`
	Units       string     `xml:"UNITS"`
	UnitPrice   string     `xml:"UNITPRICE"`
	Total       string     `xml:"TOTAL"`
	SubAcctSec  string     `xml:"SUBACCTSEC"`
	SubAcctFund string     `xml:"SUBACCTFUND"`
}

type ofxBuyStock struct {
	XMLName xml.Name  `xml:"BUYSTOCK"`
	InvBuy  ofxInvBuy `xml:"INVBUY"`
	BuyType string    `xml:"BUYTYPE"`
}

type ofxBuyMF struct {
	XMLName xml.Name  `xml:"BUYMF"`
	InvBuy  ofxInvBuy `xml:"INVBUY"`
	BuyType string    `xml:"BUYTYPE"`
}

type ofxSellStock struct {
	XMLName  xml.Name  `xml:"SELLSTOCK"`
	InvSell  ofxInvBuy `xml:"INVSELL"`
	SellType string    `xml:"SELLTYPE"`
}

type ofxSellMF struct {
	XMLName  xml.Name  `xml:"SELLMF"`
	InvSell  ofxInvBuy `xml:"INVSELL"`
	SellType string    `xml:"SELLTYPE"`
}

type ofxIncome struct {
	XMLName     xml.Name   `xml:"INCOME"`
	InvTran     ofxInvTran `xml:"INVTRAN"`
	SecID       ofxSecID   `xml:"SECID"`
	IncomeType  string     `xml:"INCOMETYPE"`
	Total       string     `xml:"TOTAL"`
	SubAcctSec  string     `xml:"SUBACCTSEC"`
	SubAcctFund string     `xml:"SUBACCTFUND"`
}

type ofxReinvest struct {
	XMLName    xml.Name   `xml:"REINVEST"`
	InvTran    ofxInvTran `xml:"INVTRAN"`
	SecID      ofxSecID   `xml:"SECID"`
	IncomeType string     `xml:"INCOMETYPE"`
	Total      string     `xml:"TOTAL"`
	SubAcctSec string     `xml:"SUBACCTSEC"`
	Units      string     `xml:"UNITS"`
	UnitPrice  string     `xml:"UNITPRICE"`
}

type ofxInvTranList struct {
	DtStart string `xml:"DTSTART"`
	DtEnd   string `xml:"DTEND"`
	// one aggregate per transaction, named by its dynamic type
	Transactions []any
}

type ofxInvAcctFrom struct {
	BrokerID string `xml:"BROKERID"`
	AcctID   string `xml:"ACCTID"`
}

type ofxInvStmtRs struct {
	DtAsOf      string         `xml:"DTASOF"`
	CurDef      string         `xml:"CURDEF"`
	InvAcctFrom ofxInvAcctFrom `xml:"INVACCTFROM"`
	InvTranList ofxInvTranList `xml:"INVTRANLIST"`
}

type ofxInvStmtTrnRs struct {
	TrnUID  string       `xml:"TRNUID"`
	Status  ofxStatus    `xml:"STATUS"`
	InvStmt ofxInvStmtRs `xml:"INVSTMTRS"`
}

type ofxInvMsgs struct {
	Trn ofxInvStmtTrnRs `xml:"INVSTMTTRNRS"`
}

type ofxSecInfo struct {
	SecID   ofxSecID `xml:"SECID"`
	SecName string   `xml:"SECNAME"`
	Ticker  string   `xml:"TICKER"`
}

type ofxStockInfo struct {
	XMLName xml.Name   `xml:"STOCKINFO"`
	SecInfo ofxSecInfo `xml:"SECINFO"`
}

type ofxMFInfo struct {
	XMLName xml.Name   `xml:"MFINFO"`
	SecInfo ofxSecInfo `xml:"SECINFO"`
}

type ofxSecList struct {
	Securities []any
}

type ofxSecListMsgs struct {
	SecList ofxSecList `xml:"SECLIST"`
}

type ofxRoot struct {
	XMLName xml.Name       `xml:"OFX"`
	Signon  ofxSignon      `xml:"SIGNONMSGSRSV1"`
	InvMsgs ofxInvMsgs     `xml:"INVSTMTMSGSRSV1"`
	SecMsgs ofxSecListMsgs `xml:"SECLISTMSGSRSV1"`
}
