package ofx

import "strings"

// Kind identifies the sort of investment activity a transaction records.
type Kind int

const (
	// KindUnknown is the zero value; it never appears in a compiled ledger.
	KindUnknown Kind = iota
	BuyStock
	SellStock
	BuyFund
	SellFund
	Reinvest
	Income
)

// String returns the canonical txn_type spelling for the kind.
func (k Kind) String() string {
	switch k {
	case BuyStock:
		return "BUYSTOCK"
	case SellStock:
		return "SELLSTOCK"
	case BuyFund:
		return "BUYMF"
	case SellFund:
		return "SELLMF"
	case Reinvest:
		return "REINVEST"
	case Income:
		return "INCOME"
	default:
		return "UNKNOWN"
	}
}

// ParseKind resolves a txn_type column value into a Kind. Mutual fund kinds
// are accepted under both their OFX aggregate spelling (BUYMF/SELLMF) and
// the spelling institution exports use (BUYFUND/SELLFUND).
func ParseKind(s string) (Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUYSTOCK":
		return BuyStock, true
	case "SELLSTOCK":
		return SellStock, true
	case "BUYMF", "BUYFUND":
		return BuyFund, true
	case "SELLMF", "SELLFUND":
		return SellFund, true
	case "REINVEST":
		return Reinvest, true
	case "INCOME":
		return Income, true
	default:
		return KindUnknown, false
	}
}

// sign is the normalization applied to a parsed decimal field.
type sign int

const (
	signAsIs sign = iota // keep the parsed sign (REINVEST/INCOME pass-through)
	signPositive
	signNegative
)

func (s sign) apply(q Quantity) Quantity {
	switch s {
	case signPositive:
		return q.Abs()
	case signNegative:
		return q.Abs().Neg()
	default:
		return q
	}
}

// kindSpec drives the compiler: which fields a kind requires, how signs are
// normalized, and how the security registry classifies the symbol. A single
// table here replaces one near-duplicate code path per transaction type.
type kindSpec struct {
	needsUnits bool
	needsPrice bool
	unitsSign  sign
	totalSign  sign
	class      SecurityClass // ClassUnknown means: consult the symbol_type column
}

var kindSpecs = map[Kind]kindSpec{
	BuyStock:  {needsUnits: true, needsPrice: true, unitsSign: signPositive, totalSign: signNegative, class: ClassStock},
	BuyFund:   {needsUnits: true, needsPrice: true, unitsSign: signPositive, totalSign: signNegative, class: ClassFund},
	SellStock: {needsUnits: true, needsPrice: true, unitsSign: signNegative, totalSign: signPositive, class: ClassStock},
	SellFund:  {needsUnits: true, needsPrice: true, unitsSign: signNegative, totalSign: signPositive, class: ClassFund},
	Reinvest:  {needsUnits: true, needsPrice: true},
	Income:    {},
}
