package ofx

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity is a decimal field read from a statement row: a number of units,
// a unit price or a total amount. The zero value is "absent", which is
// distinct from the number zero; a blank CSV cell parses to an absent
// Quantity and a "0" cell to a present one.
type Quantity struct {
	value decimal.Decimal
	ok    bool
}

// Q returns a present Quantity holding v.
func Q(v decimal.Decimal) Quantity { return Quantity{value: v, ok: true} }

// ParseQuantity parses a decimal cell. A blank cell is absent, not an error.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, err
	}
	return Q(v), nil
}

// Present reports whether the field held a value at all.
func (q Quantity) Present() bool { return q.ok }

func (q Quantity) IsZero() bool     { return !q.ok || q.value.IsZero() }
func (q Quantity) IsNegative() bool { return q.ok && q.value.IsNegative() }

// Abs returns the quantity with its sign stripped. Absent stays absent.
func (q Quantity) Abs() Quantity {
	if !q.ok {
		return q
	}
	return Q(q.value.Abs())
}

// Neg returns the quantity with its sign flipped. Absent stays absent.
func (q Quantity) Neg() Quantity {
	if !q.ok {
		return q
	}
	return Q(q.value.Neg())
}

// Decimal returns the underlying value; zero when absent.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// String renders the value in its minimal decimal form, or "" when absent.
func (q Quantity) String() string {
	if !q.ok {
		return ""
	}
	return q.value.String()
}
