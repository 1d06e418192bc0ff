package pricing

import (
	"food-delivery-api/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errs.Define("invalid monetary amount", errs.ErrValidation)

const scale = 2

var hundred = decimal.NewFromInt(100)

// Money is a non-float amount held at two decimal places. The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(scale)}
}

func NewMoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -scale)}
}

func NewMoneyFromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.Mark(errs.Mark(errs.Wrapf(err, "parse amount %q", s), ErrInvalidAmount), errs.ErrValidation)
	}
	return NewMoney(d), nil
}

// MustParseMoney panics on malformed input. Use it for literals only.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{amount: m.amount.Add(o.amount)} }
func (m Money) Sub(o Money) Money { return Money{amount: m.amount.Sub(o.amount)} }

func (m Money) Mul(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

// Percent returns p percent of m.
func (m Money) Percent(p decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(p).Div(hundred))
}

// MulRate multiplies by a fractional rate such as 0.05.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(rate))
}

func (m Money) Min(o Money) Money {
	if o.amount.LessThan(m.amount) {
		return o
	}
	return m
}

func (m Money) Max(o Money) Money {
	if o.amount.GreaterThan(m.amount) {
		return o
	}
	return m
}

func (m Money) Equal(o Money) bool       { return m.amount.Equal(o.amount) }
func (m Money) LessThan(o Money) bool    { return m.amount.LessThan(o.amount) }
func (m Money) GreaterThan(o Money) bool { return m.amount.GreaterThan(o.amount) }
func (m Money) IsZero() bool             { return m.amount.IsZero() }
func (m Money) IsNegative() bool         { return m.amount.IsNegative() }

// Cents is the integer minor-unit form used for storage.
func (m Money) Cents() int64 {
	return m.amount.Shift(scale).Round(0).IntPart()
}

func (m Money) Decimal() decimal.Decimal { return m.amount }

func (m Money) String() string { return m.amount.StringFixed(scale) }

// MarshalJSON writes a bare JSON number with exactly two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(scale)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return errs.Mark(errs.Mark(errs.Wrap(err, "decode amount"), ErrInvalidAmount), errs.ErrValidation)
	}
	*m = NewMoney(d)
	return nil
}
