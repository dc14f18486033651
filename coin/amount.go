package coin

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/iov-one/multisafe/errors"
)

// Amount is a quantity of the native currency expressed in its smallest
// indivisible unit. Amounts are never negative.
type Amount uint64

// MaxAmount is the largest amount representable.
const MaxAmount = Amount(math.MaxUint64)

// Add returns the sum of both amounts. It fails instead of wrapping around.
func (a Amount) Add(o Amount) (Amount, error) {
	if a > MaxAmount-o {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, o)
	}
	return a + o, nil
}

// Sub returns the difference of both amounts. Subtracting more than is
// available fails with insufficient amount error.
func (a Amount) Sub(o Amount) (Amount, error) {
	if o > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d - %d", a, o)
	}
	return a - o, nil
}

// Compare returns -1 if a < o, 0 if equal and 1 if a > o.
func (a Amount) Compare(o Amount) int {
	switch {
	case a < o:
		return -1
	case a > o:
		return 1
	default:
		return 0
	}
}

// IsZero returns true for zero value.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsGTE returns true if a is greater or equal to o.
func (a Amount) IsGTE(o Amount) bool {
	return a >= o
}

// Sum adds all given amounts together.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAmount parses a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(errors.ErrEmpty, "amount")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errors.Wrapf(errors.ErrOverflow, "amount %q", s)
		}
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "amount %q", s)
	}
	return Amount(n), nil
}

// MarshalJSON encodes the amount as a decimal string. JSON numbers cannot
// represent the whole uint64 range in most consumers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n uint64
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrapf(errors.ErrInvalidAmount, "cannot decode %s", raw)
		}
		*a = Amount(n)
		return nil
	}
	val, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = val
	return nil
}

// Set implements flag.Value interface.
func (a *Amount) Set(raw string) error {
	val, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = val
	return nil
}
