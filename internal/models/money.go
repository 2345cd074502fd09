// internal/models/money.go
package models

import (
	"fmt"
	"math/big"
)

// Cents is a currency amount in hundredths of a unit. Prices are stored and
// transported as integers; formatting to two decimals happens at the edges.
type Cents int64

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a fixed two-decimal string, e.g. "61.20".
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// RoundCentsHalfUp converts an exact rational amount of currency units into
// Cents using round-half-up.
func RoundCentsHalfUp(amount *big.Rat) Cents {
	// scale to cents: amount * 100, then round halves away from zero
	scaled := new(big.Rat).Mul(amount, big.NewRat(100, 1))
	num := scaled.Num()
	den := scaled.Denom()

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		doubled := new(big.Int).Abs(rem)
		doubled.Lsh(doubled, 1)
		if doubled.Cmp(den) >= 0 {
			if num.Sign() >= 0 {
				quo.Add(quo, big.NewInt(1))
			} else {
				quo.Sub(quo, big.NewInt(1))
			}
		}
	}
	return Cents(quo.Int64())
}
