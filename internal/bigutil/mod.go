package bigutil

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

var bigOne = big.NewInt(1)

// Lcm returns the least common multiple of a and b. Both must be positive.
func Lcm(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	// lcm(a,b) = a/gcd * b, computed in that order to avoid an intermediate
	// product larger than necessary.
	quotient := new(big.Int).Div(a, gcd)
	return quotient.Mul(quotient, b)
}

// ModInverse returns a^-1 mod n, or an error if a has no inverse (a and n
// are not coprime).
func ModInverse(a, n *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, n)
	if inv == nil {
		return nil, errors.New("bigutil: no modular inverse exists")
	}
	return inv, nil
}

// CongruentMod reports whether n divides (a - b), i.e. a ≡ b (mod n).
func CongruentMod(a, b, n *big.Int) bool {
	aModN := new(big.Int).Mod(a, n)
	bModN := new(big.Int).Mod(b, n)
	return aModN.Cmp(bModN) == 0
}

// RandomOddCoprime draws a uniformly random odd integer r with lo <= r < hi
// such that gcd(r, modulus) == 1. It loops until both conditions hold, the
// same rejection-sampling shape the teacher's shard search uses.
func RandomOddCoprime(random io.Reader, lo, hi, modulus *big.Int) (*big.Int, error) {
	if hi.Cmp(lo) <= 0 {
		return nil, errors.New("bigutil: empty range for RandomOddCoprime")
	}

	span := new(big.Int).Sub(hi, lo)
	for {
		r, err := rand.Int(random, span)
		if err != nil {
			return nil, err
		}
		r.Add(r, lo)

		if r.Bit(0) == 0 { // must be odd
			continue
		}

		gcd := new(big.Int).GCD(nil, nil, r, modulus)
		if gcd.Cmp(bigOne) != 0 {
			continue
		}

		return r, nil
	}
}
