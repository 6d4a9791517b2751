package rsapkcs1

import (
	"crypto/rand"
	"io"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/arcspec/rsapkcs1/internal/bigutil"
)

// ExponentPolicy selects how a key factory chooses the public exponent e.
type ExponentPolicy int

const (
	// DEFAULT fixes e = 65537.
	DEFAULT ExponentPolicy = iota
	// RANDOM draws a uniformly random odd e with 2^16 < e < n-1 coprime to
	// the reduction.
	RANDOM
	// RANDOM_STRICT draws a uniformly random odd e with 2^16 < e < 2^256
	// coprime to the reduction; Carmichael only, and nlen restricted to
	// {1024, 2048, 3072, 4096}.
	RANDOM_STRICT
)

var defaultExponent = big.NewInt(65537)

// minModulusBits is the minimum nlen section 4.6 permits.
const minModulusBits = 1024

var strictModulusSizes = map[int]bool{1024: true, 2048: true, 3072: true, 4096: true}

// GenerateParams parameterizes key generation.
type GenerateParams struct {
	NLen      int
	Reduction Reduction
	Policy    ExponentPolicy
}

// Generate implements section 4.6's "generate(nlen, spec)" surface: it
// draws two probable primes of equal nominal bit length, derives n, e, d,
// and the CRT components, and retries the whole generation if d fails the
// lower-bound check or n lands on the wrong bit length.
func Generate(random io.Reader, params GenerateParams) (*PrivateKey, error) {
	if params.NLen < minModulusBits {
		return nil, errorf("Generate", ErrIllegalArgument)
	}
	if params.Policy == RANDOM_STRICT {
		if params.Reduction != Carmichael {
			return nil, errorf("Generate", ErrIllegalArgument)
		}
		if !strictModulusSizes[params.NLen] {
			return nil, errorf("Generate", ErrIllegalArgument)
		}
	}

	for {
		p, q, n, err := generateModulus(random, params.NLen)
		if err != nil {
			return nil, err
		}

		red := reductionModulus(p, q, params.Reduction)

		e, err := chooseExponent(random, n, red, params.Policy)
		if err != nil {
			return nil, err
		}

		d := new(big.Int).ModInverse(e, red)
		if d == nil {
			continue // e not coprime to red after all; retry generation
		}

		lowerBound := new(big.Int).Lsh(big.NewInt(1), uint(params.NLen/2))
		if d.Cmp(lowerBound) <= 0 {
			continue
		}

		priv, err := NewPrivateKey(n, e, d, p, q, params.Reduction)
		if err != nil {
			continue
		}
		return priv, nil
	}
}

// generateModulus draws two probable primes of bit length nlen/2 and
// retries until their product lands exactly on nlen bits. The two primes
// are searched concurrently, mirroring how this package treats p and q as
// independent draws everywhere else.
func generateModulus(random io.Reader, nlen int) (p, q, n *big.Int, err error) {
	half := nlen / 2

	for {
		var g errgroup.Group
		var pp, qq *big.Int

		g.Go(func() error {
			var err error
			pp, err = rand.Prime(random, half)
			return err
		})
		g.Go(func() error {
			var err error
			qq, err = rand.Prime(random, half)
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, nil, nil, err
		}

		if pp.Cmp(qq) == 0 {
			continue
		}

		nn := new(big.Int).Mul(pp, qq)
		if nn.BitLen() != nlen {
			continue
		}
		return pp, qq, nn, nil
	}
}

// reductionModulus returns lambda(n) or phi(n) depending on which
// reduction a factory uses.
func reductionModulus(p, q *big.Int, reduction Reduction) *big.Int {
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	qMinus1 := new(big.Int).Sub(q, big.NewInt(1))

	switch reduction {
	case Euler:
		return new(big.Int).Mul(pMinus1, qMinus1)
	default:
		return bigutil.Lcm(pMinus1, qMinus1)
	}
}

func chooseExponent(random io.Reader, n, red *big.Int, policy ExponentPolicy) (*big.Int, error) {
	switch policy {
	case DEFAULT:
		return new(big.Int).Set(defaultExponent), nil
	case RANDOM:
		lo := new(big.Int).Lsh(big.NewInt(1), 16)
		hi := new(big.Int).Sub(n, big.NewInt(1))
		return bigutil.RandomOddCoprime(random, lo, hi, red)
	case RANDOM_STRICT:
		lo := new(big.Int).Lsh(big.NewInt(1), 16)
		hi := new(big.Int).Lsh(big.NewInt(1), 256)
		return bigutil.RandomOddCoprime(random, lo, hi, red)
	default:
		return nil, errorf("chooseExponent", ErrIllegalArgument)
	}
}
