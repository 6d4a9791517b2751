package rsapkcs1

import (
	"io"
	"math/big"
	"sync"

	"github.com/arcspec/rsapkcs1/internal/bigutil"
)

// blindState is the Kocher blinding pair for one private key, created
// lazily on first use and protected by mu for concurrent callers sharing a
// single PrivateKey (section 5). blind and unblind together form one
// critical section so a refresh can never observe a half-consumed pair.
type blindState struct {
	mu    sync.Mutex
	vf    *big.Int
	vi    *big.Int
	dirty bool
}

// ensureBlind lazily derives the initial (vf, vi) pair the first time a
// private key is used, per section 4.7. Callers must hold priv.blindMu.mu.
func (priv *PrivateKey) ensureBlind(random io.Reader) error {
	b := &priv.blindMu
	if b.vf != nil {
		return nil
	}

	lambda := reductionModulus(priv.P, priv.Q, Carmichael)
	lo := big.NewInt(1)
	hi := priv.N

	vf, err := bigutil.RandomOddCoprime(random, lo, hi, lambda)
	if err != nil {
		return err
	}

	vfInv, err := bigutil.ModInverse(vf, priv.N)
	if err != nil {
		return err
	}
	vi := new(big.Int).Exp(vfInv, priv.E, priv.N)

	b.vf = vf
	b.vi = vi
	b.dirty = false
	return nil
}

// refreshIfDirty squares both halves of the blinding pair when the
// previous blind/unblind cycle left them dirty. Squaring preserves
// vi = (vf^-1)^e mod n because squaring commutes with inversion and
// exponentiation modulo n, and is far cheaper than re-deriving vf from
// scratch. Callers must hold priv.blindMu.mu.
func (priv *PrivateKey) refreshIfDirty() {
	b := &priv.blindMu
	if !b.dirty {
		return
	}
	b.vf = new(big.Int).Exp(b.vf, big.NewInt(2), priv.N)
	b.vi = new(big.Int).Exp(b.vi, big.NewInt(2), priv.N)
	b.dirty = false
}

// blindUnblind performs a blind, the supplied private operation, and the
// matching unblind as a single critical section, so the dirty-refresh
// transition is never visible to a concurrent caller of the same key.
func (priv *PrivateKey) blindUnblind(random io.Reader, x *big.Int, op func(blinded *big.Int) (*big.Int, error)) (*big.Int, error) {
	b := &priv.blindMu
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := priv.ensureBlind(random); err != nil {
		return nil, err
	}
	priv.refreshIfDirty()

	blinded := new(big.Int).Mul(x, b.vi)
	blinded.Mod(blinded, priv.N)

	result, err := op(blinded)
	if err != nil {
		return nil, err
	}

	unblinded := new(big.Int).Mul(result, b.vf)
	unblinded.Mod(unblinded, priv.N)

	b.dirty = true
	return unblinded, nil
}
