package rsapkcs1

import "math/big"

// Reduction names the modular-reduction domain a private exponent was
// derived under. A private key's d only inverts e modulo the domain it was
// generated with.
type Reduction int

const (
	// Carmichael derives d as e's inverse modulo lcm(p-1, q-1).
	Carmichael Reduction = iota
	// Euler derives d as e's inverse modulo (p-1)(q-1).
	Euler
)

// PublicKey is an RSA public key: the modulus and public exponent.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// validate checks the non-zero field invariants of section 3. It does not
// check primality or any relationship between N and E beyond non-zero-ness.
func (pub *PublicKey) validate() error {
	if pub == nil || pub.N == nil || pub.E == nil {
		return errorf("PublicKey", ErrKeyInvalid)
	}
	if pub.N.Sign() == 0 || pub.E.Sign() == 0 {
		return errorf("PublicKey", ErrKeyInvalid)
	}
	return nil
}

// Size returns k, the octet length of the modulus.
func (pub *PublicKey) Size() int {
	return modulusLen(pub.N)
}

// crtParams holds the Chinese Remainder Theorem acceleration fields of a
// private key: dP = d mod (p-1), dQ = d mod (q-1), qInv = q^-1 mod p.
type crtParams struct {
	DP   *big.Int
	DQ   *big.Int
	QInv *big.Int
}

// PrivateKey is an RSA private key. Reduction records which domain D was
// derived under; decoded keys are marked Carmichael, and blinding always
// uses lambda(n) whatever this field says. CRT is nil only for a base key
// that section 3 calls "anemic"; NewPrivateKey, Generate and the decode
// path always populate it, and RSADP/RSASP1 fall back to a plain x^d mod n
// for a key without it.
type PrivateKey struct {
	PublicKey
	D         *big.Int
	P         *big.Int
	Q         *big.Int
	Reduction Reduction

	crt *crtParams

	blindMu blindState
}

// NewPrivateKey constructs and validates a CRT-complete private key. It
// always computes dP, dQ, qInv from d, p, q.
func NewPrivateKey(n, e, d, p, q *big.Int, reduction Reduction) (*PrivateKey, error) {
	priv := &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		P:         p,
		Q:         q,
		Reduction: reduction,
	}
	if err := priv.validateBase(); err != nil {
		return nil, err
	}
	crt, err := deriveCRT(d, p, q)
	if err != nil {
		return nil, err
	}
	priv.crt = crt
	return priv, nil
}

func (priv *PrivateKey) validateBase() error {
	if err := priv.PublicKey.validate(); err != nil {
		return err
	}
	if priv.D == nil || priv.P == nil || priv.Q == nil {
		return errorf("PrivateKey", ErrKeyInvalid)
	}
	if priv.D.Sign() == 0 || priv.P.Sign() == 0 || priv.Q.Sign() == 0 {
		return errorf("PrivateKey", ErrKeyInvalid)
	}
	return nil
}

// deriveCRT computes dP, dQ, qInv from the base fields.
func deriveCRT(d, p, q *big.Int) (*crtParams, error) {
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	qMinus1 := new(big.Int).Sub(q, big.NewInt(1))

	dP := new(big.Int).Mod(d, pMinus1)
	dQ := new(big.Int).Mod(d, qMinus1)
	qInv := new(big.Int).ModInverse(q, p)
	if qInv == nil || dP.Sign() == 0 || dQ.Sign() == 0 {
		return nil, errorf("deriveCRT", ErrKeyInvalid)
	}
	return &crtParams{DP: dP, DQ: dQ, QInv: qInv}, nil
}

// HasCRT reports whether the key carries CRT acceleration fields. This
// package only constructs CRT-complete keys, so it is always true for a
// key obtained through NewPrivateKey, Generate, or the decode path; it
// exists so callers inspecting a key built elsewhere can check before
// calling RSADP/RSASP1.
func (priv *PrivateKey) HasCRT() bool {
	return priv.crt != nil
}

// DerivePublic recomputes e = d^-1 mod reduction(p, q) from a private
// key's base fields and returns the corresponding public key, per
// section 4.6 "Derive public from private".
func DerivePublic(d, p, q *big.Int, reduction Reduction) (*PublicKey, error) {
	if d == nil || p == nil || q == nil || d.Sign() == 0 || p.Sign() == 0 || q.Sign() == 0 {
		return nil, errorf("DerivePublic", ErrKeyInvalid)
	}
	red := reductionModulus(p, q, reduction)
	e := new(big.Int).ModInverse(d, red)
	if e == nil {
		return nil, errorf("DerivePublic", ErrKeyInvalid)
	}
	n := new(big.Int).Mul(p, q)
	return &PublicKey{N: n, E: e}, nil
}
