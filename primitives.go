package rsapkcs1

import "math/big"

// RSAEP implements section 4.8's encryption primitive: c = m^e mod n.
func RSAEP(m *big.Int, pub *PublicKey) (*big.Int, error) {
	if m.Cmp(pub.N) >= 0 {
		return nil, errorf("RSAEP", ErrMessageRepresentativeOutOfRange)
	}
	return new(big.Int).Exp(m, pub.E, pub.N), nil
}

// RSAVP1 implements section 4.8's verification primitive: m = s^e mod n.
func RSAVP1(s *big.Int, pub *PublicKey) (*big.Int, error) {
	if s.Cmp(pub.N) >= 0 {
		return nil, errorf("RSAVP1", ErrInvalidSignature)
	}
	return new(big.Int).Exp(s, pub.E, pub.N), nil
}

// RSADP implements section 4.8's decryption primitive, taking the CRT
// fast path when priv carries CRT components and falling back to a plain
// c^d mod n otherwise.
func RSADP(c *big.Int, priv *PrivateKey) (*big.Int, error) {
	if c.Cmp(priv.N) >= 0 {
		return nil, errorf("RSADP", ErrMessageRepresentativeOutOfRange)
	}
	if priv.crt != nil {
		return crtExp(c, priv), nil
	}
	return new(big.Int).Exp(c, priv.D, priv.N), nil
}

// RSASP1 implements section 4.8's signature primitive. It is structurally
// identical to RSADP with the message representative in place of the
// ciphertext representative.
func RSASP1(m *big.Int, priv *PrivateKey) (*big.Int, error) {
	if m.Cmp(priv.N) >= 0 {
		return nil, errorf("RSASP1", ErrMessageRepresentativeOutOfRange)
	}
	if priv.crt != nil {
		return crtExp(m, priv), nil
	}
	return new(big.Int).Exp(m, priv.D, priv.N), nil
}

// crtExp computes x^d mod n via the Chinese Remainder Theorem:
// m1 = x^dP mod p, m2 = x^dQ mod q, h = (m1 - m2)*qInv mod p, m = m2 + q*h.
func crtExp(x *big.Int, priv *PrivateKey) *big.Int {
	m1 := new(big.Int).Exp(x, priv.crt.DP, priv.P)
	m2 := new(big.Int).Exp(x, priv.crt.DQ, priv.Q)

	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, priv.crt.QInv)
	h.Mod(h, priv.P)

	m := new(big.Int).Mul(priv.Q, h)
	m.Add(m, m2)
	return m
}
