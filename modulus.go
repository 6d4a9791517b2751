package rsapkcs1

import "math/big"

// modulusLen returns k, the octet length of n used as the target length
// for RSA operations. Per the source convention this package reproduces,
// k = floor(bitlen(n)/8), not the RFC's ceiling convention; the two agree
// whenever bitlen(n) is a multiple of 8, which holds for every key this
// package generates. See the Open Question decisions in DESIGN.md.
func modulusLen(n *big.Int) int {
	return n.BitLen() / 8
}
