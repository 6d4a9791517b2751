// Package psscore implements the PSS encoding and verification operations
// of PKCS #1 v2.2 section 9.1 (EMSA-PSS-ENCODE / EMSA-PSS-VERIFY).
package psscore

import (
	"crypto/subtle"
	"errors"
	"hash"
	"io"

	"github.com/arcspec/rsapkcs1/internal/mgf1"
)

// ErrEncoding is returned when emLen is too small to hold the requested
// salt and hash.
var ErrEncoding = errors.New("psscore: encoding error")

// ErrInconsistent is returned by Verify for any check failure. It never
// distinguishes which check failed.
var ErrInconsistent = errors.New("psscore: inconsistent")

var eightZeros = [8]byte{}

// Encode implements EMSA-PSS-ENCODE. mHash is Hash(M), already computed by
// the caller; newHash and newMGFHash may be the same or different
// algorithms.
func Encode(random io.Reader, mHash []byte, emBits, sLen int, newHash, newMGFHash func() hash.Hash) ([]byte, error) {
	hLen := len(mHash)
	emLen := (emBits + 7) / 8

	if emLen < hLen+sLen+2 {
		return nil, ErrEncoding
	}

	salt := make([]byte, sLen)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, err
	}

	h := newHash()
	h.Write(eightZeros[:])
	h.Write(mHash)
	h.Write(salt)
	hDigest := h.Sum(nil)

	db := make([]byte, emLen-hLen-1)
	db[emLen-sLen-hLen-2] = 0x01
	copy(db[emLen-sLen-hLen-1:], salt)

	if err := mgf1.XOR(db, hDigest, newMGFHash); err != nil {
		return nil, err
	}

	unusedBits := 8*emLen - emBits
	db[0] &= 0xFF >> uint(unusedBits)

	em := make([]byte, emLen)
	copy(em, db)
	copy(em[len(db):], hDigest)
	em[emLen-1] = 0xBC
	return em, nil
}

// Verify implements EMSA-PSS-VERIFY, folding every sub-check into a single
// accumulated flag rather than returning as soon as one fails.
func Verify(mHash, em []byte, emBits, sLen int, newHash, newMGFHash func() hash.Hash) error {
	hLen := len(mHash)
	emLen := (emBits + 7) / 8

	if emLen < hLen+sLen+2 || len(em) != emLen {
		return ErrInconsistent
	}

	ok := subtle.ConstantTimeByteEq(em[emLen-1], 0xBC)

	unusedBits := uint(8*emLen - emBits)
	topMask := byte(0xFF << (8 - unusedBits))
	if unusedBits == 0 {
		topMask = 0
	}
	ok &= subtle.ConstantTimeByteEq(em[0]&topMask, 0x00)

	db := append([]byte(nil), em[:emLen-hLen-1]...)
	hDigest := em[emLen-hLen-1 : emLen-1]

	mask, err := mgf1.Generate(hDigest, len(db), newMGFHash)
	if err != nil {
		return ErrInconsistent
	}
	for i := range db {
		db[i] ^= mask[i]
	}
	if unusedBits != 0 {
		db[0] &= 0xFF >> unusedBits
	}

	zeroPrefixLen := emLen - hLen - sLen - 2
	allZero := 1
	for i := 0; i < zeroPrefixLen; i++ {
		allZero &= subtle.ConstantTimeByteEq(db[i], 0x00)
	}
	ok &= allZero
	ok &= subtle.ConstantTimeByteEq(db[zeroPrefixLen], 0x01)

	salt := db[len(db)-sLen:]

	h := newHash()
	h.Write(eightZeros[:])
	h.Write(mHash)
	h.Write(salt)
	want := h.Sum(nil)

	ok &= subtle.ConstantTimeCompare(want, hDigest)

	if ok != 1 {
		return ErrInconsistent
	}
	return nil
}
