// Package oaepcore implements the OAEP padding and unpadding transforms of
// PKCS #1 v2.2 section 7.1, independent of the RSA primitive itself: it
// operates purely on byte strings of the modulus's octet length k.
package oaepcore

import (
	"crypto/subtle"
	"errors"
	"hash"
	"io"

	"github.com/arcspec/rsapkcs1/internal/mgf1"
)

// ErrMessageTooLong is returned by Encode when the message exceeds the
// OAEP capacity for the given k and hLen.
var ErrMessageTooLong = errors.New("oaepcore: message too long")

// ErrDecryption is returned by Decode for any padding-check failure. It
// never distinguishes which check failed, by design: see Decode's doc
// comment.
var ErrDecryption = errors.New("oaepcore: decryption error")

// Encode implements EME-OAEP-ENCODE. lHash is the precomputed hash of the
// (empty) label and must be hLen bytes, matching newMGFHash's digest size.
func Encode(random io.Reader, message []byte, k int, lHash []byte, newMGFHash func() hash.Hash) ([]byte, error) {
	hLen := len(lHash)

	if len(message) > k-2*hLen-2 {
		return nil, ErrMessageTooLong
	}

	db := make([]byte, k-hLen-1)
	copy(db, lHash)
	// db[hLen:k-hLen-1-len(message)-1] is already zero-filled by make.
	db[len(db)-len(message)-1] = 0x01
	copy(db[len(db)-len(message):], message)

	seed := make([]byte, hLen)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, err
	}

	if err := mgf1.XOR(db, seed, newMGFHash); err != nil {
		return nil, err
	}
	maskedDB := db

	maskedSeedMask, err := mgf1.Generate(maskedDB, hLen, newMGFHash)
	if err != nil {
		return nil, err
	}
	maskedSeed := make([]byte, hLen)
	for i := range maskedSeed {
		maskedSeed[i] = seed[i] ^ maskedSeedMask[i]
	}

	em := make([]byte, 1+hLen+len(maskedDB))
	em[0] = 0x00
	copy(em[1:1+hLen], maskedSeed)
	copy(em[1+hLen:], maskedDB)
	return em, nil
}

// Decode implements EME-OAEP-DECODE. It walks the decoded data block to
// completion regardless of where (or whether) the 0x01 separator and a
// matching label hash are found, and folds every check into a single
// accumulated flag so that no two malformed inputs can be distinguished by
// timing or by error content. lHash must be the expected hLen-byte label
// hash.
func Decode(em []byte, k int, lHash []byte, newMGFHash func() hash.Hash) ([]byte, error) {
	hLen := len(lHash)

	if len(em) != k || k < 2*hLen+2 {
		return nil, ErrDecryption
	}

	y := em[0]
	maskedSeed := append([]byte(nil), em[1:1+hLen]...)
	maskedDB := append([]byte(nil), em[1+hLen:]...)

	seedMask, err := mgf1.Generate(maskedDB, hLen, newMGFHash)
	if err != nil {
		return nil, ErrDecryption
	}
	seed := make([]byte, hLen)
	for i := range seed {
		seed[i] = maskedSeed[i] ^ seedMask[i]
	}

	if err := mgf1.XOR(maskedDB, seed, newMGFHash); err != nil {
		return nil, ErrDecryption
	}
	db := maskedDB

	// Walk db looking for the first 0x01 after the label hash, without
	// branching on the result: every byte before the first 0x01 must be
	// 0x00, and the scan continues to the end of db regardless of what it
	// has already found.
	foundOne := 0
	badPadding := 0
	msgStart := len(db)
	for i := hLen; i < len(db); i++ {
		isOne := subtle.ConstantTimeByteEq(db[i], 0x01)
		isZero := subtle.ConstantTimeByteEq(db[i], 0x00)

		// Record the first index where we see 0x01 (only takes effect once).
		firstOccurrence := isOne & (1 - foundOne)
		msgStart = subtle.ConstantTimeSelect(firstOccurrence, i+1, msgStart)
		foundOne = foundOne | isOne

		// Any non-zero, non-0x01 byte seen before the separator is bad
		// padding; keep scanning regardless.
		notYetFound := 1 - foundOne
		badPadding |= notYetFound & (1 - isZero) & (1 - isOne)
	}

	labelMatch := subtle.ConstantTimeCompare(db[:hLen], lHash)
	zByte := subtle.ConstantTimeByteEq(y, 0x00)

	ok := foundOne & (1 - badPadding) & labelMatch & zByte
	if ok != 1 {
		return nil, ErrDecryption
	}

	return db[msgStart:], nil
}
