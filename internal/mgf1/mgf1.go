// Package mgf1 implements the MGF1 mask-generation function from PKCS #1
// v2.2 (RFC 8017 appendix B.2.1), hash-seeded counter-mode output.
package mgf1

import (
	"encoding/binary"
	"errors"
	"hash"
)

// ErrMaskTooLong is returned when the requested mask length exceeds the
// conservative ceiling 2^31 - 1 - hLen this implementation enforces.
var ErrMaskTooLong = errors.New("mgf1: mask too long")

// Generate returns the first maskLen bytes of
// H(seed||I2OSP(0,4)) || H(seed||I2OSP(1,4)) || ...
// newHash must return a fresh, reset hash.Hash on each call.
func Generate(seed []byte, maskLen int, newHash func() hash.Hash) ([]byte, error) {
	h := newHash()
	hLen := h.Size()

	if maskLen < 0 {
		return nil, errors.New("mgf1: negative mask length")
	}
	if maskLen > (1<<31)-1-hLen {
		return nil, ErrMaskTooLong
	}

	out := make([]byte, 0, maskLen)
	var counter [4]byte
	for len(out) < maskLen {
		binary.BigEndian.PutUint32(counter[:], uint32(len(out)/hLen))
		h.Reset()
		h.Write(seed)
		h.Write(counter[:])
		out = h.Sum(out)
	}
	return out[:maskLen], nil
}

// XOR XORs dst in place with MGF1(seed, len(dst), newHash).
func XOR(dst []byte, seed []byte, newHash func() hash.Hash) error {
	mask, err := Generate(seed, len(dst), newHash)
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] ^= mask[i]
	}
	return nil
}
