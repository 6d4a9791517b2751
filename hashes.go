package rsapkcs1

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// HashFunc names one of the digest algorithms this package supports as an
// OAEP label hash, an MGF1 hash, or a PSS message/MGF hash.
type HashFunc int

const (
	SHA1 HashFunc = iota
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
)

var hashConstructors = map[HashFunc]func() hash.Hash{
	SHA1:       sha1.New,
	SHA256:     sha256.New,
	SHA384:     sha512.New384,
	SHA512:     sha512.New,
	SHA512_224: sha512.New512_224,
	SHA512_256: sha512.New512_256,
}

// New returns the hash.Hash constructor for h, or false if h is not a
// supported algorithm.
func (h HashFunc) New() (func() hash.Hash, bool) {
	ctor, ok := hashConstructors[h]
	return ctor, ok
}

// emptyLabelHash is the precomputed hash of the empty OAEP label for each
// supported algorithm (testable property #12). Computed once at init time
// rather than hardcoded, since hardcoding six digest constants invites a
// transcription error that a one-line init loop cannot.
var emptyLabelHash = map[HashFunc][]byte{}

func init() {
	for h, ctor := range hashConstructors {
		d := ctor()
		emptyLabelHash[h] = d.Sum(nil)
	}
}

// EmptyLabelHash returns the precomputed digest of the empty OAEP label
// under h.
func EmptyLabelHash(h HashFunc) ([]byte, error) {
	lHash, ok := emptyLabelHash[h]
	if !ok {
		return nil, errorf("EmptyLabelHash", ErrIllegalArgument)
	}
	return lHash, nil
}
