package der

import (
	"bytes"
	"errors"
	"math/big"
)

// CompactUint returns the minimal big-endian representation of a
// non-negative integer: leading zero bytes are stripped, but a single zero
// byte is retained to represent the value zero.
func CompactUint(x *big.Int) []byte {
	b := x.Bytes() // math/big already strips leading zeros and carries no sign byte
	if len(b) == 0 {
		return []byte{0x00}
	}
	return b
}

// EncodeInteger returns the DER content octets for a non-negative INTEGER:
// the compact magnitude, prefixed with an extra 0x00 when its high bit is
// set so the value is not misread as negative two's complement.
func EncodeInteger(x *big.Int) []byte {
	if x.Sign() < 0 {
		panic("der: EncodeInteger does not support negative integers")
	}
	b := CompactUint(x)
	if b[0]&0x80 != 0 {
		padded := make([]byte, len(b)+1)
		copy(padded[1:], b)
		return padded
	}
	return b
}

// DecodeInteger interprets value as a DER INTEGER's content octets and
// returns the corresponding non-negative big.Int. Negative (two's
// complement) values are rejected since no RSA key field is ever negative.
func DecodeInteger(value []byte) (*big.Int, error) {
	if len(value) == 0 {
		return nil, errors.New("der: empty INTEGER content")
	}
	if value[0]&0x80 != 0 {
		return nil, errors.New("der: negative INTEGER not supported")
	}
	return new(big.Int).SetBytes(value), nil
}

// WriteInteger appends a DER INTEGER TLV for x to w.
func WriteInteger(w *bytes.Buffer, x *big.Int) {
	WriteTLV(w, TagInteger, EncodeInteger(x))
}

// ReadInteger reads one INTEGER TLV from r.
func ReadInteger(r *bytes.Reader) (*big.Int, error) {
	tlv, err := ReadTLV(r)
	if err != nil {
		return nil, err
	}
	if tlv.Tag != TagInteger {
		return nil, errors.New("der: expected INTEGER tag")
	}
	return DecodeInteger(tlv.Value)
}
