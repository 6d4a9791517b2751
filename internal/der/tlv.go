// Package der implements the minimal subset of X.690 Distinguished Encoding
// Rules needed to serialize and parse the RSA key schemas: TLV tag/length
// framing, OBJECT IDENTIFIER encoding, and INTEGER compaction. It does not
// attempt to be a general-purpose ASN.1 library.
package der

import (
	"bytes"
	"errors"
	"io"
)

// Universal class tags used by the key schemas this package serializes.
const (
	TagBoolean     byte = 0x01
	TagInteger     byte = 0x02
	TagBitString   byte = 0x03
	TagOctetString byte = 0x04
	TagNull        byte = 0x05
	TagOID         byte = 0x06
	TagReal        byte = 0x09
	TagEnumerated  byte = 0x0A
	TagSequence    byte = 0x30 // constructed | universal 0x10
	TagSet         byte = 0x31 // constructed | universal 0x11

	maxLengthOctets = 4
)

var (
	// ErrTruncated means the input ended before a declared length was
	// satisfied.
	ErrTruncated = errors.New("der: unexpected end of stream")
	// ErrIndefiniteLength means the 0x80 indefinite-length octet was seen;
	// DER forbids it.
	ErrIndefiniteLength = errors.New("der: infinite form unsupported")
	// ErrUnsupportedLength means the length header used more than
	// maxLengthOctets subsequent octets.
	ErrUnsupportedLength = errors.New("der: unsupported length")
)

// TLV is a decoded tag/length/value triple. EncodedLen is the length of the
// full encoding (tag + length header + value), useful for callers walking a
// byte stream that holds more than one TLV.
type TLV struct {
	Tag        byte
	Value      []byte
	EncodedLen int
}

// EncodeLength returns the DER length-of-length-prefixed encoding of n:
// short form (a single byte) for n <= 127, long form otherwise.
func EncodeLength(n int) []byte {
	if n < 0 {
		panic("der: negative length")
	}
	if n <= 127 {
		return []byte{byte(n)}
	}

	// Minimal big-endian encoding of n, no leading zero byte.
	var magnitude []byte
	for v := n; v > 0; v >>= 8 {
		magnitude = append([]byte{byte(v)}, magnitude...)
	}

	out := make([]byte, 0, 1+len(magnitude))
	out = append(out, 0x80|byte(len(magnitude)))
	out = append(out, magnitude...)
	return out
}

// WriteTLV appends the DER encoding of (tag, value) to w.
func WriteTLV(w *bytes.Buffer, tag byte, value []byte) {
	w.WriteByte(tag)
	w.Write(EncodeLength(len(value)))
	w.Write(value)
}

// ReadTLV decodes one TLV from the front of r, returning the tag, the value
// octets, and the number of bytes consumed.
func ReadTLV(r *bytes.Reader) (TLV, error) {
	start := r.Len()

	tag, err := r.ReadByte()
	if err != nil {
		return TLV{}, ErrTruncated
	}

	first, err := r.ReadByte()
	if err != nil {
		return TLV{}, ErrTruncated
	}

	var length int
	if first&0x80 == 0 {
		length = int(first)
	} else {
		n := int(first &^ 0x80)
		if n == 0 {
			return TLV{}, ErrIndefiniteLength
		}
		if n > maxLengthOctets {
			return TLV{}, ErrUnsupportedLength
		}
		lenBytes := make([]byte, n)
		if _, err := io.ReadFull(r, lenBytes); err != nil {
			return TLV{}, ErrTruncated
		}
		for _, b := range lenBytes {
			length = length<<8 | int(b)
		}
	}

	value := make([]byte, length)
	if _, err := io.ReadFull(r, value); err != nil {
		return TLV{}, ErrTruncated
	}

	consumed := start - r.Len()
	return TLV{Tag: tag, Value: value, EncodedLen: consumed}, nil
}

// ReadSequenceBody reads a SEQUENCE TLV from r and returns a reader scoped
// to its contents.
func ReadSequenceBody(r *bytes.Reader) (*bytes.Reader, error) {
	tlv, err := ReadTLV(r)
	if err != nil {
		return nil, err
	}
	if tlv.Tag != TagSequence {
		return nil, errors.New("der: expected SEQUENCE tag")
	}
	return bytes.NewReader(tlv.Value), nil
}
