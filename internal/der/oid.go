package der

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedOID is returned for any OID string that fails the
// component-count, first-component, or second-component validation rules.
var ErrMalformedOID = errors.New("der: malformed object identifier")

// OID is an ASN.1 object identifier, held as its parsed decimal components.
type OID struct {
	Components []uint64
}

// ParseOID parses a dotted-decimal OID string such as "1.2.840.113549.1.1.1".
// It requires at least 2 components, a first component <= 2, a second
// component <= 39, and no negative components.
func ParseOID(s string) (OID, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return OID{}, ErrMalformedOID
	}

	components := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return OID{}, fmt.Errorf("%w: %v", ErrMalformedOID, err)
		}
		components[i] = v
	}

	if components[0] > 2 {
		return OID{}, ErrMalformedOID
	}
	if components[1] > 39 {
		return OID{}, ErrMalformedOID
	}

	return OID{Components: components}, nil
}

// String renders the OID back to dotted-decimal form.
func (o OID) String() string {
	parts := make([]string, len(o.Components))
	for i, c := range o.Components {
		parts[i] = strconv.FormatUint(c, 10)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two OIDs have identical components.
func (o OID) Equal(other OID) bool {
	if len(o.Components) != len(other.Components) {
		return false
	}
	for i := range o.Components {
		if o.Components[i] != other.Components[i] {
			return false
		}
	}
	return true
}

// EncodeOID returns the DER content octets of o: the first subidentifier is
// 40*first + second, and every subsequent subidentifier is base-128
// big-endian with the continuation bit set on all but its final byte.
func EncodeOID(o OID) []byte {
	var out []byte
	out = appendBase128(out, 40*o.Components[0]+o.Components[1])
	for _, c := range o.Components[2:] {
		out = appendBase128(out, c)
	}
	return out
}

func appendBase128(dst []byte, v uint64) []byte {
	// Collect base-128 groups least-significant-first, then emit
	// most-significant-first with continuation bits set on every group but
	// the last.
	var groups []byte
	groups = append(groups, byte(v&0x7f))
	v >>= 7
	for v > 0 {
		groups = append(groups, byte(v&0x7f)|0x80)
		v >>= 7
	}
	for i := len(groups) - 1; i >= 0; i-- {
		dst = append(dst, groups[i])
	}
	return dst
}

// DecodeOID parses the DER content octets of an OBJECT IDENTIFIER back into
// its components.
func DecodeOID(value []byte) (OID, error) {
	if len(value) == 0 {
		return OID{}, ErrMalformedOID
	}

	var components []uint64
	first := true
	var current uint64
	inGroup := false

	for _, b := range value {
		current = current<<7 | uint64(b&0x7f)
		inGroup = true
		if b&0x80 != 0 {
			continue
		}

		if first {
			// Undo 40*a + b: a is 0, 1, or 2.
			a := uint64(0)
			switch {
			case current < 40:
				a = 0
			case current < 80:
				a = 1
			default:
				a = 2
			}
			components = append(components, a, current-a*40)
			first = false
		} else {
			components = append(components, current)
		}
		current = 0
		inGroup = false
	}

	if inGroup {
		return OID{}, fmt.Errorf("%w: truncated subidentifier", ErrMalformedOID)
	}

	return OID{Components: components}, nil
}

// WriteOID appends a DER OBJECT IDENTIFIER TLV for o to w.
func WriteOID(w *bytes.Buffer, o OID) {
	WriteTLV(w, TagOID, EncodeOID(o))
}

// ReadOID reads one OBJECT IDENTIFIER TLV from r.
func ReadOID(r *bytes.Reader) (OID, error) {
	tlv, err := ReadTLV(r)
	if err != nil {
		return OID{}, err
	}
	if tlv.Tag != TagOID {
		return OID{}, errors.New("der: expected OBJECT IDENTIFIER tag")
	}
	return DecodeOID(tlv.Value)
}
