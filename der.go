package rsapkcs1

import (
	"bytes"
	"crypto/subtle"
	"math/big"

	"github.com/arcspec/rsapkcs1/internal/der"
)

// oidEqualConstantTime compares two OIDs' DER encodings with
// crypto/subtle, per section 4.10's "algorithm OID equality (constant-time
// compare)" requirement.
func oidEqualConstantTime(a, b der.OID) bool {
	return subtle.ConstantTimeCompare(der.EncodeOID(a), der.EncodeOID(b)) == 1
}

// rsaEncryptionOID is the PKCS #1 algorithm identifier 1.2.840.113549.1.1.1,
// used inside a PKCS #8 PrivateKeyInfo wrapper.
var rsaEncryptionOID = mustParseOID("1.2.840.113549.1.1.1")

func mustParseOID(s string) der.OID {
	oid, err := der.ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// ConstructOID validates s as a dotted-decimal object identifier: at least
// two components, a first component <= 2, and a second component <= 39. It
// returns s unchanged on success, per section 4.10's OID validation rules.
func ConstructOID(s string) (string, error) {
	if _, err := der.ParseOID(s); err != nil {
		return "", errorf("ConstructOID", ErrOIDError)
	}
	return s, nil
}

// EncodePublicKeyPKCS1 encodes pub as PKCS #1 RSAPublicKey: SEQ { INT n,
// INT e }.
func EncodePublicKeyPKCS1(pub *PublicKey) ([]byte, error) {
	if err := pub.validate(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	der.WriteInteger(&body, pub.N)
	der.WriteInteger(&body, pub.E)

	var out bytes.Buffer
	der.WriteTLV(&out, der.TagSequence, body.Bytes())
	return out.Bytes(), nil
}

// DecodePublicKeyPKCS1 decodes a PKCS #1 RSAPublicKey.
func DecodePublicKeyPKCS1(data []byte) (*PublicKey, error) {
	r := bytes.NewReader(data)
	body, err := der.ReadSequenceBody(r)
	if err != nil {
		return nil, errorf("DecodePublicKeyPKCS1", ErrKeyDecodingError)
	}

	n, err := der.ReadInteger(body)
	if err != nil {
		return nil, errorf("DecodePublicKeyPKCS1", ErrKeyDecodingError)
	}
	e, err := der.ReadInteger(body)
	if err != nil {
		return nil, errorf("DecodePublicKeyPKCS1", ErrKeyDecodingError)
	}

	pub := &PublicKey{N: n, E: e}
	if err := pub.validate(); err != nil {
		return nil, errorf("DecodePublicKeyPKCS1", ErrKeyInvalid)
	}
	return pub, nil
}

// EncodePrivateKeyPKCS1 encodes priv as PKCS #1 RSAPrivateKey (two-prime,
// version 0). Non-CRT private keys are unsupported: see DESIGN.md for why
// this package does not emit NULL-valued CRT placeholders.
func EncodePrivateKeyPKCS1(priv *PrivateKey) ([]byte, error) {
	if err := priv.validateBase(); err != nil {
		return nil, err
	}
	if priv.crt == nil {
		return nil, errorf("EncodePrivateKeyPKCS1", ErrKeyEncodingError)
	}

	var body bytes.Buffer
	der.WriteInteger(&body, big.NewInt(0))
	der.WriteInteger(&body, priv.N)
	der.WriteInteger(&body, priv.E)
	der.WriteInteger(&body, priv.D)
	der.WriteInteger(&body, priv.P)
	der.WriteInteger(&body, priv.Q)
	der.WriteInteger(&body, priv.crt.DP)
	der.WriteInteger(&body, priv.crt.DQ)
	der.WriteInteger(&body, priv.crt.QInv)

	var out bytes.Buffer
	der.WriteTLV(&out, der.TagSequence, body.Bytes())
	return out.Bytes(), nil
}

// DecodePrivateKeyPKCS1 decodes a PKCS #1 RSAPrivateKey. It requires
// version 0 and all three CRT components; a payload whose p, q or CRT
// fields are absent or zero (testable property #6, "anemic keys rejected")
// fails with ErrKeyInvalid.
func DecodePrivateKeyPKCS1(data []byte) (*PrivateKey, error) {
	r := bytes.NewReader(data)
	body, err := der.ReadSequenceBody(r)
	if err != nil {
		return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyDecodingError)
	}

	version, err := der.ReadInteger(body)
	if err != nil {
		return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyDecodingError)
	}
	if version.Sign() != 0 {
		return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyDecodingError)
	}

	fields := make([]*big.Int, 8)
	for i := range fields {
		if i >= 3 && body.Len() == 0 {
			// n, e and d are present but the remaining fields are absent.
			return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyInvalid)
		}
		v, err := der.ReadInteger(body)
		if err != nil {
			return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyDecodingError)
		}
		fields[i] = v
	}
	n, e, d, p, q, dP, dQ, qInv := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6], fields[7]

	for _, f := range fields {
		if f.Sign() == 0 {
			return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyInvalid)
		}
	}

	priv := &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		P:         p,
		Q:         q,
		Reduction: Carmichael,
		crt:       &crtParams{DP: dP, DQ: dQ, QInv: qInv},
	}
	if err := priv.validateBase(); err != nil {
		return nil, errorf("DecodePrivateKeyPKCS1", ErrKeyInvalid)
	}
	return priv, nil
}

// EncodePrivateKeyPKCS8 wraps priv's PKCS #1 encoding in a PKCS #8
// PrivateKeyInfo: SEQ { INT 0, SEQ { OID rsaEncryption, NULL }, OCTSTR(...) }.
func EncodePrivateKeyPKCS8(priv *PrivateKey) ([]byte, error) {
	inner, err := EncodePrivateKeyPKCS1(priv)
	if err != nil {
		return nil, err
	}

	var algID bytes.Buffer
	der.WriteOID(&algID, rsaEncryptionOID)
	der.WriteTLV(&algID, der.TagNull, nil)

	var body bytes.Buffer
	der.WriteInteger(&body, big.NewInt(0))
	der.WriteTLV(&body, der.TagSequence, algID.Bytes())
	der.WriteTLV(&body, der.TagOctetString, inner)

	var out bytes.Buffer
	der.WriteTLV(&out, der.TagSequence, body.Bytes())
	return out.Bytes(), nil
}

// DecodePrivateKeyPKCS8 unwraps a PKCS #8 PrivateKeyInfo and decodes its
// inner PKCS #1 RSAPrivateKey. It enforces version 0 and a
// constant-time-compared algorithm OID match.
func DecodePrivateKeyPKCS8(data []byte) (*PrivateKey, error) {
	r := bytes.NewReader(data)
	body, err := der.ReadSequenceBody(r)
	if err != nil {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}

	version, err := der.ReadInteger(body)
	if err != nil {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}
	if version.Sign() != 0 {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}

	algBody, err := der.ReadSequenceBody(body)
	if err != nil {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}
	oid, err := der.ReadOID(algBody)
	if err != nil {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}
	if !oidEqualConstantTime(oid, rsaEncryptionOID) {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}

	octetTLV, err := der.ReadTLV(body)
	if err != nil || octetTLV.Tag != der.TagOctetString {
		return nil, errorf("DecodePrivateKeyPKCS8", ErrKeyDecodingError)
	}

	priv, err := DecodePrivateKeyPKCS1(octetTLV.Value)
	if err != nil {
		return nil, err
	}
	return priv, nil
}
