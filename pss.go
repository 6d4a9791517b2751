package rsapkcs1

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/arcspec/rsapkcs1/internal/bigutil"
	"github.com/arcspec/rsapkcs1/internal/mgf1"
	"github.com/arcspec/rsapkcs1/internal/psscore"
)

// SignatureParams is the sum type section 9 calls for in place of runtime
// instanceof dispatch on the signature scheme; PKCS #1 v2.2 names only
// PSS, so this package carries a single variant and leaves room for more.
type SignatureParams struct {
	PssHash HashFunc
	MgfHash HashFunc
	SaltLen int
}

// Sign implements the Sign facade of section 4.9: PSS-encode H(M),
// OS2IP, blind, RSASP1, unblind, I2OSP.
func Sign(priv *PrivateKey, message []byte, params SignatureParams) ([]byte, error) {
	if err := priv.validateBase(); err != nil {
		return nil, err
	}

	pssHash, ok := params.PssHash.New()
	if !ok {
		return nil, errorf("Sign", ErrIllegalArgument)
	}
	mgfHash, ok := params.MgfHash.New()
	if !ok {
		return nil, errorf("Sign", ErrIllegalArgument)
	}

	h := pssHash()
	h.Write(message)
	mHash := h.Sum(nil)

	emBits := priv.N.BitLen() - 1
	em, err := psscore.Encode(rand.Reader, mHash, emBits, params.SaltLen, pssHash, mgfHash)
	if err != nil {
		if errors.Is(err, mgf1.ErrMaskTooLong) {
			return nil, errorf("Sign", ErrMaskTooLong)
		}
		return nil, errorf("Sign", ErrIllegalArgument)
	}

	m := bigutil.OS2IP(em)

	s, err := priv.blindUnblind(rand.Reader, m, func(blinded *big.Int) (*big.Int, error) {
		return RSASP1(blinded, priv)
	})
	if err != nil {
		return nil, errorf("Sign", err)
	}

	k := priv.Size()
	sig, err := bigutil.I2OSP(s, k)
	if err != nil {
		return nil, errorf("Sign", ErrIntegerTooLarge)
	}
	return sig, nil
}

// Verify implements the Verify facade of section 4.9: length check,
// OS2IP, RSAVP1, I2OSP, PSS-verify.
func Verify(pub *PublicKey, message, signature []byte, params SignatureParams) error {
	if err := pub.validate(); err != nil {
		return err
	}

	k := pub.Size()
	if len(signature) != k {
		return errorf("Verify", ErrInvalidSignature)
	}

	pssHash, ok := params.PssHash.New()
	if !ok {
		return errorf("Verify", ErrIllegalArgument)
	}
	mgfHash, ok := params.MgfHash.New()
	if !ok {
		return errorf("Verify", ErrIllegalArgument)
	}

	s := bigutil.OS2IP(signature)
	m, err := RSAVP1(s, pub)
	if err != nil {
		return errorf("Verify", ErrInvalidSignature)
	}

	emBits := pub.N.BitLen() - 1
	emLen := (emBits + 7) / 8
	em, err := bigutil.I2OSP(m, emLen)
	if err != nil {
		return errorf("Verify", ErrInvalidSignature)
	}

	h := pssHash()
	h.Write(message)
	mHash := h.Sum(nil)

	if err := psscore.Verify(mHash, em, emBits, params.SaltLen, pssHash, mgfHash); err != nil {
		return errorf("Verify", ErrInvalidSignature)
	}
	return nil
}
