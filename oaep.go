package rsapkcs1

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/arcspec/rsapkcs1/internal/bigutil"
	"github.com/arcspec/rsapkcs1/internal/mgf1"
	"github.com/arcspec/rsapkcs1/internal/oaepcore"
)

// OAEPParams parameterizes Encrypt/Decrypt. The zero value selects SHA-1
// for both LabelHash and MGFHash, since SHA1 is HashFunc's zero value.
type OAEPParams struct {
	LabelHash HashFunc
	MGFHash   HashFunc
}

// Encrypt implements the Encrypt facade of section 4.9: OAEP-encode M,
// OS2IP, RSAEP, I2OSP.
func Encrypt(pub *PublicKey, message []byte, params OAEPParams) ([]byte, error) {
	if err := pub.validate(); err != nil {
		return nil, err
	}

	lHash, err := EmptyLabelHash(params.LabelHash)
	if err != nil {
		return nil, errorf("Encrypt", ErrIllegalArgument)
	}
	mgfHash, ok := params.MGFHash.New()
	if !ok {
		return nil, errorf("Encrypt", ErrIllegalArgument)
	}

	k := pub.Size()
	em, err := oaepcore.Encode(rand.Reader, message, k, lHash, mgfHash)
	if err != nil {
		return nil, wrapOAEPEncodeErr(err)
	}

	m := bigutil.OS2IP(em)
	c, err := RSAEP(m, pub)
	if err != nil {
		return nil, errorf("Encrypt", err)
	}

	ct, err := bigutil.I2OSP(c, k)
	if err != nil {
		return nil, errorf("Encrypt", ErrIntegerTooLarge)
	}
	return ct, nil
}

// Decrypt implements the Decrypt facade of section 4.9: OS2IP, blind,
// RSADP (CRT), unblind, I2OSP, OAEP-decode.
func Decrypt(priv *PrivateKey, ciphertext []byte, params OAEPParams) ([]byte, error) {
	if err := priv.validateBase(); err != nil {
		return nil, err
	}

	lHash, err := EmptyLabelHash(params.LabelHash)
	if err != nil {
		return nil, errorf("Decrypt", ErrIllegalArgument)
	}
	mgfHash, ok := params.MGFHash.New()
	if !ok {
		return nil, errorf("Decrypt", ErrIllegalArgument)
	}

	k := priv.Size()
	if len(ciphertext) != k {
		return nil, errorf("Decrypt", ErrDecryptionError)
	}

	c := bigutil.OS2IP(ciphertext)

	m, err := priv.blindUnblind(rand.Reader, c, func(blinded *big.Int) (*big.Int, error) {
		return RSADP(blinded, priv)
	})
	if err != nil {
		return nil, errorf("Decrypt", err)
	}

	em, err := bigutil.I2OSP(m, k)
	if err != nil {
		return nil, errorf("Decrypt", ErrDecryptionError)
	}

	message, err := oaepcore.Decode(em, k, lHash, mgfHash)
	if err != nil {
		return nil, errorf("Decrypt", ErrDecryptionError)
	}
	return message, nil
}

func wrapOAEPEncodeErr(err error) error {
	switch {
	case errors.Is(err, oaepcore.ErrMessageTooLong):
		return errorf("Encrypt", ErrMessageTooLong)
	case errors.Is(err, mgf1.ErrMaskTooLong):
		return errorf("Encrypt", ErrMaskTooLong)
	default:
		return errorf("Encrypt", err)
	}
}
