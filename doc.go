/*
Package rsapkcs1 implements a subset of RSA cryptography from PKCS #1 v2.2:
key generation under the Carmichael and Euler reduction domains, OAEP
encryption, PSS signatures, and DER encoding of PKCS #1 / PKCS #8 keys.

# Overview

Generate a key and round-trip a message through OAEP:

	priv, err := rsapkcs1.Generate(rand.Reader, rsapkcs1.GenerateParams{
	    NLen:      2048,
	    Reduction: rsapkcs1.Carmichael,
	    Policy:    rsapkcs1.DEFAULT,
	})
	if err != nil {
	    return err
	}

	params := rsapkcs1.OAEPParams{LabelHash: rsapkcs1.SHA256, MGFHash: rsapkcs1.SHA256}
	ciphertext, err := rsapkcs1.Encrypt(&priv.PublicKey, []byte("hello world"), params)
	if err != nil {
	    return err
	}
	plaintext, err := rsapkcs1.Decrypt(priv, ciphertext, params)

Signing uses PSS in the same style:

	sigParams := rsapkcs1.SignatureParams{
	    PssHash: rsapkcs1.SHA1, MgfHash: rsapkcs1.SHA1, SaltLen: 20,
	}
	sig, err := rsapkcs1.Sign(priv, message, sigParams)
	err = rsapkcs1.Verify(&priv.PublicKey, message, sig, sigParams)

# Carmichael vs. Euler reduction

Generate accepts a Reduction naming which modular-reduction domain the
private exponent is derived under: Carmichael reduces modulo
lcm(p-1, q-1), Euler modulo (p-1)(q-1). Both are valid RSA key domains;
RANDOM_STRICT exponent selection is only defined for Carmichael.

# Blinding

Every private-key operation blinds its input with a per-key Kocher
blinding pair before the modular exponentiation and unblinds the result
after, to resist timing side-channels. The blinding pair is lazily
derived on first use and refreshed by squaring rather than rederiving it
on every subsequent use; see blinding.go.

# Side-channel posture

OAEP decoding and PSS verification walk their input to completion and
fold every check into one accumulated flag rather than returning as soon
as a check fails, so that neither timing nor the returned error
distinguishes which check failed. Callers must not attempt to recover
that information from the error returned by Decrypt or Verify.

# Sources

	[1] RFC 8017, PKCS #1: RSA Cryptography Specifications Version 2.2
*/
package rsapkcs1
