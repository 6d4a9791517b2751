package rsapkcs1

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// toStdlibPrivateKey converts a Generate()'d key into a crypto/rsa.PrivateKey
// for interop testing. It only works for keys small enough that E fits an
// int, which holds for DEFAULT-policy keys (e = 65537).
func toStdlibPrivateKey(priv *PrivateKey) *rsa.PrivateKey {
	stdPriv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: priv.N, E: int(priv.E.Int64())},
		D:         priv.D,
		Primes:    []*big.Int{priv.P, priv.Q},
	}
	stdPriv.Precompute()
	return stdPriv
}

// Testable property #11 and scenario S4: interop with crypto/rsa and
// crypto/x509.
var _ = Describe("Interop with the standard library", func() {
	It("cross-decrypts OAEP ciphertext with crypto/rsa", func() {
		priv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Carmichael, Policy: DEFAULT})
		Expect(err).NotTo(HaveOccurred())
		stdPriv := toStdlibPrivateKey(priv)

		message := []byte("hello world")
		params := OAEPParams{LabelHash: SHA256, MGFHash: SHA256}

		ciphertext, err := Encrypt(&priv.PublicKey, message, params)
		Expect(err).NotTo(HaveOccurred())

		plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, stdPriv, ciphertext, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(plaintext).To(Equal(message))

		ciphertext2, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &stdPriv.PublicKey, message, nil)
		Expect(err).NotTo(HaveOccurred())

		plaintext2, err := Decrypt(priv, ciphertext2, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(plaintext2).To(Equal(message))
	})

	It("cross-verifies PSS signatures with crypto/rsa", func() {
		priv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Carmichael, Policy: DEFAULT})
		Expect(err).NotTo(HaveOccurred())
		stdPriv := toStdlibPrivateKey(priv)

		message := []byte("hello world")
		digest := sha256.Sum256(message)
		sigParams := SignatureParams{PssHash: SHA256, MgfHash: SHA256, SaltLen: 32}
		pssOpts := &rsa.PSSOptions{SaltLength: 32, Hash: crypto.SHA256}

		sig, err := Sign(priv, message, sigParams)
		Expect(err).NotTo(HaveOccurred())
		Expect(rsa.VerifyPSS(&stdPriv.PublicKey, crypto.SHA256, digest[:], sig, pssOpts)).To(Succeed())

		sig2, err := stdPriv.Sign(rand.Reader, digest[:], pssOpts)
		Expect(err).NotTo(HaveOccurred())
		Expect(Verify(&priv.PublicKey, message, sig2, sigParams)).To(Succeed())
	})

	It("round-trips PKCS #8 private keys with crypto/x509", func() {
		stdPriv, err := rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).NotTo(HaveOccurred())

		stdPKCS8, err := x509.MarshalPKCS8PrivateKey(stdPriv)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := DecodePrivateKeyPKCS8(stdPKCS8)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.N.Cmp(stdPriv.N)).To(Equal(0))
		Expect(decoded.D.Cmp(stdPriv.D)).To(Equal(0))

		ourPriv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Carmichael, Policy: DEFAULT})
		Expect(err).NotTo(HaveOccurred())

		ourPKCS8, err := EncodePrivateKeyPKCS8(ourPriv)
		Expect(err).NotTo(HaveOccurred())

		parsed, err := x509.ParsePKCS8PrivateKey(ourPKCS8)
		Expect(err).NotTo(HaveOccurred())

		parsedRSA, ok := parsed.(*rsa.PrivateKey)
		Expect(ok).To(BeTrue())
		Expect(parsedRSA.N.Cmp(ourPriv.N)).To(Equal(0))
		Expect(parsedRSA.D.Cmp(ourPriv.D)).To(Equal(0))
	})
})
