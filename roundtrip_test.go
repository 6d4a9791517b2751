package rsapkcs1

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arcspec/rsapkcs1/internal/bigutil"
)

func mustSum(h hash.Hash) []byte {
	return h.Sum(nil)
}

// runEncryptDecryptRoundTrip exercises testable property #1 for one
// reduction/policy/hash combination.
func runEncryptDecryptRoundTrip(reduction Reduction, policy ExponentPolicy, nlen int, labelHash HashFunc) {
	It("round-trips a message through OAEP encrypt/decrypt", func() {
		priv, err := Generate(rand.Reader, GenerateParams{NLen: nlen, Reduction: reduction, Policy: policy})
		Expect(err).NotTo(HaveOccurred())

		params := OAEPParams{LabelHash: labelHash, MGFHash: labelHash}
		message := []byte("hello world")

		ciphertext, err := Encrypt(&priv.PublicKey, message, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(ciphertext).To(HaveLen(priv.Size()))

		plaintext, err := Decrypt(priv, ciphertext, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(plaintext).To(Equal(message))
	})
}

// runSignVerifyRoundTrip exercises testable property #2.
func runSignVerifyRoundTrip(reduction Reduction, policy ExponentPolicy, nlen int, pssHash HashFunc, saltLen int) {
	It("round-trips a message through PSS sign/verify", func() {
		priv, err := Generate(rand.Reader, GenerateParams{NLen: nlen, Reduction: reduction, Policy: policy})
		Expect(err).NotTo(HaveOccurred())

		message := []byte("hello world")
		sigParams := SignatureParams{PssHash: pssHash, MgfHash: pssHash, SaltLen: saltLen}

		sig, err := Sign(priv, message, sigParams)
		Expect(err).NotTo(HaveOccurred())
		Expect(sig).To(HaveLen(priv.Size()))

		err = Verify(&priv.PublicKey, message, sig, sigParams)
		Expect(err).NotTo(HaveOccurred())
	})
}

var _ = Describe("Round trips", func() {
	for _, reduction := range []Reduction{Carmichael, Euler} {
		reduction := reduction
		label := "Carmichael"
		if reduction == Euler {
			label = "Euler"
		}

		Context(fmt.Sprintf("%s reduction, DEFAULT exponent", label), func() {
			runEncryptDecryptRoundTrip(reduction, DEFAULT, 1024, SHA256)
			runSignVerifyRoundTrip(reduction, DEFAULT, 1024, SHA1, 20)
		})
	}

	Context("Euler reduction, RANDOM exponent", func() {
		runEncryptDecryptRoundTrip(Euler, RANDOM, 1024, SHA256)
	})

	// Testable properties #1/#2: coverage across all six supported label,
	// MGF1, and PSS hashes, not just SHA-1/SHA-256. nlen = 2048 so SHA-512's
	// 64-byte digest still fits OAEP's 2*hLen+2 capacity floor.
	Context("All supported hashes", func() {
		for _, h := range []HashFunc{SHA1, SHA256, SHA384, SHA512, SHA512_224, SHA512_256} {
			h := h
			runEncryptDecryptRoundTrip(Carmichael, DEFAULT, 2048, h)
			runSignVerifyRoundTrip(Carmichael, DEFAULT, 2048, h, 20)
		}
	})

	// Testable property #12: EmptyLabelHash matches H("") for every
	// supported hash.
	Context("EmptyLabelHash", func() {
		DescribeTable("matches the hash's own digest of the empty string",
			func(h HashFunc, want []byte) {
				got, err := EmptyLabelHash(h)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			},
			Entry("SHA-1", SHA1, mustSum(sha1.New())),
			Entry("SHA-256", SHA256, mustSum(sha256.New())),
			Entry("SHA-384", SHA384, mustSum(sha512.New384())),
			Entry("SHA-512", SHA512, mustSum(sha512.New())),
			Entry("SHA-512/224", SHA512_224, mustSum(sha512.New512_224())),
			Entry("SHA-512/256", SHA512_256, mustSum(sha512.New512_256())),
		)
	})

	// Scenario S1: Carmichael 2048, OAEP-SHA256 "hello world".
	Context("Scenario S1", func() {
		It("encrypts and decrypts 'hello world' with OAEP-SHA256 under a Carmichael 2048-bit key", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Carmichael, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			params := OAEPParams{LabelHash: SHA256, MGFHash: SHA256}
			ciphertext, err := Encrypt(&priv.PublicKey, []byte("hello world"), params)
			Expect(err).NotTo(HaveOccurred())

			plaintext, err := Decrypt(priv, ciphertext, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(plaintext)).To(Equal("hello world"))
		})
	})

	// Scenario S2: Euler 2048 RANDOM exponent policy.
	Context("Scenario S2", func() {
		It("encrypts and decrypts under a Euler 2048-bit key with RANDOM exponent policy", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Euler, Policy: RANDOM})
			Expect(err).NotTo(HaveOccurred())

			params := OAEPParams{LabelHash: SHA256, MGFHash: SHA256}
			ciphertext, err := Encrypt(&priv.PublicKey, []byte("hello world"), params)
			Expect(err).NotTo(HaveOccurred())

			plaintext, err := Decrypt(priv, ciphertext, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(plaintext)).To(Equal("hello world"))
		})
	})

	// Scenario S3: PSS-SHA1/MGF1-SHA1/sLen=20, signature length = 256 bytes.
	Context("Scenario S3", func() {
		It("produces a 256-byte PSS-SHA1 signature over a 2048-bit key", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Carmichael, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			sig, err := Sign(priv, []byte("hello world"), SignatureParams{PssHash: SHA1, MgfHash: SHA1, SaltLen: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(sig).To(HaveLen(256))
		})
	})

	// Testable property #8: exponent coprimality for e = 65537.
	Context("Exponent coprimality", func() {
		It("produces e coprime to both lambda(n) and phi(n)", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Carmichael, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			lambda := reductionModulus(priv.P, priv.Q, Carmichael)
			phi := reductionModulus(priv.P, priv.Q, Euler)

			Expect(new(big.Int).GCD(nil, nil, priv.E, lambda).Cmp(big.NewInt(1))).To(Equal(0))
			Expect(new(big.Int).GCD(nil, nil, priv.E, phi).Cmp(big.NewInt(1))).To(Equal(0))
		})
	})

	// Testable property #9: RANDOM_STRICT strict range at nlen = 2048.
	Context("RANDOM_STRICT strict range", func() {
		It("keeps e odd and in (2^16, 2^256) and bitlen(n) exactly 2048", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Carmichael, Policy: RANDOM_STRICT})
			Expect(err).NotTo(HaveOccurred())

			Expect(priv.N.BitLen()).To(Equal(2048))
			Expect(priv.E.Bit(0)).To(Equal(uint(1)))

			lowerBound := new(big.Int).Lsh(big.NewInt(1), 16)
			upperBound := new(big.Int).Lsh(big.NewInt(1), 256)
			Expect(priv.E.Cmp(lowerBound)).To(BeNumerically(">", 0))
			Expect(priv.E.Cmp(upperBound)).To(BeNumerically("<", 0))

			dLowerBound := new(big.Int).Lsh(big.NewInt(1), 1024)
			Expect(priv.D.Cmp(dLowerBound)).To(BeNumerically(">", 0))
		})

		It("rejects RANDOM_STRICT under Euler reduction", func() {
			_, err := Generate(rand.Reader, GenerateParams{NLen: 2048, Reduction: Euler, Policy: RANDOM_STRICT})
			Expect(err).To(HaveOccurred())
			Expect(err).To(MatchError(ErrIllegalArgument))
		})
	})

	// Testable property #10: blinding stability across repeated decryptions.
	Context("Blinding stability", func() {
		It("returns the identical plaintext across ten consecutive decryptions", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Carmichael, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			params := OAEPParams{LabelHash: SHA256, MGFHash: SHA256}
			ciphertext, err := Encrypt(&priv.PublicKey, []byte("stable plaintext"), params)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				plaintext, err := Decrypt(priv, ciphertext, params)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(plaintext)).To(Equal("stable plaintext"))
			}
		})
	})

	// DerivePublic agrees with the public key produced alongside the
	// private key during generation.
	Context("DerivePublic", func() {
		It("recomputes the same e from d, p, q", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Carmichael, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			pub, err := DerivePublic(priv.D, priv.P, priv.Q, Carmichael)
			Expect(err).NotTo(HaveOccurred())
			Expect(pub.E.Cmp(priv.E)).To(Equal(0))
			Expect(pub.N.Cmp(priv.N)).To(Equal(0))
		})
	})

	// Grounded on the teacher's congruentModN helper: d is the modular
	// inverse of e under the chosen reduction.
	Context("Congruence of d and e", func() {
		It("satisfies d*e == 1 mod lambda(n) for Carmichael keys", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Carmichael, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			lambda := reductionModulus(priv.P, priv.Q, Carmichael)
			product := new(big.Int).Mul(priv.D, priv.E)
			Expect(bigutil.CongruentMod(product, big.NewInt(1), lambda)).To(BeTrue())
		})

		It("satisfies d*e == 1 mod phi(n) for Euler keys", func() {
			priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Euler, Policy: DEFAULT})
			Expect(err).NotTo(HaveOccurred())

			phi := reductionModulus(priv.P, priv.Q, Euler)
			product := new(big.Int).Mul(priv.D, priv.E)
			Expect(bigutil.CongruentMod(product, big.NewInt(1), phi)).To(BeTrue())
		})
	})
})
