package rsapkcs1

import (
	"crypto/rand"
	"math/big"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Blinding", func() {
	It("serializes concurrent decryptions of the same key without corrupting the result", func() {
		priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Carmichael, Policy: DEFAULT})
		Expect(err).NotTo(HaveOccurred())

		params := OAEPParams{LabelHash: SHA256, MGFHash: SHA256}
		ciphertext, err := Encrypt(&priv.PublicKey, []byte("shared key, many goroutines"), params)
		Expect(err).NotTo(HaveOccurred())

		const workers = 8
		results := make([][]byte, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			i := i
			go func() {
				defer wg.Done()
				results[i], errs[i] = Decrypt(priv, ciphertext, params)
			}()
		}
		wg.Wait()

		for i := 0; i < workers; i++ {
			Expect(errs[i]).NotTo(HaveOccurred())
			Expect(string(results[i])).To(Equal("shared key, many goroutines"))
		}
	})

	It("leaves the blinding pair invariant vi == (vf^-1)^e mod n intact after a refresh", func() {
		priv, err := Generate(rand.Reader, GenerateParams{NLen: 1024, Reduction: Carmichael, Policy: DEFAULT})
		Expect(err).NotTo(HaveOccurred())

		Expect(priv.ensureBlind(rand.Reader)).To(Succeed())
		priv.blindMu.dirty = true
		priv.refreshIfDirty()

		vfInv := new(big.Int).ModInverse(priv.blindMu.vf, priv.N)
		Expect(vfInv).NotTo(BeNil())
		want := new(big.Int).Exp(vfInv, priv.E, priv.N)
		Expect(priv.blindMu.vi.Cmp(want)).To(Equal(0))
	})
})
