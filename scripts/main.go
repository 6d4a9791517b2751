package main

import (
	"crypto/rand"
	"fmt"

	"github.com/arcspec/rsapkcs1"
)

func main() {
	fmt.Println("runnin...")

	priv, err := rsapkcs1.Generate(rand.Reader, rsapkcs1.GenerateParams{
		NLen:      2048,
		Reduction: rsapkcs1.Carmichael,
		Policy:    rsapkcs1.DEFAULT,
	})
	if err != nil {
		panic(err)
	}

	params := rsapkcs1.OAEPParams{LabelHash: rsapkcs1.SHA256, MGFHash: rsapkcs1.SHA256}
	message := "hello world"

	ciphertext, err := rsapkcs1.Encrypt(&priv.PublicKey, []byte(message), params)
	if err != nil {
		panic(err)
	}

	plaintext, err := rsapkcs1.Decrypt(priv, ciphertext, params)
	if err != nil {
		panic(err)
	}

	if string(plaintext) != message {
		panic("round-trip mismatch")
	}

	fmt.Println("you done it!")
}
