// Command rsapkcs1keygen generates an RSA key pair from a YAML policy file
// and writes the private key (PKCS #8) and public key (PKCS #1) to disk.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arcspec/rsapkcs1"
)

// policy describes a key-generation request in YAML, e.g.:
//
//	nlen: 2048
//	reduction: carmichael
//	exponentPolicy: default
//	privateKeyOut: private.pk8
//	publicKeyOut: public.pk1
type policy struct {
	NLen           int    `yaml:"nlen"`
	Reduction      string `yaml:"reduction"`
	ExponentPolicy string `yaml:"exponentPolicy"`
	PrivateKeyOut  string `yaml:"privateKeyOut"`
	PublicKeyOut   string `yaml:"publicKeyOut"`
}

func (p policy) reduction() (rsapkcs1.Reduction, error) {
	switch p.Reduction {
	case "", "carmichael":
		return rsapkcs1.Carmichael, nil
	case "euler":
		return rsapkcs1.Euler, nil
	default:
		return 0, fmt.Errorf("rsapkcs1keygen: unrecognized reduction %q", p.Reduction)
	}
}

func (p policy) exponentPolicy() (rsapkcs1.ExponentPolicy, error) {
	switch p.ExponentPolicy {
	case "", "default":
		return rsapkcs1.DEFAULT, nil
	case "random":
		return rsapkcs1.RANDOM, nil
	case "random_strict":
		return rsapkcs1.RANDOM_STRICT, nil
	default:
		return 0, fmt.Errorf("rsapkcs1keygen: unrecognized exponent policy %q", p.ExponentPolicy)
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML key-generation policy file")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: rsapkcs1keygen -config policy.yaml")
		os.Exit(2)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("rsapkcs1keygen: reading config: %w", err)
	}

	var p policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("rsapkcs1keygen: parsing config: %w", err)
	}
	if p.NLen == 0 {
		p.NLen = 2048
	}

	reduction, err := p.reduction()
	if err != nil {
		return err
	}
	expPolicy, err := p.exponentPolicy()
	if err != nil {
		return err
	}

	priv, err := rsapkcs1.Generate(rand.Reader, rsapkcs1.GenerateParams{
		NLen:      p.NLen,
		Reduction: reduction,
		Policy:    expPolicy,
	})
	if err != nil {
		return fmt.Errorf("rsapkcs1keygen: generating key: %w", err)
	}

	if p.PrivateKeyOut != "" {
		pkcs8, err := rsapkcs1.EncodePrivateKeyPKCS8(priv)
		if err != nil {
			return fmt.Errorf("rsapkcs1keygen: encoding private key: %w", err)
		}
		if err := os.WriteFile(p.PrivateKeyOut, pkcs8, 0o600); err != nil {
			return fmt.Errorf("rsapkcs1keygen: writing private key: %w", err)
		}
	}

	if p.PublicKeyOut != "" {
		pkcs1, err := rsapkcs1.EncodePublicKeyPKCS1(&priv.PublicKey)
		if err != nil {
			return fmt.Errorf("rsapkcs1keygen: encoding public key: %w", err)
		}
		if err := os.WriteFile(p.PublicKeyOut, pkcs1, 0o644); err != nil {
			return fmt.Errorf("rsapkcs1keygen: writing public key: %w", err)
		}
	}

	fmt.Printf("generated %d-bit key (n has %d octets)\n", p.NLen, priv.Size())
	return nil
}
