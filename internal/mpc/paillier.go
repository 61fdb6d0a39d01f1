package mpc

import (
	"crypto/rand"
	"math/big"
)

// paillierBits is the bit length of the Paillier modulus N = p*q. Kept
// modest since this implementation exists to exercise the protocol's
// homomorphic-combination contracts, not to be a production-grade key size.
const paillierBits = 1024

// PaillierPublicKey is a Paillier public key (N, N^2, G=N+1).
type PaillierPublicKey struct {
	N  *big.Int
	N2 *big.Int
	G  *big.Int
}

// PaillierPrivateKey is a Paillier private key.
type PaillierPrivateKey struct {
	PaillierPublicKey
	Lambda *big.Int
	Mu     *big.Int
}

// GeneratePaillierKeyPair generates a fresh Paillier keypair.
func GeneratePaillierKeyPair(bits int) (*PaillierPrivateKey, error) {
	var p, q *big.Int
	var err error
	for {
		p, err = rand.Prime(rand.Reader, bits/2)
		if err != nil {
			return nil, err
		}
		q, err = rand.Prime(rand.Reader, bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) != 0 {
			break
		}
	}

	n := new(big.Int).Mul(p, q)
	n2 := new(big.Int).Mul(n, n)
	g := new(big.Int).Add(n, big.NewInt(1))

	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	qMinus1 := new(big.Int).Sub(q, big.NewInt(1))
	lambda := lcm(pMinus1, qMinus1)

	mu := new(big.Int).ModInverse(lambda, n)
	if mu == nil {
		return nil, ErrVerification
	}

	return &PaillierPrivateKey{
		PaillierPublicKey: PaillierPublicKey{N: n, N2: n2, G: g},
		Lambda:            lambda,
		Mu:                mu,
	}, nil
}

func lcm(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	return new(big.Int).Div(new(big.Int).Mul(a, b), gcd)
}

// Encrypt encrypts m under pub, returning the ciphertext and the randomness
// used (callers that don't need the randomness can discard it).
func (pub *PaillierPublicKey) Encrypt(m *big.Int) (*big.Int, *big.Int, error) {
	r, err := rand.Int(rand.Reader, pub.N)
	if err != nil {
		return nil, nil, err
	}
	for r.Sign() == 0 {
		r, err = rand.Int(rand.Reader, pub.N)
		if err != nil {
			return nil, nil, err
		}
	}

	// g^m mod n^2, using g = n+1 so g^m mod n^2 = (1 + m*n) mod n^2.
	gm := new(big.Int).Mod(new(big.Int).Add(big.NewInt(1), new(big.Int).Mul(m, pub.N)), pub.N2)
	rn := new(big.Int).Exp(r, pub.N, pub.N2)
	c := new(big.Int).Mod(new(big.Int).Mul(gm, rn), pub.N2)
	return c, r, nil
}

// AddPlaintext homomorphically adds a known plaintext constant k to the
// value encrypted by c, returning Enc(Dec(c) + k).
func (pub *PaillierPublicKey) AddPlaintext(c, k *big.Int) *big.Int {
	gk := new(big.Int).Mod(new(big.Int).Add(big.NewInt(1), new(big.Int).Mul(k, pub.N)), pub.N2)
	return new(big.Int).Mod(new(big.Int).Mul(c, gk), pub.N2)
}

// MulPlaintext homomorphically scales the value encrypted by c by a known
// plaintext constant k, returning Enc(Dec(c) * k).
func (pub *PaillierPublicKey) MulPlaintext(c, k *big.Int) *big.Int {
	return new(big.Int).Exp(c, new(big.Int).Mod(k, pub.N), pub.N2)
}

// AddCiphertexts homomorphically adds two ciphertexts encrypted under the
// same key, returning Enc(Dec(c1) + Dec(c2)).
func (pub *PaillierPublicKey) AddCiphertexts(c1, c2 *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(c1, c2), pub.N2)
}

// Decrypt recovers the plaintext encrypted in c.
func (priv *PaillierPrivateKey) Decrypt(c *big.Int) *big.Int {
	u := new(big.Int).Exp(c, priv.Lambda, priv.N2)
	l := new(big.Int).Div(new(big.Int).Sub(u, big.NewInt(1)), priv.N)
	return new(big.Int).Mod(new(big.Int).Mul(l, priv.Mu), priv.N)
}
