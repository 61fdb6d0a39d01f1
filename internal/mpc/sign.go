package mpc

import "math/big"

// SignMessage1 is party 1's first signing round message: its ephemeral
// commitment R1 and a DLog proof of k1, the same commit-then-prove shape as
// keygen but over a fresh per-signature nonce.
type SignMessage1 struct {
	Commitment []byte `json:"commitment"`
}

// SignWitness1 is the opening kept back from SignMessage1 until party 2
// reveals its own ephemeral point.
type SignWitness1 struct {
	Blind []byte     `json:"blind"`
	Proof *DLogProof `json:"proof"`
}

// EphemeralKeyPair is the ephemeral nonce k1 and its public point R1.
type EphemeralKeyPair struct {
	K1 *Scalar `json:"k1"`
	R1 *Point  `json:"r1"`
}

// SignFirst generates party 1's fresh ephemeral nonce for one signature and
// commits to it, mirroring KeygenFirst's commit-reveal shape.
func SignFirst() (*SignMessage1, *SignWitness1, *EphemeralKeyPair, error) {
	k1, err := RandomScalar()
	if err != nil {
		return nil, nil, nil, err
	}
	proof, err := ProveDLog(k1)
	if err != nil {
		return nil, nil, nil, err
	}
	blind, err := RandomBytes(32)
	if err != nil {
		return nil, nil, nil, err
	}
	commitment := Commit(proof.PK.Bytes(), blind)

	msg := &SignMessage1{Commitment: commitment}
	witness := &SignWitness1{Blind: blind, Proof: proof}
	kp := &EphemeralKeyPair{K1: k1, R1: proof.PK}
	return msg, witness, kp, nil
}

// Signature is a completed ECDSA signature over secp256k1, with the
// recovery id needed to recover the joint public key from (r, s) alone.
type Signature struct {
	R     *big.Int `json:"r"`
	S     *big.Int `json:"s"`
	RecID int      `json:"rec_id"`
}

// SignSecond completes the signature given party 2's revealed ephemeral
// point R2, its DLog proof, and its Paillier-encrypted partial signature
// c3 = Enc(k2^-1 * (H(m) + r*x2) + rho*n) for a random rho it chose (the
// Lindell construction that lets party 1 finish the signature from its own
// Paillier keypair without ever learning x2 or k2).
//
// The combined nonce is multiplicative: k = k1*k2, so R = k2^-1 * R1... in
// practice party 1 computes R = k1*R2 = k1*k2*G and r = R.X mod N, then
// decrypts c3 under its own Paillier private key and divides out k1 to
// recover s = k^-1 * (H(m) + r*x) mod N.
func SignSecond(ephemeral *EphemeralKeyPair, _ *SignWitness1, party2R2 *Point, party2Proof *DLogProof, priv *Party1Private, c3 *big.Int) (*Signature, error) {
	if !party2Proof.Verify() {
		return nil, ErrVerification
	}

	r1 := ScalarBaseMul(ephemeral.K1)
	if !r1.Equal(ephemeral.R1) {
		return nil, ErrVerification
	}

	R := party2R2.Mul(ephemeral.K1)
	r := new(big.Int).Mod(R.X, N)
	if r.Sign() == 0 {
		return nil, ErrVerification
	}

	s3 := priv.Paillier.Decrypt(c3)

	k1Inv := ephemeral.K1.Inv()
	s := new(big.Int).Mod(new(big.Int).Mul(k1Inv.BigInt(), s3), N)

	halfN := new(big.Int).Rsh(N, 1)
	recID := 0
	if R.Y.Bit(0) == 1 {
		recID = 1
	}
	if s.Cmp(halfN) == 1 {
		s = new(big.Int).Sub(N, s)
		recID ^= 1
	}

	return &Signature{R: r, S: s, RecID: recID}, nil
}
