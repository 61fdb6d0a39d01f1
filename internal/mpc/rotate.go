package mpc

// RotateMessage1 is party 1's commitment to its half of the rotation
// randomness, the Blum coin-flipping protocol's first message.
type RotateMessage1 struct {
	Commitment []byte `json:"commitment"`
}

// RotateWitness1 is the opening kept back from RotateMessage1.
type RotateWitness1 struct {
	Blind  []byte  `json:"blind"`
	Random *Scalar `json:"random"`
}

// RotateFirst generates party 1's half of the coin-flip randomness and
// commits to it before party 2 reveals its own half, so neither party can
// bias the combined result.
func RotateFirst() (*RotateMessage1, *RotateWitness1, error) {
	random1, err := RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	blind, err := RandomBytes(32)
	if err != nil {
		return nil, nil, err
	}
	commitment := Commit(random1.BigInt().Bytes(), blind)

	return &RotateMessage1{Commitment: commitment}, &RotateWitness1{Blind: blind, Random: random1}, nil
}

// RotateMessage2 reveals party 1's half of the coin flip.
type RotateMessage2 struct {
	Random *Scalar `json:"random"`
	Blind  []byte  `json:"blind"`
}

// RotateSecond reveals party 1's half of the coin flip and combines it with
// party 2's revealed half to derive the shared rotation scalar random1.
func RotateSecond(w *RotateWitness1, party2Random *Scalar) (*RotateMessage2, *Scalar) {
	return &RotateMessage2{Random: w.Random, Blind: w.Blind}, w.Random.Add(party2Random)
}

// RotationMessage1 acknowledges that party 1 has derived its rotated
// private share; it carries no secret material.
type RotationMessage1 struct{}

// RotatePartyOneFirst re-keys party 1's Paillier ciphertext to the rotated
// share x1' = x1 + random1, matching the glossary's (x1, x2) -> (x1+r,
// x2-r) re-randomization.
func RotatePartyOneFirst(priv *Party1Private, random1 *Scalar) (*RotationMessage1, *Party1Private) {
	rotatedShare := priv.SecretShare.Add(random1)
	rotatedCiphertext := priv.Paillier.AddPlaintext(priv.EncryptedSecretShare, random1.BigInt())

	rotated := &Party1Private{
		SecretShare:          rotatedShare,
		Paillier:             priv.Paillier,
		EncryptedSecretShare: rotatedCiphertext,
	}
	return &RotationMessage1{}, rotated
}

// RotatePartyOneSecond decrypts the rotated ciphertext to alpha and commits
// to it, the same PDL commit shape as KeygenThird but over party 1's
// rotated share.
func RotatePartyOneSecond(_ *Party2PDLFirstMessage, rotatedPriv *Party1Private) (*Party1PDLFirstMessage, *PDLDecommit, *Scalar, error) {
	alpha := NewScalar(rotatedPriv.Paillier.Decrypt(rotatedPriv.EncryptedSecretShare))

	blind, err := RandomBytes(32)
	if err != nil {
		return nil, nil, nil, err
	}
	commitment := Commit(alpha.BigInt().Bytes(), blind)

	return &Party1PDLFirstMessage{Commitment: commitment}, &PDLDecommit{Blind: blind}, alpha, nil
}

// RotatePartyOneThird checks party 2's PDL challenge decommitment against
// RotatePartyOneSecond's commitment and, on success, assembles the rotated
// MasterKey. Callers must not persist the returned MasterKey until this
// function returns without error, so a failed rotation never partially
// overwrites the active share.
func RotatePartyOneThird(
	_ *RotationMessage1,
	rotatedPriv *Party1Private,
	party2First *Party2PDLFirstMessage,
	party2Second *Party2PDLSecondMessage,
	decommit *PDLDecommit,
	alpha *Scalar,
	mk *MasterKey,
	party2PublicAfterRotation *Point,
) (*Party1PDLSecondMessage, *MasterKey, error) {
	if !VerifyCommit(party2First.Commitment, party2Second.Challenge, party2Second.Blind) {
		return nil, nil, ErrVerification
	}

	rotatedPublic1 := ScalarBaseMul(rotatedPriv.SecretShare)
	rotated := NewMasterKey(rotatedPriv, rotatedPublic1, party2PublicAfterRotation, mk.ChainCode)
	rotated.ChildIndex = mk.ChildIndex

	msg := &Party1PDLSecondMessage{Alpha: alpha, Blind: decommit.Blind}
	return msg, rotated, nil
}
