package mpc

import "math/big"

// EcKeyPair is an ephemeral or long-term EC key pair held by one party.
type EcKeyPair struct {
	SecretShare *Scalar `json:"secret_share"`
	PublicShare *Point  `json:"public_share"`
}

// KeyGenFirstMsg is party 1's first keygen message: a commitment to its
// public share and DLog proof, not yet revealed.
type KeyGenFirstMsg struct {
	Commitment []byte `json:"commitment"`
}

// CommWitness is the opening information kept back from KeyGenFirstMsg until
// KG2, together with the DLog proof it commits to.
type CommWitness struct {
	Blind     []byte     `json:"blind"`
	DLogProof *DLogProof `json:"dlog_proof"`
}

// KeyGenParty1Message2 (KG2's response) reveals party 1's commitment.
type KeyGenParty1Message2 struct {
	DLogProof            *DLogProof         `json:"dlog_proof"`
	Blind                []byte             `json:"blind"`
	PaillierPub          *PaillierPublicKey `json:"paillier_public_key"`
	EncryptedSecretShare *big.Int           `json:"encrypted_secret_share"`
}

// Party1Private bundles party 1's long-term secret material: its share, its
// Paillier keypair, and the Paillier encryption of its share that party 2
// uses for the PDL check and, later, joint signing.
type Party1Private struct {
	SecretShare          *Scalar             `json:"secret_share"`
	Paillier             *PaillierPrivateKey `json:"paillier"`
	EncryptedSecretShare *big.Int            `json:"encrypted_secret_share"`
}

// Party2DLogProof is the proof party 2 sends at KG2 of knowledge of its own
// secret share.
type Party2DLogProof = DLogProof

// KeygenFirst generates party 1's ephemeral keygen material and commits to
// it without revealing the public share yet.
func KeygenFirst() (*KeyGenFirstMsg, *CommWitness, *EcKeyPair, error) {
	x1, err := RandomScalar()
	if err != nil {
		return nil, nil, nil, err
	}
	proof, err := ProveDLog(x1)
	if err != nil {
		return nil, nil, nil, err
	}
	blind, err := RandomBytes(32)
	if err != nil {
		return nil, nil, nil, err
	}

	commitment := Commit(proof.PK.Bytes(), blind)

	msg := &KeyGenFirstMsg{Commitment: commitment}
	witness := &CommWitness{Blind: blind, DLogProof: proof}
	keypair := &EcKeyPair{SecretShare: x1, PublicShare: proof.PK}
	return msg, witness, keypair, nil
}

// KeygenSecond verifies party 2's DLog proof, generates party 1's Paillier
// keypair, and reveals party 1's own commitment from KG1.
func KeygenSecond(cw *CommWitness, kp *EcKeyPair, party2Proof *Party2DLogProof) (*KeyGenParty1Message2, *PaillierPrivateKey, *Party1Private, error) {
	if !party2Proof.Verify() {
		return nil, nil, nil, ErrVerification
	}

	paillier, err := GeneratePaillierKeyPair(paillierBits)
	if err != nil {
		return nil, nil, nil, err
	}

	ciphertext, _, err := paillier.Encrypt(kp.SecretShare.BigInt())
	if err != nil {
		return nil, nil, nil, err
	}

	msg := &KeyGenParty1Message2{
		DLogProof:            cw.DLogProof,
		Blind:                cw.Blind,
		PaillierPub:          &paillier.PaillierPublicKey,
		EncryptedSecretShare: ciphertext,
	}
	priv := &Party1Private{
		SecretShare:          kp.SecretShare,
		Paillier:             paillier,
		EncryptedSecretShare: ciphertext,
	}
	return msg, paillier, priv, nil
}

// Party2PDLFirstMessage is party 2's commitment to a random challenge used
// to bind party 1's PDL opening to a value chosen before party 1 responds.
type Party2PDLFirstMessage struct {
	Commitment []byte `json:"commitment"`
}

// Party2PDLSecondMessage reveals party 2's challenge commitment.
type Party2PDLSecondMessage struct {
	Challenge []byte `json:"challenge"`
	Blind     []byte `json:"blind"`
}

// Party1PDLFirstMessage is party 1's commitment to alpha, the opened
// decryption of its encrypted secret share.
type Party1PDLFirstMessage struct {
	Commitment []byte `json:"commitment"`
}

// PDLDecommit is the blinding factor kept back from Party1PDLFirstMessage.
type PDLDecommit struct {
	Blind []byte `json:"blind"`
}

// Party1PDLSecondMessage reveals alpha and the commitment's opening so the
// counterparty can verify alpha*G equals party 1's public share.
type Party1PDLSecondMessage struct {
	Alpha *Scalar `json:"alpha"`
	Blind []byte  `json:"blind"`
}

// KeygenThird decrypts party 1's own Paillier ciphertext of its secret share
// (alpha = Dec(ciphertext)) and commits to the result, completing the first
// half of the PDL range-proof dance.
func KeygenThird(_ *Party2PDLFirstMessage, priv *Party1Private) (*Party1PDLFirstMessage, *PDLDecommit, *Scalar, error) {
	alpha := NewScalar(priv.Paillier.Decrypt(priv.EncryptedSecretShare))

	blind, err := RandomBytes(32)
	if err != nil {
		return nil, nil, nil, err
	}
	commitment := Commit(alpha.BigInt().Bytes(), blind)

	return &Party1PDLFirstMessage{Commitment: commitment}, &PDLDecommit{Blind: blind}, alpha, nil
}

// KeygenFourth checks party 2's challenge decommitment and, if it matches
// the commitment from KeygenThird's counterparty message, opens alpha so the
// counterparty can verify the PDL claim (alpha*G == party 1's public
// share).
func KeygenFourth(party2First *Party2PDLFirstMessage, party2Second *Party2PDLSecondMessage, _ *Party1Private, decommit *PDLDecommit, alpha *Scalar) (*Party1PDLSecondMessage, error) {
	if !VerifyCommit(party2First.Commitment, party2Second.Challenge, party2Second.Blind) {
		return nil, ErrVerification
	}
	return &Party1PDLSecondMessage{Alpha: alpha, Blind: decommit.Blind}, nil
}
