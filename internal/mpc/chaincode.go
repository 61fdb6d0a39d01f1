package mpc

import (
	"crypto/sha256"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

// ChainCodeCommitment is party 1's commitment to its chain-code contribution
// point, mirroring the keygen commit-reveal shape.
type ChainCodeCommitment struct {
	Commitment []byte `json:"commitment"`
}

// ChainCodeWitness is the opening kept back from ChainCodeCommitment.
type ChainCodeWitness struct {
	Blind []byte `json:"blind"`
	Point *Point `json:"point"`
}

// ChainCodeFirst generates party 1's chain-code contribution and commits to
// it, the same shape as KeygenFirst but over a throwaway scalar used only to
// seed the joint chain code.
func ChainCodeFirst() (*ChainCodeCommitment, *ChainCodeWitness, error) {
	seed, err := RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	point := ScalarBaseMul(seed)

	blind, err := RandomBytes(32)
	if err != nil {
		return nil, nil, err
	}
	commitment := Commit(point.Bytes(), blind)

	return &ChainCodeCommitment{Commitment: commitment}, &ChainCodeWitness{Blind: blind, Point: point}, nil
}

// ChainCodeSecond reveals party 1's contribution and combines it with party
// 2's to derive the joint 32-byte chain code via HKDF over their shared
// point (w.Point + party2Point).
func ChainCodeSecond(w *ChainCodeWitness, party2Point *Point) (revealedPoint *Point, blind []byte, chainCode []byte, err error) {
	shared := w.Point.Add(party2Point)
	chainCode, err = deriveChainCode(shared)
	if err != nil {
		return nil, nil, nil, err
	}
	return w.Point, w.Blind, chainCode, nil
}

func deriveChainCode(shared *Point) ([]byte, error) {
	kdf := hkdf.New(sha256.New, shared.Bytes(), nil, []byte("gotham-chaincode"))
	out := make([]byte, 32)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MasterKey bundles the complete long-term material party 1 holds for one
// customer's threshold key: its secret share and its Paillier encryption,
// the joint public key, and the chain code used for non-hardened child
// derivation.
type MasterKey struct {
	Party1       *Party1Private `json:"party1"`
	Party1Public *Point         `json:"party1_public"`
	Party2Public *Point         `json:"party2_public"`
	JointPublic  *Point         `json:"joint_public"`
	ChainCode    []byte         `json:"chain_code"`
	ChildIndex   uint32         `json:"child_index"`
}

// NewMasterKey assembles a MasterKey from the completed keygen and
// chain-code rounds.
func NewMasterKey(priv *Party1Private, party1Public, party2Public *Point, chainCode []byte) *MasterKey {
	joint := party1Public.Add(party2Public)
	return &MasterKey{
		Party1:       priv,
		Party1Public: party1Public,
		Party2Public: party2Public,
		JointPublic:  joint,
		ChainCode:    chainCode,
	}
}

// DeriveChild derives the non-hardened child at index from mk. Only party
// 1's share and public point are tweaked; party 2's share is untouched, and
// the joint public key shifts by tweak*G so party 2 can independently
// re-derive the same child public key from its own untouched share and the
// shared chain code.
func (mk *MasterKey) DeriveChild(index uint32) (*MasterKey, error) {
	tweak, err := childTweak(mk.ChainCode, mk.JointPublic, index)
	if err != nil {
		return nil, err
	}

	childShare := mk.Party1.SecretShare.Add(tweak)
	childPublic1 := mk.Party1Public.Add(ScalarBaseMul(tweak))
	childCiphertext := mk.Party1.Paillier.AddPlaintext(mk.Party1.EncryptedSecretShare, tweak.BigInt())

	childPriv := &Party1Private{
		SecretShare:          childShare,
		Paillier:             mk.Party1.Paillier,
		EncryptedSecretShare: childCiphertext,
	}

	child := NewMasterKey(childPriv, childPublic1, mk.Party2Public, mk.ChainCode)
	child.ChildIndex = index
	return child, nil
}

// childTweak derives the BIP32-style non-hardened tweak scalar for index
// from the chain code and current joint public key.
func childTweak(chainCode []byte, parentPublic *Point, index uint32) (*Scalar, error) {
	info := []byte{byte(index >> 24), byte(index >> 16), byte(index >> 8), byte(index)}
	kdf := hkdf.New(sha256.New, append(parentPublic.Bytes(), chainCode...), nil, info)
	out := make([]byte, 32)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, err
	}
	return NewScalar(new(big.Int).SetBytes(out)), nil
}
