package mpc

import "crypto/sha256"

// DLogProof is a non-interactive Schnorr proof of knowledge of the discrete
// log of PK with respect to the base point G.
type DLogProof struct {
	PK        *Point  `json:"pk"`
	Witness   *Point  `json:"witness"`
	Challenge *Scalar `json:"challenge"`
	Response  *Scalar `json:"response"`
}

// ProveDLog produces a Schnorr proof that the caller knows x such that
// PK = x*G.
func ProveDLog(x *Scalar) (*DLogProof, error) {
	pk := ScalarBaseMul(x)

	r, err := RandomScalar()
	if err != nil {
		return nil, err
	}
	witness := ScalarBaseMul(r)

	challenge := fiatShamirChallenge(pk, witness)
	response := r.Add(challenge.Mul(x))

	return &DLogProof{PK: pk, Witness: witness, Challenge: challenge, Response: response}, nil
}

// Verify checks the proof's internal consistency: response*G should equal
// witness + challenge*PK, and the challenge must be the Fiat-Shamir hash of
// (PK, witness) rather than an attacker-chosen value.
func (p *DLogProof) Verify() bool {
	if !p.Challenge.Equal(fiatShamirChallenge(p.PK, p.Witness)) {
		return false
	}
	lhs := ScalarBaseMul(p.Response)
	rhs := p.Witness.Add(p.PK.Mul(p.Challenge))
	return lhs.Equal(rhs)
}

func fiatShamirChallenge(points ...*Point) *Scalar {
	h := sha256.New()
	for _, p := range points {
		h.Write(p.Bytes())
	}
	return NewScalarFromBytes(h.Sum(nil))
}
