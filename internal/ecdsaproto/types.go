package ecdsaproto

import (
	"math/big"

	"github.com/jaydenbeard/gotham-ecdsa/internal/mpc"
)

// Wire types named to match the HTTP surface's request/response bodies.
// Where a round's body is exactly one mpc primitive type, handlers accept
// or return that type directly instead of wrapping it.

// Party1CCFirstMessage is CC1's response: party 1's chain-code commitment.
type Party1CCFirstMessage = mpc.ChainCodeCommitment

// Party1CCSecondMessage is CC2's response: party 1's revealed chain-code
// contribution point.
type Party1CCSecondMessage struct {
	Point *mpc.Point `json:"point"`
	Blind []byte     `json:"blind"`
}

// Party2EphKeyGenFirstMsg is S1's request body: party 2's ephemeral
// commitment for this signature.
type Party2EphKeyGenFirstMsg struct {
	Commitment []byte `json:"commitment"`
}

// Party1EphKeyGenFirstMsg is S1's response: party 1's own ephemeral
// commitment.
type Party1EphKeyGenFirstMsg = mpc.SignMessage1

// PartyTwoSignMessage carries party 2's revealed ephemeral point, its DLog
// proof of knowledge of k2, and its Paillier-encrypted partial signature.
type PartyTwoSignMessage struct {
	EphPublicShare *mpc.Point     `json:"ephemeral_public_share"`
	DLogProof      *mpc.DLogProof `json:"dlog_proof"`
	PartialSig     *big.Int       `json:"partial_sig"`
}

// SignSecondMsgRequest is S2's request body.
type SignSecondMsgRequest struct {
	Message             *big.Int            `json:"message"`
	PartyTwoSignMessage PartyTwoSignMessage `json:"party_two_sign_message"`
	XPosChildKey        uint32              `json:"x_pos_child_key"`
	YPosChildKey        uint32              `json:"y_pos_child_key"`
}

// SignatureResponse is S2's response.
type SignatureResponse struct {
	R     *big.Int `json:"r"`
	S     *big.Int `json:"s"`
	RecID int      `json:"recid"`
}

// Party1CoinFlipFirst is R1's response.
type Party1CoinFlipFirst = mpc.RotateMessage1

// Party2CoinFlipFirst is R2's request body: party 2's half of the coin
// flip, revealed directly since party 2's own commit-reveal step is
// modeled internally by the mpc library.
type Party2CoinFlipFirst struct {
	Random *mpc.Scalar `json:"random"`
}

// Party1CoinFlipSecond is half of R2's response: party 1's revealed half
// of the coin flip.
type Party1CoinFlipSecond = mpc.RotateMessage2

// RotationParty1Message1 is the other half of R2's response.
type RotationParty1Message1 = mpc.RotationMessage1

// RotateSecondResponse bundles R2's paired response per the HTTP surface's
// `[Party1CoinFlipSecond, RotationParty1Message1]` shape.
type RotateSecondResponse struct {
	CoinFlip *Party1CoinFlipSecond   `json:"coin_flip"`
	Rotation *RotationParty1Message1 `json:"rotation"`
}
