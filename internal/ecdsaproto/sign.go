package ecdsaproto

import (
	"context"

	"github.com/jaydenbeard/gotham-ecdsa/internal/mpc"
	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

// SignFirst handles S1: persists party 2's ephemeral commitment and
// produces party 1's own.
func (o *Orchestrator) SignFirst(ctx context.Context, customerID, sessionID string, party2Msg *Party2EphKeyGenFirstMsg) (*Party1EphKeyGenFirstMsg, error) {
	var masterKey mpc.MasterKey
	if err := o.load(ctx, customerID, sessionID, storage.KindMasterKey, &masterKey); err != nil {
		return nil, err
	}

	firstMsg, _, keypair, err := mpc.SignFirst()
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindEphKeyGenFirstMsg, party2Msg); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindEphEcKeyPair, keypair); err != nil {
		return nil, err
	}

	return firstMsg, nil
}

// SignSecond handles S2: derives the requested child key, completes the
// signature, and returns it. No artifact from this round needs to survive.
func (o *Orchestrator) SignSecond(ctx context.Context, customerID, sessionID string, req *SignSecondMsgRequest) (*SignatureResponse, error) {
	var masterKey mpc.MasterKey
	if err := o.load(ctx, customerID, sessionID, storage.KindMasterKey, &masterKey); err != nil {
		return nil, err
	}

	level1, err := masterKey.DeriveChild(req.XPosChildKey)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}
	child, err := level1.DeriveChild(req.YPosChildKey)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	var keypair mpc.EphemeralKeyPair
	if err := o.load(ctx, customerID, sessionID, storage.KindEphEcKeyPair, &keypair); err != nil {
		return nil, err
	}

	// req.Message is not consumed directly: party 2 already folds the
	// digest into its homomorphically-combined partial signature before
	// encrypting it under party 1's Paillier public key.
	sig, err := mpc.SignSecond(&keypair, nil, req.PartyTwoSignMessage.EphPublicShare, req.PartyTwoSignMessage.DLogProof, child.Party1, req.PartyTwoSignMessage.PartialSig)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	return &SignatureResponse{R: sig.R, S: sig.S, RecID: sig.RecID}, nil
}
