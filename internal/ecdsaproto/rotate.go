package ecdsaproto

import (
	"context"

	"github.com/jaydenbeard/gotham-ecdsa/internal/mpc"
	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

// RotateFirst handles R1.
func (o *Orchestrator) RotateFirst(ctx context.Context, customerID, sessionID string) (*Party1CoinFlipFirst, error) {
	msg1, witness, err := mpc.RotateFirst()
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindRotateCommitMessage1M, witness.Blind); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindRotateCommitMessage1R, witness.Random); err != nil {
		return nil, err
	}

	return msg1, nil
}

// RotateSecond handles R2: combines the coin flip, then immediately starts
// the PDL sub-protocol by deriving party 1's rotated private share.
func (o *Orchestrator) RotateSecond(ctx context.Context, customerID, sessionID string, party2CoinFlip *Party2CoinFlipFirst) (*RotateSecondResponse, error) {
	var masterKey mpc.MasterKey
	if err := o.load(ctx, customerID, sessionID, storage.KindMasterKey, &masterKey); err != nil {
		return nil, err
	}
	var blind []byte
	if err := o.load(ctx, customerID, sessionID, storage.KindRotateCommitMessage1M, &blind); err != nil {
		return nil, err
	}
	var random1Self mpc.Scalar
	if err := o.load(ctx, customerID, sessionID, storage.KindRotateCommitMessage1R, &random1Self); err != nil {
		return nil, err
	}

	witness := &mpc.RotateWitness1{Blind: blind, Random: &random1Self}
	coinFlipMsg, random1 := mpc.RotateSecond(witness, party2CoinFlip.Random)

	if err := o.save(ctx, customerID, sessionID, storage.KindRotateRandom1, random1); err != nil {
		return nil, err
	}

	rotationMsg1, privNew := mpc.RotatePartyOneFirst(masterKey.Party1, random1)

	if err := o.save(ctx, customerID, sessionID, storage.KindRotateFirstMsg, rotationMsg1); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindRotatePrivateNew, privNew); err != nil {
		return nil, err
	}

	return &RotateSecondResponse{CoinFlip: coinFlipMsg, Rotation: rotationMsg1}, nil
}

// RotateThird handles R3: overwrites Alpha (rotation's legitimate exception
// to write-once) with the rotated share's opened value.
func (o *Orchestrator) RotateThird(ctx context.Context, customerID, sessionID string, party2First *mpc.Party2PDLFirstMessage) (*mpc.Party1PDLFirstMessage, error) {
	var privNew mpc.Party1Private
	if err := o.load(ctx, customerID, sessionID, storage.KindRotatePrivateNew, &privNew); err != nil {
		return nil, err
	}

	thirdMsg, decommit, alpha, err := mpc.RotatePartyOneSecond(party2First, &privNew)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindAlpha, alpha); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindRotatePdlDecom, decommit); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindRotateParty2First, party2First); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindRotateParty1Second, thirdMsg); err != nil {
		return nil, err
	}

	return thirdMsg, nil
}

// RotateFourth handles R4: on success, overwrites MasterKey atomically (I4)
// — the old key is only ever replaced after the PDL check succeeds, never
// before.
func (o *Orchestrator) RotateFourth(ctx context.Context, customerID, sessionID string, party2Second *mpc.Party2PDLSecondMessage) (*mpc.Party1PDLSecondMessage, error) {
	var masterKey mpc.MasterKey
	if err := o.load(ctx, customerID, sessionID, storage.KindMasterKey, &masterKey); err != nil {
		return nil, err
	}
	var rotationMsg1 mpc.RotationMessage1
	if err := o.load(ctx, customerID, sessionID, storage.KindRotateFirstMsg, &rotationMsg1); err != nil {
		return nil, err
	}
	var privNew mpc.Party1Private
	if err := o.load(ctx, customerID, sessionID, storage.KindRotatePrivateNew, &privNew); err != nil {
		return nil, err
	}
	var random1 mpc.Scalar
	if err := o.load(ctx, customerID, sessionID, storage.KindRotateRandom1, &random1); err != nil {
		return nil, err
	}
	var party2First mpc.Party2PDLFirstMessage
	if err := o.load(ctx, customerID, sessionID, storage.KindRotateParty2First, &party2First); err != nil {
		return nil, err
	}
	var decommit mpc.PDLDecommit
	if err := o.load(ctx, customerID, sessionID, storage.KindRotatePdlDecom, &decommit); err != nil {
		return nil, err
	}
	var alpha mpc.Scalar
	if err := o.load(ctx, customerID, sessionID, storage.KindAlpha, &alpha); err != nil {
		return nil, err
	}

	// Party 2 re-randomizes its own share by subtracting the same random1,
	// so its public contribution after rotation shifts by -random1*G.
	party2PublicAfterRotation := masterKey.Party2Public.Add(mpc.ScalarBaseMul(random1.Negate()))

	fourthMsg, rotatedMasterKey, err := mpc.RotatePartyOneThird(
		&rotationMsg1, &privNew, &party2First, party2Second, &decommit, &alpha, &masterKey, party2PublicAfterRotation,
	)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindMasterKey, rotatedMasterKey); err != nil {
		return nil, err
	}

	return fourthMsg, nil
}
