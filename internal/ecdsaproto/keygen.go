package ecdsaproto

import (
	"context"

	"github.com/jaydenbeard/gotham-ecdsa/internal/mpc"
	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

// KeygenFirst handles KG1: mints a session, runs the guard, and produces
// party 1's first commitment.
func (o *Orchestrator) KeygenFirst(ctx context.Context, customerID string) (sessionID string, msg *mpc.KeyGenFirstMsg, err error) {
	if o.failKeygenIfActiveShareExists {
		active, err := o.store.HasActiveShare(ctx, customerID)
		if err != nil {
			return "", nil, &StorageError{Err: err}
		}
		if active {
			return "", nil, &AlreadyActiveError{CustomerID: customerID}
		}
	}

	firstMsg, witness, keypair, err := mpc.KeygenFirst()
	if err != nil {
		return "", nil, &CryptoError{Reason: err.Error()}
	}

	sessionID = newSessionID()

	if err := o.save(ctx, customerID, sessionID, storage.KindPOS, uint32(0)); err != nil {
		return "", nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindKeyGenFirstMsg, firstMsg); err != nil {
		return "", nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindCommWitness, witness); err != nil {
		return "", nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindEcKeyPair, keypair); err != nil {
		return "", nil, err
	}

	return sessionID, firstMsg, nil
}

// KeygenSecond handles KG2.
func (o *Orchestrator) KeygenSecond(ctx context.Context, customerID, sessionID string, party2Proof *mpc.DLogProof) (*mpc.KeyGenParty1Message2, error) {
	if err := o.save(ctx, customerID, sessionID, storage.KindParty2Public, party2Proof.PK); err != nil {
		return nil, err
	}

	var witness mpc.CommWitness
	if err := o.load(ctx, customerID, sessionID, storage.KindCommWitness, &witness); err != nil {
		return nil, err
	}
	var keypair mpc.EcKeyPair
	if err := o.load(ctx, customerID, sessionID, storage.KindEcKeyPair, &keypair); err != nil {
		return nil, err
	}

	secondMsg, paillier, priv, err := mpc.KeygenSecond(&witness, &keypair, party2Proof)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindPaillierKeyPair, paillier); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindParty1Private, priv); err != nil {
		return nil, err
	}

	return secondMsg, nil
}

// KeygenThird handles KG3.
func (o *Orchestrator) KeygenThird(ctx context.Context, customerID, sessionID string, party2First *mpc.Party2PDLFirstMessage) (*mpc.Party1PDLFirstMessage, error) {
	var priv mpc.Party1Private
	if err := o.load(ctx, customerID, sessionID, storage.KindParty1Private, &priv); err != nil {
		return nil, err
	}

	thirdMsg, decommit, alpha, err := mpc.KeygenThird(party2First, &priv)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindPDLDecommit, decommit); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindAlpha, alpha); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindParty2PDLFirstMsg, party2First); err != nil {
		return nil, err
	}

	return thirdMsg, nil
}

// KeygenFourth handles KG4.
func (o *Orchestrator) KeygenFourth(ctx context.Context, customerID, sessionID string, party2Second *mpc.Party2PDLSecondMessage) (*mpc.Party1PDLSecondMessage, error) {
	var priv mpc.Party1Private
	if err := o.load(ctx, customerID, sessionID, storage.KindParty1Private, &priv); err != nil {
		return nil, err
	}
	var decommit mpc.PDLDecommit
	if err := o.load(ctx, customerID, sessionID, storage.KindPDLDecommit, &decommit); err != nil {
		return nil, err
	}
	var party2First mpc.Party2PDLFirstMessage
	if err := o.load(ctx, customerID, sessionID, storage.KindParty2PDLFirstMsg, &party2First); err != nil {
		return nil, err
	}
	var alpha mpc.Scalar
	if err := o.load(ctx, customerID, sessionID, storage.KindAlpha, &alpha); err != nil {
		return nil, err
	}

	fourthMsg, err := mpc.KeygenFourth(&party2First, party2Second, &priv, &decommit, &alpha)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	return fourthMsg, nil
}

// ChainCodeFirst handles CC1.
func (o *Orchestrator) ChainCodeFirst(ctx context.Context, customerID, sessionID string) (*Party1CCFirstMessage, error) {
	firstMsg, witness, err := mpc.ChainCodeFirst()
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}

	if err := o.save(ctx, customerID, sessionID, storage.KindCCKeyGenFirstMsg, firstMsg); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindCCCommWitness, witness); err != nil {
		return nil, err
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindCCEcKeyPair, witness.Point); err != nil {
		return nil, err
	}

	return firstMsg, nil
}

// ChainCodeSecond handles CC2: completes the chain-code round, then
// atomically commits the session by assembling and persisting MasterKey.
func (o *Orchestrator) ChainCodeSecond(ctx context.Context, customerID, sessionID string, party2Proof *mpc.DLogProof) (*Party1CCSecondMessage, error) {
	var witness mpc.ChainCodeWitness
	if err := o.load(ctx, customerID, sessionID, storage.KindCCCommWitness, &witness); err != nil {
		return nil, err
	}

	revealedPoint, blind, chainCode, err := mpc.ChainCodeSecond(&witness, party2Proof.PK)
	if err != nil {
		return nil, &CryptoError{Reason: err.Error()}
	}
	if err := o.save(ctx, customerID, sessionID, storage.KindCC, chainCode); err != nil {
		return nil, err
	}

	var party2Public mpc.Point
	if err := o.load(ctx, customerID, sessionID, storage.KindParty2Public, &party2Public); err != nil {
		return nil, err
	}
	var priv mpc.Party1Private
	if err := o.load(ctx, customerID, sessionID, storage.KindParty1Private, &priv); err != nil {
		return nil, err
	}
	var keypair mpc.EcKeyPair
	if err := o.load(ctx, customerID, sessionID, storage.KindEcKeyPair, &keypair); err != nil {
		return nil, err
	}

	masterKey := mpc.NewMasterKey(&priv, keypair.PublicShare, &party2Public, chainCode)
	if err := o.save(ctx, customerID, sessionID, storage.KindMasterKey, masterKey); err != nil {
		return nil, err
	}

	return &Party1CCSecondMessage{Point: revealedPoint, Blind: blind}, nil
}
