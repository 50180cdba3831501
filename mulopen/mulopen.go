// Package mulopen implements the multiply and open protocol: given
// verifiable shares of two secrets a and b, together with a random zero
// sharing used to mask the product, the parties jointly reconstruct a*b
// without revealing a or b individually. Each party's contribution is
// accompanied by a zero-knowledge proof that it was computed correctly,
// so a single party cannot corrupt the output undetected.
package mulopen

import (
	"fmt"

	"github.com/renproject/mpc-core/mulopen/mulzkp"
	"github.com/renproject/mpc-core/params"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
)

// A MulOpener is a state machine that drives one invocation of the multiply
// and open protocol to completion.
type MulOpener struct {
	shareBufs []shamir.Shares

	batchSize, k                                           uint32
	aCommitmentBatch, bCommitmentBatch, rzgCommitmentBatch []shamir.Commitment

	prms *params.Parameters
}

// New returns a new MulOpener state machine along with the initial message
// batch that is to be broadcast to the other parties. The state machine
// handles its own message before being returned, so the caller never needs
// to feed its own output back in.
//
// aShareBatch and bShareBatch are this party's verifiable shares of the two
// batches of secrets being multiplied. rzgShareBatch is this party's share
// of a batch of random zero sharings with threshold 2k-1, used to mask the
// degree-doubling that multiplication causes.
func New(
	aShareBatch, bShareBatch, rzgShareBatch shamir.VerifiableShares,
	aCommitmentBatch, bCommitmentBatch, rzgCommitmentBatch []shamir.Commitment,
	prms *params.Parameters,
) (MulOpener, []Message) {
	if !params.ValidPedersenParameter(prms.H) {
		panic("insecure choice of pedersen parameter")
	}

	batchSize := len(aShareBatch)
	if batchSize < 1 {
		panic(fmt.Sprintf("batch size should be at least 1: got %v", batchSize))
	}
	if len(bShareBatch) != batchSize ||
		len(rzgShareBatch) != batchSize ||
		len(aCommitmentBatch) != batchSize ||
		len(bCommitmentBatch) != batchSize ||
		len(rzgCommitmentBatch) != batchSize {
		panic("inconsistent batch size")
	}

	k := aCommitmentBatch[0].Len()
	if k < 2 {
		panic(fmt.Sprintf("k should be at least 2: got %v", k))
	}
	for i := 0; i < batchSize; i++ {
		if aCommitmentBatch[i].Len() != k || bCommitmentBatch[i].Len() != k {
			panic("inconsistent threshold (k)")
		}
	}
	for _, com := range rzgCommitmentBatch {
		if com.Len() != 2*k-1 {
			panic(fmt.Sprintf("incorrect rzg k: expected 2*%v-1 = %v, got %v", k, 2*k-1, com.Len()))
		}
	}

	index := aShareBatch[0].Share.Index
	for _, aShare := range aShareBatch {
		if !aShare.Share.Index.Eq(&index) {
			panic(fmt.Sprintf("incorrect a_index: expected %v, got %v", index, aShare.Share.Index))
		}
	}
	for _, bShare := range bShareBatch {
		if !bShare.Share.Index.Eq(&index) {
			panic(fmt.Sprintf("incorrect b_index: expected %v, got %v", index, bShare.Share.Index))
		}
	}
	for _, rzgShare := range rzgShareBatch {
		if !rzgShare.Share.Index.Eq(&index) {
			panic(fmt.Sprintf("incorrect z_index: expected %v, got %v", index, rzgShare.Share.Index))
		}
	}

	shareBufs := make([]shamir.Shares, batchSize)
	for i := range shareBufs {
		shareBufs[i] = make(shamir.Shares, 0, 2*k-1)
	}

	mulopener := MulOpener{
		shareBufs:          shareBufs,
		batchSize:          uint32(batchSize),
		k:                  uint32(2*k - 1),
		aCommitmentBatch:   aCommitmentBatch,
		bCommitmentBatch:   bCommitmentBatch,
		rzgCommitmentBatch: rzgCommitmentBatch,
		prms:               prms,
	}

	var product secp256k1.Fn
	messageBatch := make([]Message, batchSize)
	for i := 0; i < batchSize; i++ {
		product.Mul(&aShareBatch[i].Share.Value, &bShareBatch[i].Share.Value)
		tau := secp256k1.RandomFn()
		aShareCommitment := pedersenCommit(&aShareBatch[i].Share.Value, &aShareBatch[i].Decommitment, &prms.H)
		bShareCommitment := pedersenCommit(&bShareBatch[i].Share.Value, &bShareBatch[i].Decommitment, &prms.H)
		productShareCommitment := pedersenCommit(&product, &tau, &prms.H)
		proof := mulzkp.CreateProof(&prms.H, &aShareCommitment, &bShareCommitment, &productShareCommitment,
			aShareBatch[i].Share.Value, bShareBatch[i].Share.Value,
			aShareBatch[i].Decommitment, bShareBatch[i].Decommitment, tau,
		)
		share := shamir.VerifiableShare{
			Share: shamir.Share{
				Index: index,
				Value: product,
			},
			Decommitment: tau,
		}
		share.Add(&share, &rzgShareBatch[i])
		messageBatch[i] = Message{
			VShare:     share,
			Commitment: productShareCommitment,
			Proof:      proof,
		}
	}

	// Handle our own message immediately; this can never fail or complete
	// the protocol on its own, since the threshold is always at least 3.
	output, err := mulopener.HandleShareBatch(messageBatch)
	if output != nil || err != nil {
		panic("unexpected result handling own message")
	}

	return mulopener, messageBatch
}

// HandleShareBatch applies a state transition upon receiving a message
// batch from another party. Once enough valid shares have been received to
// reconstruct, the output, i.e. the batch of products of the two input
// secrets, is returned. If not enough shares have been received yet, the
// return value is nil with a nil error. If the message batch is invalid in
// any way, a nil value is returned along with a descriptive error.
func (mulopener *MulOpener) HandleShareBatch(messageBatch []Message) ([]secp256k1.Fn, error) {
	if uint32(len(messageBatch)) != mulopener.batchSize {
		return nil, ErrIncorrectBatchSize
	}

	index := messageBatch[0].VShare.Share.Index
	if !mulopener.prms.HasIndex(index) {
		return nil, ErrInvalidIndex
	}
	for i := range messageBatch {
		if !messageBatch[i].VShare.Share.IndexEq(&index) {
			return nil, ErrInconsistentShares
		}
	}
	for _, s := range mulopener.shareBufs[0] {
		if s.IndexEq(&index) {
			return nil, ErrDuplicateIndex
		}
	}

	for i := uint32(0); i < mulopener.batchSize; i++ {
		var shareCommitment secp256k1.Point
		rzgShareCommitment := polyEvalPoint(mulopener.rzgCommitmentBatch[i], index)
		shareCommitment.Add(&messageBatch[i].Commitment, &rzgShareCommitment)

		com := pedersenCommit(
			&messageBatch[i].VShare.Share.Value, &messageBatch[i].VShare.Decommitment,
			&mulopener.prms.H,
		)
		if !shareCommitment.Eq(&com) {
			return nil, ErrInvalidShares
		}

		aShareCommitment := polyEvalPoint(mulopener.aCommitmentBatch[i], index)
		bShareCommitment := polyEvalPoint(mulopener.bCommitmentBatch[i], index)
		if !mulzkp.Verify(
			&mulopener.prms.H, &aShareCommitment, &bShareCommitment, &messageBatch[i].Commitment,
			&messageBatch[i].Proof,
		) {
			return nil, ErrInvalidZKP
		}
	}

	// The message batch is valid, so add its shares to the buffers.
	for i := range mulopener.shareBufs {
		mulopener.shareBufs[i] = append(mulopener.shareBufs[i], messageBatch[i].VShare.Share)
	}

	// If we have enough shares, reconstruct.
	if uint32(len(mulopener.shareBufs[0])) == mulopener.k {
		secrets := make([]secp256k1.Fn, mulopener.batchSize)
		for i, buf := range mulopener.shareBufs {
			secrets[i] = shamir.Open(buf)
		}
		return secrets, nil
	}

	return nil, nil
}

// polyEvalPoint evaluates, in the exponent, the polynomial whose
// coefficients are given by commitment, at the given index.
func polyEvalPoint(commitment shamir.Commitment, index secp256k1.Fn) secp256k1.Point {
	acc := commitment[len(commitment)-1]
	for l := len(commitment) - 2; l >= 0; l-- {
		acc.Scale(&acc, &index)
		acc.Add(&acc, &commitment[l])
	}
	return acc
}

// pedersenCommit computes ped(h, value, decommitment) = g^value * h^decommitment.
func pedersenCommit(value, decommitment *secp256k1.Fn, h *secp256k1.Point) secp256k1.Point {
	var commitment, hPow secp256k1.Point
	commitment.BaseExp(value)
	hPow.Scale(h, decommitment)
	commitment.Add(&commitment, &hPow)
	return commitment
}
