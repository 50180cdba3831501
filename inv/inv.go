// Package inv implements the inversion protocol: given verifiable shares of
// a secret a, the parties jointly compute verifiable shares of a^-1 without
// ever reconstructing a. The protocol masks a with a random secret r (whose
// shares are assumed already dealt, e.g. by rng), opens the masked value a*r
// via mulopen, and then rescales the shares and commitment of r by the
// inverse of the opened value.
package inv

import (
	"github.com/renproject/mpc-core/mulopen"
	"github.com/renproject/mpc-core/params"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
)

// An Inverter is a state machine that drives one invocation of the
// inversion protocol to completion.
type Inverter struct {
	mulopener        mulopen.MulOpener
	rShareBatch      shamir.VerifiableShares
	rCommitmentBatch []shamir.Commitment
}

// New returns a new Inverter state machine along with the initial message
// batch that is to be broadcast to the other parties. The state machine
// handles its own message before being returned.
//
// aShareBatch is this party's verifiable shares of the batch of secrets to
// be inverted. rShareBatch is this party's shares of a batch of random
// secrets used to mask a, and rzgShareBatch is this party's shares of a
// batch of random zero sharings with threshold 2k-1, as required by mulopen.
func New(
	aShareBatch, rShareBatch, rzgShareBatch shamir.VerifiableShares,
	aCommitmentBatch, rCommitmentBatch, rzgCommitmentBatch []shamir.Commitment,
	prms *params.Parameters,
) (Inverter, []mulopen.Message) {
	rShareBatchCopy := make(shamir.VerifiableShares, len(rShareBatch))
	rCommitmentBatchCopy := make([]shamir.Commitment, len(rCommitmentBatch))
	copy(rShareBatchCopy, rShareBatch)
	copy(rCommitmentBatchCopy, rCommitmentBatch)

	mulopener, messages := mulopen.New(
		aShareBatch, rShareBatch, rzgShareBatch,
		aCommitmentBatch, rCommitmentBatch, rzgCommitmentBatch,
		prms,
	)
	inverter := Inverter{
		mulopener:        mulopener,
		rShareBatch:      rShareBatchCopy,
		rCommitmentBatch: rCommitmentBatchCopy,
	}
	return inverter, messages
}

// HandleMulOpenMessageBatch applies a state transition upon receiving a
// mulopen message batch from another party. Once enough valid messages have
// been received to complete the underlying multiply and open, the shares
// and commitments of the multiplicative inverse of the input secret are
// computed and returned. If not enough messages have been received, the
// return value is nil. If the message batch is invalid in any way, an
// error is returned along with nil values.
func (inverter *Inverter) HandleMulOpenMessageBatch(messageBatch []mulopen.Message) (
	shamir.VerifiableShares, []shamir.Commitment, error,
) {
	output, err := inverter.mulopener.HandleShareBatch(messageBatch)
	if err != nil {
		return nil, nil, err
	}
	if output == nil {
		return nil, nil, nil
	}
	invShares := TransformMulOpenOutput(inverter.rShareBatch, output)
	invCommitments := TransformMulOpenCommitments(output, inverter.rCommitmentBatch)
	return invShares, invCommitments, nil
}

// TransformMulOpenOutput computes the shares of the multiplicative inverses
// of a batch of secrets, given this party's shares of the masking secrets r
// and the opened masked values a*r. It is the pure computation at the heart
// of the inversion protocol, exposed separately so that it can be reused by
// callers that drive the underlying mulopen instance themselves.
func TransformMulOpenOutput(
	rShareBatch shamir.VerifiableShares,
	openedMaskedValues []secp256k1.Fn,
) shamir.VerifiableShares {
	invShares := make(shamir.VerifiableShares, len(openedMaskedValues))

	var inv secp256k1.Fn
	for i := range openedMaskedValues {
		inv.Inverse(&openedMaskedValues[i])
		invShares[i].Scale(&rShareBatch[i], &inv)
	}
	return invShares
}

// TransformMulOpenCommitments computes the commitments corresponding to the
// shares returned by TransformMulOpenOutput.
func TransformMulOpenCommitments(
	openedMaskedValues []secp256k1.Fn,
	rCommitmentBatch []shamir.Commitment,
) []shamir.Commitment {
	invCommitments := make([]shamir.Commitment, len(openedMaskedValues))

	var inv secp256k1.Fn
	for i := range openedMaskedValues {
		invCommitments[i] = shamir.NewCommitmentWithCapacity(rCommitmentBatch[i].Len())
		inv.Inverse(&openedMaskedValues[i])
		invCommitments[i].Scale(rCommitmentBatch[i], &inv)
	}
	return invCommitments
}
