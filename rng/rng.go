// Package rng implements random (RNG) and random-zero (RZG) sharing
// generation by shares-of-shares: each dealer re-shares its own coordinate
// of a bivariate polynomial to every other party, and OPEN is used to
// reconstruct each party's share of the resulting degree-(k-1) polynomial
// (for RZG, one whose constant term, and hence secret, is zero).
package rng

import (
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"

	"github.com/renproject/mpc-core/open"
	"github.com/renproject/mpc-core/params"
)

// DirectedVShare is a verifiable share bound for a specific recipient. The
// To field is routing information only; it plays no role in verification.
type DirectedVShare struct {
	VShare shamir.VerifiableShare
	To     secp256k1.Fn
}

func polyEvalVShare(coeffShares []shamir.VerifiableShare, index secp256k1.Fn) shamir.VerifiableShare {
	eval := coeffShares[len(coeffShares)-1]
	for i := len(coeffShares) - 2; i >= 0; i-- {
		eval.Scale(&eval, &index)
		eval.Add(&eval, &coeffShares[i])
	}
	return eval
}

func polyEvalCommitment(coeffCommitments []shamir.Commitment, index secp256k1.Fn) shamir.Commitment {
	eval := append(shamir.Commitment(nil), coeffCommitments[len(coeffCommitments)-1]...)
	for i := len(coeffCommitments) - 2; i >= 0; i-- {
		eval.Scale(eval, &index)
		eval.Add(&eval, &coeffCommitments[i])
	}
	return eval
}

func sharesOfSharesRNG(coeffShares []shamir.VerifiableShare, indices []secp256k1.Fn) []DirectedVShare {
	out := make([]DirectedVShare, len(indices))
	for i, index := range indices {
		out[i] = DirectedVShare{VShare: polyEvalVShare(coeffShares, index), To: index}
	}
	return out
}

func sharesOfSharesRZG(coeffShares []shamir.VerifiableShare, indices []secp256k1.Fn) []DirectedVShare {
	out := make([]DirectedVShare, len(indices))
	for i, index := range indices {
		vshare := polyEvalVShare(coeffShares, index)
		vshare.Scale(&vshare, &index)
		out[i] = DirectedVShare{VShare: vshare, To: index}
	}
	return out
}

func initialMessagesBatch(
	coeffSharesBatch [][]shamir.VerifiableShare,
	indices []secp256k1.Fn,
	sharesOfShares func([]shamir.VerifiableShare, []secp256k1.Fn) []DirectedVShare,
) [][]DirectedVShare {
	n := len(indices)
	b := len(coeffSharesBatch)
	directedBatch := make([][]DirectedVShare, n)
	for i := range directedBatch {
		directedBatch[i] = make([]DirectedVShare, 0, b)
	}
	for _, coeffShares := range coeffSharesBatch {
		messages := sharesOfShares(coeffShares, indices)
		for i, message := range messages {
			directedBatch[i] = append(directedBatch[i], message)
		}
	}
	return directedBatch
}

// InitialMessagesBatchRNG computes, for every slot in coeffSharesBatch, the
// n directed shares-of-shares (one per recipient in indices) and groups them
// by recipient: the i-th returned slice is the batch of size B to be sent to
// the party at indices[i].
func InitialMessagesBatchRNG(coeffSharesBatch [][]shamir.VerifiableShare, indices []secp256k1.Fn) [][]DirectedVShare {
	return initialMessagesBatch(coeffSharesBatch, indices, sharesOfSharesRNG)
}

// InitialMessagesBatchRZG is as InitialMessagesBatchRNG, but scales every
// share-of-share by its recipient index, forcing the resulting polynomial's
// constant term (and hence the secret) to zero.
func InitialMessagesBatchRZG(coeffSharesBatch [][]shamir.VerifiableShare, indices []secp256k1.Fn) [][]DirectedVShare {
	return initialMessagesBatch(coeffSharesBatch, indices, sharesOfSharesRZG)
}

func ownCommitmentBatch(
	coeffCommitmentsBatch [][]shamir.Commitment,
	ownIndex secp256k1.Fn,
	eval func([]shamir.Commitment, secp256k1.Fn) shamir.Commitment,
) []shamir.Commitment {
	out := make([]shamir.Commitment, len(coeffCommitmentsBatch))
	for i, coeffCommitments := range coeffCommitmentsBatch {
		out[i] = eval(coeffCommitments, ownIndex)
	}
	return out
}

func commitmentForOwnShareRNG(coeffCommitments []shamir.Commitment, index secp256k1.Fn) shamir.Commitment {
	return polyEvalCommitment(coeffCommitments, index)
}

func commitmentForOwnShareRZG(coeffCommitments []shamir.Commitment, index secp256k1.Fn) shamir.Commitment {
	com := polyEvalCommitment(coeffCommitments, index)
	com.Scale(com, &index)
	return com
}

// OwnCommitmentBatchRNG Horner-evaluates each of the B coefficient
// commitment vectors at this party's own index, yielding the commitment
// that recipients of this party's shares-of-shares will verify against.
func OwnCommitmentBatchRNG(coeffCommitmentsBatch [][]shamir.Commitment, ownIndex secp256k1.Fn) []shamir.Commitment {
	return ownCommitmentBatch(coeffCommitmentsBatch, ownIndex, commitmentForOwnShareRNG)
}

// OwnCommitmentBatchRZG is as OwnCommitmentBatchRNG, additionally scaling
// the evaluated commitment by ownIndex to mirror the RZG share scaling.
func OwnCommitmentBatchRZG(coeffCommitmentsBatch [][]shamir.Commitment, ownIndex secp256k1.Fn) []shamir.Commitment {
	return ownCommitmentBatch(coeffCommitmentsBatch, ownIndex, commitmentForOwnShareRZG)
}

// OutputCommitmentBatchRNG returns, for each of the B slots, the vector whose
// j-th entry is the constant term of the slot's j-th coefficient commitment:
// the commitment of the reconstructed output sharing.
func OutputCommitmentBatchRNG(coeffCommitmentsBatch [][]shamir.Commitment) []shamir.Commitment {
	out := make([]shamir.Commitment, len(coeffCommitmentsBatch))
	for i, coeffCommitments := range coeffCommitmentsBatch {
		com := shamir.NewCommitmentWithCapacity(len(coeffCommitments))
		for _, c := range coeffCommitments {
			com.AppendPoint(c[0])
		}
		out[i] = com
	}
	return out
}

// OutputCommitmentBatchRZG is as OutputCommitmentBatchRNG, but prepends the
// group identity so the output polynomial has constant term zero.
func OutputCommitmentBatchRZG(coeffCommitmentsBatch [][]shamir.Commitment) []shamir.Commitment {
	out := make([]shamir.Commitment, len(coeffCommitmentsBatch))
	for i, coeffCommitments := range coeffCommitmentsBatch {
		com := shamir.NewCommitmentWithCapacity(len(coeffCommitments) + 1)
		com.AppendPoint(infinityPoint())
		for _, c := range coeffCommitments {
			com.AppendPoint(c[0])
		}
		out[i] = com
	}
	return out
}

func infinityPoint() secp256k1.Point {
	var p secp256k1.Point
	zero := secp256k1.NewFnFromU16(0)
	p.BaseExp(&zero)
	return p
}

// HandleDirectedVShareBatch strips the routing tag from each share in the
// batch and delegates to OPEN. On reconstruction, it re-packages each
// resulting (value, decommitment) pair as a VerifiableShare held at this
// party's own index: this party's freshly dealt share of the random (or
// random-zero) sharing, one per batch slot.
func HandleDirectedVShareBatch(
	state *open.State,
	inst *open.InstanceParams,
	prms *params.Parameters,
	directedBatch []DirectedVShare,
) (shamir.VerifiableShares, error) {
	vshareBatch := make(shamir.VerifiableShares, len(directedBatch))
	for i, d := range directedBatch {
		vshareBatch[i] = d.VShare
	}

	openings, err := open.HandleVShareBatch(state, inst, prms, vshareBatch)
	if err != nil {
		return nil, err
	}
	if openings == nil {
		return nil, nil
	}

	out := make(shamir.VerifiableShares, len(openings))
	for i, o := range openings {
		out[i] = shamir.VerifiableShare{
			Share:        shamir.Share{Index: prms.Index, Value: o.Secret},
			Decommitment: o.Decommitment,
		}
	}
	return out, nil
}
