// Package brng implements batched random number generation by
// contribution-sum: each of k dealers contributes one verifiable sharing of
// a random value, and the output sharing is the componentwise sum. The
// result is unbiased as long as at least one dealer is honest.
package brng

import (
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"

	"github.com/renproject/mpc-core/params"
)

// Sharing is one dealer's contribution to a single batch slot: a verifiable
// sharing of a freshly sampled secret, distributed across every party in
// params.Indices, backed by a length-k commitment.
type Sharing struct {
	VShares    shamir.VerifiableShares
	Commitment shamir.Commitment
}

// Contribution is what a single dealer sends to a single party for a single
// batch slot: the party's own share of the dealer's sharing, together with
// the dealer's commitment.
type Contribution struct {
	VShare     shamir.VerifiableShare
	Commitment shamir.Commitment
}

// CreateSharingBatch deals B independent verifiable sharings of fresh random
// secrets over the parties in prms.Indices, each with reconstruction
// threshold k.
func CreateSharingBatch(b, k int, prms *params.Parameters) []Sharing {
	sharer := shamir.NewVSSharer(prms.Indices, prms.H)
	batch := make([]Sharing, b)
	for i := range batch {
		var shares shamir.VerifiableShares
		com := shamir.NewCommitmentWithCapacity(k)
		sharer.Share(&shares, &com, secp256k1.RandomFn(), k)
		batch[i] = Sharing{VShares: shares, Commitment: com}
	}
	return batch
}

// IsValid checks a batch of contributions received by this party from k
// dealers, one slot per element of batch. Every element of batch must hold
// exactly k contributions, one per dealer.
//
// Checks are performed in this order across the whole batch before any
// cryptographic verification is attempted:
//   - ErrWrongNumberOfContributions if any slot does not have exactly k
//     contributions.
//   - ErrInvalidCommitments if any contribution's commitment does not have
//     length k.
//   - ErrWrongIndex if any contribution's share index is not this party's
//     own index.
//   - ErrInvalidShare if any contribution's share does not verify against
//     its commitment.
func IsValid(k int, prms *params.Parameters, batch [][]Contribution) error {
	for _, slot := range batch {
		if len(slot) != k {
			return ErrWrongNumberOfContributions
		}
		for _, c := range slot {
			if c.Commitment.Len() != k {
				return ErrInvalidCommitments
			}
		}
		for _, c := range slot {
			if !c.VShare.Share.Index.Eq(&prms.Index) {
				return ErrWrongIndex
			}
		}
	}
	for _, slot := range batch {
		for _, c := range slot {
			if !shamir.IsValid(prms.H, &c.Commitment, &c.VShare) {
				return ErrInvalidShare
			}
		}
	}
	return nil
}

// OutputSharingBatch sums, per batch slot, the contributions from the k
// dealers into this party's share of the output sharing, together with the
// output sharing's commitment. It assumes batch has already passed IsValid.
func OutputSharingBatch(batch [][]Contribution) (shamir.VerifiableShares, []shamir.Commitment) {
	shares := make(shamir.VerifiableShares, len(batch))
	coms := make([]shamir.Commitment, len(batch))
	for i, slot := range batch {
		share := slot[0].VShare
		com := slot[0].Commitment
		for j := 1; j < len(slot); j++ {
			share.Add(&share, &slot[j].VShare)
			com.Add(&com, &slot[j].Commitment)
		}
		shares[i] = share
		coms[i] = com
	}
	return shares, coms
}
