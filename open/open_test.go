package open_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/renproject/mpc-core/open"

	"github.com/renproject/mpc-core/params"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
	"github.com/renproject/shamir/shamirutil"
)

var _ = Describe("Opener", func() {
	RandomTestParams := func() (int, int, int, []secp256k1.Fn, secp256k1.Point) {
		n := shamirutil.RandRange(9, 20)
		k := shamirutil.RandRange(2, n/3-1)
		b := shamirutil.RandRange(1, 5)
		indices := shamirutil.RandomIndices(n)
		h := secp256k1.RandomPoint()
		return n, k, b, indices, h
	}

	VSSBatch := func(indices []secp256k1.Fn, k, b int, h secp256k1.Point) (
		[]shamir.VerifiableShares, []shamir.Commitment, []secp256k1.Fn,
	) {
		byParty := make([]shamir.VerifiableShares, len(indices))
		for i := range byParty {
			byParty[i] = make(shamir.VerifiableShares, b)
		}
		coms := make([]shamir.Commitment, b)
		secrets := make([]secp256k1.Fn, b)

		sharer := shamir.NewVSSharer(indices, h)
		for i := 0; i < b; i++ {
			secrets[i] = secp256k1.RandomFn()
			var shares shamir.VerifiableShares
			com := shamir.NewCommitmentWithCapacity(k)
			sharer.Share(&shares, &com, secrets[i], k)
			coms[i] = com
			for j, share := range shares {
				byParty[j][i] = share
			}
		}
		return byParty, coms, secrets
	}

	Context("when enough valid shares have been received", func() {
		Specify("the instance reconstructs the correct secrets and decommitments", func() {
			n, k, b, indices, h := RandomTestParams()
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, secrets := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			perm := rand.Perm(n)
			var openings []Opening
			var err error
			for i := 0; i < k; i++ {
				openings, err = HandleVShareBatch(&state, &inst, &prms, shares[perm[i]])
				Expect(err).ToNot(HaveOccurred())
			}

			Expect(openings).To(HaveLen(b))
			for i, opening := range openings {
				Expect(opening.Secret.Eq(&secrets[i])).To(BeTrue())

				// The opened pair must match the constant term of the
				// commitment: ped(h, secret, decommitment) == coms[i][0].
				var ped, hPow secp256k1.Point
				ped.BaseExp(&opening.Secret)
				hPow.Scale(&h, &opening.Decommitment)
				ped.Add(&ped, &hPow)
				Expect(ped.Eq(&coms[i][0])).To(BeTrue())
			}
		})
	})

	Context("when the batch size is wrong", func() {
		Specify("ErrInvalidBatchSize is returned and state is untouched", func() {
			n, k, b, indices, h := RandomTestParams()
			_ = n
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, _ := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			badBatch := shares[0][:b-1]
			openings, err := HandleVShareBatch(&state, &inst, &prms, badBatch)
			Expect(err).To(Equal(ErrInvalidBatchSize))
			Expect(openings).To(BeNil())
			Expect(state.SharesReceived()).To(Equal(0))
		})
	})

	Context("when a share batch has inconsistent indices", func() {
		Specify("ErrInconsistentIndices is returned", func() {
			_, k, b, indices, h := RandomTestParams()
			if b < 2 {
				b = 2
			}
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, _ := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			batch := make(shamir.VerifiableShares, b)
			copy(batch, shares[0])
			batch[1] = shares[1][1]

			openings, err := HandleVShareBatch(&state, &inst, &prms, batch)
			Expect(err).To(Equal(ErrInconsistentIndices))
			Expect(openings).To(BeNil())
		})
	})

	Context("when the index is not part of the party set", func() {
		Specify("ErrInvalidIndex is returned", func() {
			_, k, b, indices, h := RandomTestParams()
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, _ := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			foreign := secp256k1.RandomFn()
			batch := make(shamir.VerifiableShares, b)
			copy(batch, shares[0])
			for i := range batch {
				batch[i].Share.Index = foreign
			}

			openings, err := HandleVShareBatch(&state, &inst, &prms, batch)
			Expect(err).To(Equal(ErrInvalidIndex))
			Expect(openings).To(BeNil())
		})
	})

	Context("when an index sends a share batch twice", func() {
		Specify("ErrDuplicateIndex is returned on the second attempt", func() {
			_, k, b, indices, h := RandomTestParams()
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, _ := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			_, err := HandleVShareBatch(&state, &inst, &prms, shares[0])
			Expect(err).ToNot(HaveOccurred())

			openings, err := HandleVShareBatch(&state, &inst, &prms, shares[0])
			Expect(err).To(Equal(ErrDuplicateIndex))
			Expect(openings).To(BeNil())
		})
	})

	Context("when a share does not verify against its commitment", func() {
		Specify("ErrInvalidShare is returned", func() {
			_, k, b, indices, h := RandomTestParams()
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, _ := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			batch := make(shamir.VerifiableShares, b)
			copy(batch, shares[0])
			batch[0].Share.Value = secp256k1.RandomFn()

			openings, err := HandleVShareBatch(&state, &inst, &prms, batch)
			Expect(err).To(Equal(ErrInvalidShare))
			Expect(openings).To(BeNil())
		})
	})

	Context("when the instance has already reconstructed", func() {
		Specify("further share batches are ignored", func() {
			_, k, b, indices, h := RandomTestParams()
			prms := params.Parameters{Indices: indices, Index: indices[0], H: h}

			shares, coms, _ := VSSBatch(indices, k, b, h)
			inst := NewInstanceParams(coms)
			state := New(&inst)

			for i := 0; i < k; i++ {
				_, err := HandleVShareBatch(&state, &inst, &prms, shares[i])
				Expect(err).ToNot(HaveOccurred())
			}

			openings, err := HandleVShareBatch(&state, &inst, &prms, shares[k])
			Expect(err).ToNot(HaveOccurred())
			Expect(openings).To(BeNil())
		})
	})
})
