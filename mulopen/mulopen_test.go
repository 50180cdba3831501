package mulopen_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/renproject/mpc-core/mulopen"

	"github.com/renproject/mpc-core/mulopen/mulzkp"
	"github.com/renproject/mpc-core/params"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
	"github.com/renproject/shamir/shamirutil"
)

// dealBatch deals a batch of b independent k-of-n VSS sharings of random
// secrets, returning each party's shares alongside the public commitments.
func dealBatch(indices []secp256k1.Fn, h secp256k1.Point, k, b int) ([]shamir.VerifiableShares, []shamir.Commitment) {
	sharer := shamir.NewVSSharer(indices, h)
	perPartyShares := make([]shamir.VerifiableShares, len(indices))
	for i := range perPartyShares {
		perPartyShares[i] = make(shamir.VerifiableShares, b)
	}
	commitments := make([]shamir.Commitment, b)

	for s := 0; s < b; s++ {
		var shares shamir.VerifiableShares
		com := shamir.NewCommitmentWithCapacity(k)
		sharer.Share(&shares, &com, secp256k1.RandomFn(), k)
		commitments[s] = com
		for p := range perPartyShares {
			perPartyShares[p][s] = shares[p]
		}
	}

	return perPartyShares, commitments
}

// dealZeroBatch deals a batch of b independent threshold-k VSS sharings of
// the zero secret.
func dealZeroBatch(indices []secp256k1.Fn, h secp256k1.Point, k, b int) ([]shamir.VerifiableShares, []shamir.Commitment) {
	sharer := shamir.NewVSSharer(indices, h)
	perPartyShares := make([]shamir.VerifiableShares, len(indices))
	for i := range perPartyShares {
		perPartyShares[i] = make(shamir.VerifiableShares, b)
	}
	commitments := make([]shamir.Commitment, b)

	for s := 0; s < b; s++ {
		var shares shamir.VerifiableShares
		com := shamir.NewCommitmentWithCapacity(k)
		sharer.Share(&shares, &com, secp256k1.NewFnFromU16(0), k)
		commitments[s] = com
		for p := range perPartyShares {
			perPartyShares[p][s] = shares[p]
		}
	}

	return perPartyShares, commitments
}

func polyEvalPointForTest(commitment shamir.Commitment, index secp256k1.Fn) secp256k1.Point {
	acc := commitment[len(commitment)-1]
	for l := len(commitment) - 2; l >= 0; l-- {
		acc.Scale(&acc, &index)
		acc.Add(&acc, &commitment[l])
	}
	return acc
}

func pedersenCommitForTest(value, decommitment *secp256k1.Fn, h *secp256k1.Point) secp256k1.Point {
	var commitment, hPow secp256k1.Point
	commitment.BaseExp(value)
	hPow.Scale(h, decommitment)
	commitment.Add(&commitment, &hPow)
	return commitment
}

func secrets(commitments []shamir.Commitment, perPartyShares []shamir.VerifiableShares, k int) []secp256k1.Fn {
	out := make([]secp256k1.Fn, len(commitments))
	for s := range commitments {
		shares := make(shamir.Shares, k)
		for p := 0; p < k; p++ {
			shares[p] = perPartyShares[p][s].Share
		}
		out[s] = shamir.Open(shares)
	}
	return out
}

var _ = Describe("MulOpener", func() {
	RandomTestParams := func() (int, int, int, []secp256k1.Fn, secp256k1.Point) {
		n := shamirutil.RandRange(9, 20)
		k := shamirutil.RandRange(2, n/3-1)
		b := shamirutil.RandRange(1, 5)
		indices := shamirutil.RandomIndices(n)
		h := secp256k1.RandomPoint()
		return n, k, b, indices, h
	}

	Context("creating a new mulopener", func() {
		Specify("the returned messages should be valid", func() {
			n, k, b, indices, h := RandomTestParams()
			aShares, aCommitments := dealBatch(indices, h, k, b)
			bShares, bCommitments := dealBatch(indices, h, k, b)
			rzgShares, rzgCommitments := dealZeroBatch(indices, h, 2*k-1, b)

			playerInd := rand.Intn(n)
			prms := &params.Parameters{Indices: indices, Index: indices[playerInd], H: h}

			_, messages := New(
				aShares[playerInd], bShares[playerInd], rzgShares[playerInd],
				aCommitments, bCommitments, rzgCommitments,
				prms,
			)

			for i, message := range messages {
				Expect(message.VShare.Share.Index.Eq(&prms.Index)).To(BeTrue())

				aShareCommitment := polyEvalPointForTest(aCommitments[i], prms.Index)
				bShareCommitment := polyEvalPointForTest(bCommitments[i], prms.Index)
				Expect(mulzkp.Verify(
					&h, &aShareCommitment, &bShareCommitment, &message.Commitment, &message.Proof,
				)).To(BeTrue())

				var shareCommitment secp256k1.Point
				rzgShareCommitment := polyEvalPointForTest(rzgCommitments[i], prms.Index)
				shareCommitment.Add(&message.Commitment, &rzgShareCommitment)
				com := pedersenCommitForTest(&message.VShare.Share.Value, &message.VShare.Decommitment, &h)
				Expect(shareCommitment.Eq(&com)).To(BeTrue())
			}
		})
	})

	Context("handling messages", func() {
		Specify("the protocol reconstructs the product once 2k-1 valid shares are received", func() {
			n, k, b, indices, h := RandomTestParams()
			aShares, aCommitments := dealBatch(indices, h, k, b)
			bShares, bCommitments := dealBatch(indices, h, k, b)
			rzgShares, rzgCommitments := dealZeroBatch(indices, h, 2*k-1, b)

			aSecrets := secrets(aCommitments, aShares, k)
			bSecrets := secrets(bCommitments, bShares, k)
			expected := make([]secp256k1.Fn, b)
			for i := range expected {
				expected[i].Mul(&aSecrets[i], &bSecrets[i])
			}

			playerInd := rand.Intn(n)
			prms := &params.Parameters{Indices: indices, Index: indices[playerInd], H: h}

			mulopener, _ := New(
				aShares[playerInd], bShares[playerInd], rzgShares[playerInd],
				aCommitments, bCommitments, rzgCommitments,
				prms,
			)

			var result []secp256k1.Fn
			count := 1
			for i, ind := range indices {
				if ind.Eq(&prms.Index) {
					continue
				}
				otherPrms := &params.Parameters{Indices: indices, Index: ind, H: h}
				_, messageBatch := New(
					aShares[i], bShares[i], rzgShares[i],
					aCommitments, bCommitments, rzgCommitments,
					otherPrms,
				)

				output, err := mulopener.HandleShareBatch(messageBatch)
				Expect(err).To(BeNil())
				count++
				if count >= 2*k-1 {
					Expect(output).ToNot(BeNil())
					result = output
					break
				}
				Expect(output).To(BeNil())
			}

			for i := range expected {
				Expect(result[i].Eq(&expected[i])).To(BeTrue())
			}
		})

		Specify("an incorrect batch size returns an error", func() {
			_, k, b, indices, h := RandomTestParams()
			aShares, aCommitments := dealBatch(indices, h, k, b)
			bShares, bCommitments := dealBatch(indices, h, k, b)
			rzgShares, rzgCommitments := dealZeroBatch(indices, h, 2*k-1, b)

			prms := &params.Parameters{Indices: indices, Index: indices[0], H: h}
			mulopener, _ := New(
				aShares[0], bShares[0], rzgShares[0],
				aCommitments, bCommitments, rzgCommitments,
				prms,
			)

			_, messageBatch := New(
				aShares[1], bShares[1], rzgShares[1],
				aCommitments, bCommitments, rzgCommitments,
				&params.Parameters{Indices: indices, Index: indices[1], H: h},
			)

			output, err := mulopener.HandleShareBatch(messageBatch[:len(messageBatch)-1])
			Expect(output).To(BeNil())
			Expect(err).To(Equal(ErrIncorrectBatchSize))
		})

		Specify("an invalid index returns an error", func() {
			_, k, b, indices, h := RandomTestParams()
			aShares, aCommitments := dealBatch(indices, h, k, b)
			bShares, bCommitments := dealBatch(indices, h, k, b)
			rzgShares, rzgCommitments := dealZeroBatch(indices, h, 2*k-1, b)

			prms := &params.Parameters{Indices: indices, Index: indices[0], H: h}
			mulopener, messageBatch := New(
				aShares[0], bShares[0], rzgShares[0],
				aCommitments, bCommitments, rzgCommitments,
				prms,
			)

			for i := range messageBatch {
				messageBatch[i].VShare.Share.Index = secp256k1.RandomFn()
			}

			output, err := mulopener.HandleShareBatch(messageBatch)
			Expect(output).To(BeNil())
			Expect(err).To(Equal(ErrInvalidIndex))
		})

		Specify("a share inconsistent with its commitment returns an error", func() {
			_, k, b, indices, h := RandomTestParams()
			aShares, aCommitments := dealBatch(indices, h, k, b)
			bShares, bCommitments := dealBatch(indices, h, k, b)
			rzgShares, rzgCommitments := dealZeroBatch(indices, h, 2*k-1, b)

			prms := &params.Parameters{Indices: indices, Index: indices[0], H: h}
			mulopener, _ := New(
				aShares[0], bShares[0], rzgShares[0],
				aCommitments, bCommitments, rzgCommitments,
				prms,
			)

			otherPrms := &params.Parameters{Indices: indices, Index: indices[1], H: h}
			_, messageBatch := New(
				aShares[1], bShares[1], rzgShares[1],
				aCommitments, bCommitments, rzgCommitments,
				otherPrms,
			)
			// Corrupt the share so that it no longer matches the
			// commitment sent alongside it.
			messageBatch[0].VShare.Share.Value = secp256k1.RandomFn()

			output, err := mulopener.HandleShareBatch(messageBatch)
			Expect(output).To(BeNil())
			Expect(err).To(Equal(ErrInvalidShares))
		})

		Specify("a proof that does not match the input commitments returns an error", func() {
			_, k, b, indices, h := RandomTestParams()
			aShares, aCommitments := dealBatch(indices, h, k, b)
			bShares, bCommitments := dealBatch(indices, h, k, b)
			rzgShares, rzgCommitments := dealZeroBatch(indices, h, 2*k-1, b)

			prms := &params.Parameters{Indices: indices, Index: indices[0], H: h}
			mulopener, _ := New(
				aShares[0], bShares[0], rzgShares[0],
				aCommitments, bCommitments, rzgCommitments,
				prms,
			)

			otherPrms := &params.Parameters{Indices: indices, Index: indices[1], H: h}
			_, messageBatch := New(
				aShares[1], bShares[1], rzgShares[1],
				aCommitments, bCommitments, rzgCommitments,
				otherPrms,
			)
			// Replace the proof with one for an unrelated statement; the
			// share and its commitment remain mutually consistent, so only
			// the proof verification should fail.
			fakeA, fakeB := secp256k1.RandomPoint(), secp256k1.RandomPoint()
			var fakeC secp256k1.Point
			zero := secp256k1.NewFnFromU16(0)
			fakeC.BaseExp(&zero)
			alpha, beta, rho, sigma, tau := secp256k1.RandomFn(), secp256k1.RandomFn(), secp256k1.RandomFn(), secp256k1.RandomFn(), secp256k1.RandomFn()
			messageBatch[0].Proof = mulzkp.CreateProof(&h, &fakeA, &fakeB, &fakeC, alpha, beta, rho, sigma, tau)

			output, err := mulopener.HandleShareBatch(messageBatch)
			Expect(output).To(BeNil())
			Expect(err).To(Equal(ErrInvalidZKP))
		})
	})
})
