// Package rkpg implements random key-pair generation: given the output of
// an RNG instance (verifiable shares of a random secret x, committed as
// ped(h, x, rho) = xG + rhoH) and an accompanying RZG instance, the parties
// jointly recover the public point xG without ever reconstructing x or rho
// individually. The Pedersen decommitment rho is revealed (masked by the
// RZG sharing, so no single party's rho leaks) and used to strip rhoH from
// the commitment, leaving the public key.
package rkpg

import (
	"fmt"

	"github.com/renproject/mpc-core/params"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
	"github.com/renproject/shamir/rs"
)

// State holds the shares received so far for one batch of RKPG instances.
type State struct {
	buffers       [][]secp256k1.Fn
	shareReceived []bool
	count         int
}

func newState(n, b int) State {
	buffers := make([][]secp256k1.Fn, b)
	for i := range buffers {
		buffers[i] = make([]secp256k1.Fn, n)
	}
	return State{
		buffers:       buffers,
		shareReceived: make([]bool, n),
	}
}

// An RKPGer is a state machine that drives one invocation of the public-key
// recovery protocol to completion.
type RKPGer struct {
	state State

	k      int
	points []secp256k1.Point

	prms    *params.Parameters
	decoder rs.Decoder
}

// New returns a new RKPGer state machine along with this party's own share
// of the decommitment-revealing message, to be broadcast to the other
// parties.
//
// rngShareBatch and rngCommitmentBatch are the output of an RNG instance:
// this party's verifiable shares of a batch of random secrets, and the
// public commitment to each. rzgShareBatch is the output of an
// accompanying RZG instance with the same threshold, used to mask the
// decommitment reveal so that no individual party's share of rho leaks.
func New(
	prms *params.Parameters,
	rngShareBatch, rzgShareBatch shamir.VerifiableShares,
	rngCommitmentBatch []shamir.Commitment,
) (RKPGer, shamir.Shares, error) {
	n := len(prms.Indices)
	b := len(rngShareBatch)
	if len(rzgShareBatch) != b {
		panic(fmt.Sprintf(
			"rng and rzg shares have different batch sizes: expected %v (rng) to equal %v (rzg)",
			b, len(rzgShareBatch),
		))
	}
	if len(rngCommitmentBatch) != b {
		panic(fmt.Sprintf(
			"invalid commitment batch size: expected %v (rngShares), got %v",
			b, len(rngCommitmentBatch),
		))
	}
	k := 0
	if b > 0 {
		k = rngCommitmentBatch[0].Len()
	}

	shares := make(shamir.Shares, b)
	for i := range shares {
		index := rzgShareBatch[i].Share.Index
		decommitmentShare := shamir.Share{Index: index, Value: rngShareBatch[i].Decommitment}
		shares[i].Add(&decommitmentShare, &rzgShareBatch[i].Share)
	}

	points := make([]secp256k1.Point, b)
	for i := range points {
		points[i] = rngCommitmentBatch[i][0]
	}

	rkpger := RKPGer{
		state:   newState(n, b),
		k:       k,
		points:  points,
		prms:    prms,
		decoder: rs.NewDecoder(prms.Indices, k),
	}

	return rkpger, shares, nil
}

// HandleShareBatch applies a state transition upon receiving a batch of
// decommitment-reveal shares from another party. Once enough shares have
// been received to attempt Reed-Solomon decoding, the output public key
// batch is computed and returned. If not enough shares have been received,
// the return value is nil with a nil error. If the message batch is
// invalid in any way, or the Reed-Solomon decoder cannot reconstruct the
// decommitment polynomial, an error is returned along with a nil value.
//
// Validation runs in order: batch size, then (since a zero-length batch
// has no share to read an index from) emptiness, then index consistency
// across the batch, then index membership, then duplicate detection.
func (rkpger *RKPGer) HandleShareBatch(shareBatch shamir.Shares) ([]secp256k1.Point, error) {
	n := len(rkpger.prms.Indices)
	b := len(rkpger.points)
	if len(shareBatch) != b {
		return nil, ErrWrongBatchSize
	}
	if b == 0 {
		return nil, ErrEmptyBatch
	}

	index := shareBatch[0].Index
	for i := 1; i < len(shareBatch); i++ {
		if !shareBatch[i].IndexEq(&index) {
			return nil, ErrInconsistentShares
		}
	}

	ind := -1
	for i := range rkpger.prms.Indices {
		if index.Eq(&rkpger.prms.Indices[i]) {
			ind = i
			break
		}
	}
	if ind < 0 {
		return nil, ErrInvalidIndex
	}
	if rkpger.state.shareReceived[ind] {
		return nil, ErrDuplicateIndex
	}

	for i, buf := range rkpger.state.buffers {
		buf[ind] = shareBatch[i].Value
	}
	rkpger.state.shareReceived[ind] = true
	rkpger.state.count++

	if rkpger.state.count < n-rkpger.k+1 {
		return nil, nil
	}

	secrets := make([]secp256k1.Fn, b)
	for i, buf := range rkpger.state.buffers {
		poly, ok := rkpger.decoder.Decode(buf)
		if !ok {
			return nil, ErrDecodeFailed
		}
		secrets[i] = *poly.Coefficient(0)
	}

	pubKeys := make([]secp256k1.Point, b)
	for i, secret := range secrets {
		// xG = (xG + rho*H) - rho*H
		secret.Negate(&secret)
		pubKeys[i].Scale(&rkpger.prms.H, &secret)
		pubKeys[i].Add(&pubKeys[i], &rkpger.points[i])
	}
	return pubKeys, nil
}
