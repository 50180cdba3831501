// Package open implements threshold opening (reconstruction) of a batch of
// verifiable secret sharings.
//
// An instance of State collects VerifiableShare contributions from distinct
// parties, B at a time (one batch element per sharing in the instance), until
// a reconstruction threshold k is met for every sharing in lockstep. Once met,
// the instance is terminal: further calls to HandleVShareBatch leave it
// unchanged and return a nil result.
package open

import (
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"

	"github.com/renproject/mpc-core/params"
)

// InstanceParams holds the per-run data for one opening instance: the
// Pedersen commitment vector for each of the B sharings being opened. Every
// commitment in the batch must share the same length k, the reconstruction
// threshold.
type InstanceParams struct {
	commitmentBatch []shamir.Commitment
}

// NewInstanceParams constructs the InstanceParams for a batch of commitments.
// It panics if the commitments do not all have equal length; this is a
// precondition the caller controls; see spec.md §7.
func NewInstanceParams(commitmentBatch []shamir.Commitment) InstanceParams {
	for i := 1; i < len(commitmentBatch); i++ {
		if commitmentBatch[i].Len() != commitmentBatch[0].Len() {
			panic("commitment batch has inconsistent thresholds")
		}
	}
	return InstanceParams{commitmentBatch: commitmentBatch}
}

// Threshold returns the reconstruction threshold k shared by every
// commitment in the instance.
func (inst *InstanceParams) Threshold() int {
	if len(inst.commitmentBatch) == 0 {
		return 0
	}
	return inst.commitmentBatch[0].Len()
}

// BatchSize returns B, the number of independent sharings opened in
// lockstep by this instance.
func (inst *InstanceParams) BatchSize() int {
	return len(inst.commitmentBatch)
}

// Opening is the reconstructed (secret, decommitment) pair for one sharing in
// a batch.
type Opening struct {
	Secret       secp256k1.Fn
	Decommitment secp256k1.Fn
}

// State is the append-only buffer of verified contributions for an opening
// instance. Its zero value is not usable; construct with New.
type State struct {
	vshareBufs []shamir.VerifiableShares
}

// New returns a fresh State for the given instance, with one empty,
// k-capacity buffer per batch element.
func New(inst *InstanceParams) State {
	bufs := make([]shamir.VerifiableShares, inst.BatchSize())
	for i := range bufs {
		bufs[i] = make(shamir.VerifiableShares, 0, inst.Threshold())
	}
	return State{vshareBufs: bufs}
}

// SharesReceived returns the number of distinct, valid senders this instance
// has accepted so far.
func (state *State) SharesReceived() int {
	if len(state.vshareBufs) == 0 {
		return 0
	}
	return len(state.vshareBufs[0])
}

func (state *State) containsIndex(index secp256k1.Fn) bool {
	for _, vshare := range state.vshareBufs[0] {
		if vshare.Share.Index.Eq(&index) {
			return true
		}
	}
	return false
}

// HandleVShareBatch validates and, if valid, accepts a batch of B shares (one
// from a single sender, one per sharing in the instance). It checks, in
// order: the batch size, that every share in the batch carries the same
// index, that the index belongs to params.Indices, that the index has not
// already contributed, and that every share verifies against its
// commitment.
//
// On success, if the instance was already terminal (k shares previously
// accepted), the batch is a late message: it is ignored and (nil, nil) is
// returned without mutating state. Otherwise the batch is appended to the
// buffers; once the buffers reach length k, the reconstructed (secret,
// decommitment) pair for each of the B sharings is returned.
//
// Any validation failure leaves state completely unmodified.
func HandleVShareBatch(
	state *State,
	inst *InstanceParams,
	prms *params.Parameters,
	vshareBatch shamir.VerifiableShares,
) ([]Opening, error) {
	b := len(state.vshareBufs)
	if len(vshareBatch) != b {
		return nil, ErrInvalidBatchSize
	}
	for i := 1; i < len(vshareBatch); i++ {
		if !vshareBatch[i].Share.Index.Eq(&vshareBatch[0].Share.Index) {
			return nil, ErrInconsistentIndices
		}
	}

	index := vshareBatch[0].Share.Index
	if !prms.HasIndex(index) {
		return nil, ErrInvalidIndex
	}
	if state.containsIndex(index) {
		return nil, ErrDuplicateIndex
	}
	for i, vshare := range vshareBatch {
		if !shamir.IsValid(prms.H, &inst.commitmentBatch[i], &vshare) {
			return nil, ErrInvalidShare
		}
	}

	if state.SharesReceived() == inst.Threshold() {
		// Terminal: a late, otherwise-valid message is simply dropped.
		return nil, nil
	}
	for i := range state.vshareBufs {
		state.vshareBufs[i] = append(state.vshareBufs[i], vshareBatch[i])
	}

	if state.SharesReceived() != inst.Threshold() {
		return nil, nil
	}
	return reconstruct(state), nil
}

func reconstruct(state *State) []Opening {
	openings := make([]Opening, len(state.vshareBufs))
	for i, buf := range state.vshareBufs {
		valueShares := make(shamir.Shares, len(buf))
		decommitmentShares := make(shamir.Shares, len(buf))
		for j, vshare := range buf {
			valueShares[j] = vshare.Share
			decommitmentShares[j] = shamir.Share{
				Index: vshare.Share.Index,
				Value: vshare.Decommitment,
			}
		}
		openings[i] = Opening{
			Secret:       shamir.Open(valueShares),
			Decommitment: shamir.Open(decommitmentShares),
		}
	}
	return openings
}
