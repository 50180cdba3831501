package rkpg

import "errors"

var (
	// ErrWrongBatchSize is returned when the batch size of the given shares
	// is not equal to the batch size of the RKPG instance.
	ErrWrongBatchSize = errors.New("wrong batch size")

	// ErrEmptyBatch is returned when the RKPG instance was constructed with
	// a batch size of zero, so there is no share to index into.
	ErrEmptyBatch = errors.New("empty batch")

	// ErrInvalidIndex is returned when the index of the shares in the batch
	// is not one of the indices of the RKPG instance.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrDuplicateIndex is returned when the index of the shares in the
	// batch has already been seen before.
	ErrDuplicateIndex = errors.New("duplicate index")

	// ErrInconsistentShares is returned when not all shares in the batch
	// have the same index.
	ErrInconsistentShares = errors.New("inconsistent shares")

	// ErrDecodeFailed is returned when the Reed-Solomon decoder could not
	// reconstruct the decommitment polynomial from the shares received so
	// far, because too many of them are inconsistent with the rest.
	ErrDecodeFailed = errors.New("reed-solomon decode failed")
)
