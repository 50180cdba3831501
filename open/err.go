package open

import "errors"

var (
	// ErrInvalidBatchSize is returned when the number of shares in a batch
	// does not equal the batch size the instance was constructed for.
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrInconsistentIndices is returned when the shares within a single
	// batch do not all carry the same index.
	ErrInconsistentIndices = errors.New("inconsistent indices")

	// ErrInvalidIndex is returned when the batch's index is not a member of
	// the party indices the instance was constructed with.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrDuplicateIndex is returned when a share from the batch's index has
	// already been accepted by this instance.
	ErrDuplicateIndex = errors.New("duplicate index")

	// ErrInvalidShare is returned when at least one share in the batch does
	// not verify against its corresponding commitment.
	ErrInvalidShare = errors.New("invalid share")
)
