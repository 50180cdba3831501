package brng

import "errors"

var (
	// ErrWrongNumberOfContributions is returned when a batch slot does not
	// carry exactly k contributions, one per dealer.
	ErrWrongNumberOfContributions = errors.New("wrong number of contributions")

	// ErrInvalidCommitments is returned when a contribution's commitment
	// does not have length k.
	ErrInvalidCommitments = errors.New("invalid commitments")

	// ErrWrongIndex is returned when a contribution's share index does not
	// equal the calling party's own index.
	ErrWrongIndex = errors.New("wrong index")

	// ErrInvalidShare is returned when a contribution's share does not
	// verify against its commitment.
	ErrInvalidShare = errors.New("invalid share")
)
