// Package params holds the common, per-session configuration shared by every
// sub-protocol in the core: the list of party indices, the calling party's
// own index, and the Pedersen commitment parameter h.
package params

import "github.com/renproject/secp256k1"

// Parameters is the immutable context that every sub-protocol instance is
// constructed against. It is built once per session and shared (by value or
// reference) across BRNG, OPEN, RNG/RZG, MULOPEN, INV and RKPG.
type Parameters struct {
	// Indices is the set of indices of all parties that may contribute
	// shares. It defines who is allowed to send messages into a
	// sub-protocol instance.
	Indices []secp256k1.Fn

	// Index is this party's own index. It must be an element of Indices.
	Index secp256k1.Fn

	// H is the second generator used for Pedersen commitments, independent
	// of the curve's standard base point.
	H secp256k1.Point
}

// HasIndex returns true if index is a member of params.Indices.
func (params *Parameters) HasIndex(index secp256k1.Fn) bool {
	for _, other := range params.Indices {
		if other.Eq(&index) {
			return true
		}
	}
	return false
}

// ValidPedersenParameter returns false when h cannot be securely used as the
// second Pedersen generator. This does not guarantee that h is secure, but
// rules out a small number of cases that are known to be insecure: the
// identity element, and the standard base point itself (in which case the
// commitment scheme would no longer be hiding).
func ValidPedersenParameter(h secp256k1.Point) bool {
	var g secp256k1.Point
	one := secp256k1.NewFnFromU16(1)
	g.BaseExp(&one)
	return !h.IsInfinity() && !h.Eq(&g)
}
