package mulopen

import (
	"github.com/renproject/mpc-core/mulopen/mulzkp"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
)

// Message is the type sent between parties during an invocation of the
// multiply and open protocol. It carries the sender's share of the masked
// product, a commitment to that share, and a proof that the share is
// consistent with the input commitments.
type Message struct {
	VShare     shamir.VerifiableShare
	Commitment secp256k1.Point
	Proof      mulzkp.Proof
}

// SizeHint implements the surge.SizeHinter interface.
func (msg Message) SizeHint() int {
	return msg.VShare.SizeHint() +
		msg.Commitment.SizeHint() +
		msg.Proof.SizeHint()
}

// Marshal implements the surge.Marshaler interface.
func (msg Message) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := msg.VShare.Marshal(buf, rem)
	if err != nil {
		return buf, rem, err
	}
	buf, rem, err = msg.Commitment.Marshal(buf, rem)
	if err != nil {
		return buf, rem, err
	}
	return msg.Proof.Marshal(buf, rem)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (msg *Message) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := msg.VShare.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, err
	}
	buf, rem, err = msg.Commitment.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, err
	}
	return msg.Proof.Unmarshal(buf, rem)
}
