package mulzkp

import "github.com/renproject/mpc-core/mulopen/mulzkp/zkp"

// Proof is a non-interactive zero-knowledge proof of knowledge of alpha,
// beta, rho, sigma and tau such that a = ped(h, alpha, rho),
// b = ped(h, beta, sigma) and c = ped(h, alpha*beta, tau), for public
// Pedersen commitments a, b, c. The challenge is derived from the message
// via the Fiat-Shamir transform, so it is not transmitted as part of the
// proof.
type Proof struct {
	msg zkp.Message
	res zkp.Response
}

// SizeHint implements the surge.SizeHinter interface.
func (p Proof) SizeHint() int {
	return p.msg.SizeHint() + p.res.SizeHint()
}

// Marshal implements the surge.Marshaler interface.
func (p Proof) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := p.msg.Marshal(buf, rem)
	if err != nil {
		return buf, rem, err
	}
	return p.res.Marshal(buf, rem)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (p *Proof) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := p.msg.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, err
	}
	return p.res.Unmarshal(buf, rem)
}
