// Package mulzkp implements a non-interactive zero-knowledge proof, derived
// from the Sigma-protocol in the zkp subpackage via the Fiat-Shamir
// transform, of knowledge of a multiplicative relation between three
// Pedersen-committed values.
package mulzkp

import (
	"crypto/sha256"

	"github.com/renproject/mpc-core/mulopen/mulzkp/zkp"
	"github.com/renproject/secp256k1"
)

// CreateProof constructs a non-interactive proof that c = ped(h, alpha*beta,
// tau), given that a = ped(h, alpha, rho) and b = ped(h, beta, sigma).
func CreateProof(h, a, b, c *secp256k1.Point, alpha, beta, rho, sigma, tau secp256k1.Fn) Proof {
	msg, w := zkp.New(h, b, alpha, beta, rho, sigma, tau)
	e := computeChallenge(a, b, c, &msg)
	res := zkp.ResponseForChallenge(&w, &e)

	return Proof{msg: msg, res: res}
}

// Verify checks a proof against the public Pedersen commitments a, b and c,
// using h as the Pedersen parameter. It returns true only if the proof is
// valid.
func Verify(h, a, b, c *secp256k1.Point, p *Proof) bool {
	e := computeChallenge(a, b, c, &p.msg)
	return zkp.Verify(h, a, b, c, &p.msg, &p.res, &e)
}

// computeChallenge derives the verifier's challenge from the public
// commitments and the prover's first message, using the Fiat-Shamir
// heuristic. Binding the challenge to a, b and c as well as the message
// prevents a prover from choosing the commitments after seeing the
// challenge.
func computeChallenge(a, b, c *secp256k1.Point, msg *zkp.Message) secp256k1.Fn {
	data := make([]byte, a.SizeHint()+b.SizeHint()+c.SizeHint()+msg.SizeHint())
	buf, rem := data, len(data)

	buf, rem, _ = a.Marshal(buf, rem)
	buf, rem, _ = b.Marshal(buf, rem)
	buf, rem, _ = c.Marshal(buf, rem)
	_, _, _ = msg.Marshal(buf, rem)

	digest := sha256.Sum256(data)

	var e secp256k1.Fn
	e.SetB32(digest[:])
	return e
}
