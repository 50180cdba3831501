package zkp

import "github.com/renproject/secp256k1"

// Witness holds the prover's secret state for one run of the Sigma-protocol:
// the blinding randomness sampled in the first move, plus the witness to the
// multiplicative relation being proven.
type Witness struct {
	d, s, x, s1, s2              secp256k1.Fn
	alpha, beta, rho, sigma, tau secp256k1.Fn
}
