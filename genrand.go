// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/toole-brendan/secp256k1zkp/internal/drbg"
)

// genrand regenerates the prover's deterministic randomness from
// (nonce, commit, proof header prefix): one blinding scalar per ring
// with the last forced to cancel the rest, and one scalar per
// signature slot. When mask is non-nil, each slot's 32-byte block is
// XORed with the corresponding slice of mask, and mask is updated in
// place with the result so a rewinder observes the block after
// inversion.
//
// Returns false when a slot scalar came out zero or overflowing, a
// ~2^-100 event the prover surfaces as a retryable failure.
func genrand(sec, s []secp256k1.ModNScalar, mask []byte, rsizes []int,
	nonce, commit, prefix []byte) bool {

	seed := make([]byte, 0, 32+33+10)
	seed = append(seed, nonce[:32]...)
	seed = append(seed, commit[:33]...)
	seed = append(seed, prefix...)
	rng := drbg.New(seed)
	defer rng.Zeroize()
	defer zeroBytes(seed)

	var tmp [32]byte
	defer zeroBytes(tmp[:])

	var acc secp256k1.ModNScalar
	defer acc.Zero()

	rings := len(rsizes)
	ok := true
	npub := 0
	for i := 0; i < rings; i++ {
		if i < rings-1 {
			rng.Generate(tmp[:])
			for {
				rng.Generate(tmp[:])
				overflow := sec[i].SetBytes(&tmp) != 0
				if !overflow && !sec[i].IsZero() {
					break
				}
			}
			acc.Add(&sec[i])
		} else {
			acc.Negate()
			sec[i].Set(&acc)
		}
		for j := 0; j < rsizes[i]; j++ {
			rng.Generate(tmp[:])
			if mask != nil {
				for b := 0; b < 32; b++ {
					tmp[b] ^= mask[(i*4+j)*32+b]
					mask[(i*4+j)*32+b] = tmp[b]
				}
			}
			overflow := s[npub].SetBytes(&tmp) != 0
			if overflow || s[npub].IsZero() {
				ok = false
			}
			npub++
		}
	}
	return ok
}
