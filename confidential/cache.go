// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package confidential

import (
	"github.com/decred/dcrd/lru"

	secp256k1zkp "github.com/toole-brendan/secp256k1zkp"
)

// ProofCache remembers range proofs that already verified so blocks
// re-validating the same outputs skip the expensive ring-signature
// check. Entries are keyed by the output hash, which commits to both
// the commitment and the proof bytes. The cache is safe for
// concurrent use.
type ProofCache struct {
	verified lru.Cache
}

// NewProofCache returns a cache holding up to limit verified proofs.
func NewProofCache(limit uint) *ProofCache {
	return &ProofCache{verified: lru.NewCache(limit)}
}

// Verify checks the output's range proof, consulting and updating the
// cache.
func (c *ProofCache) Verify(ctx *secp256k1zkp.Context, o *Output) error {
	key := o.Hash()
	if c.verified.Contains(key) {
		return nil
	}
	if _, _, err := o.Verify(ctx); err != nil {
		return err
	}
	c.verified.Add(key)
	return nil
}
