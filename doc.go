// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package secp256k1zkp implements Pedersen commitments and Back-Maxwell
confidential-transaction range proofs over secp256k1.

A Pedersen commitment binds a 64-bit value v and a 32-byte blinding
factor r into the 33-byte compressed point C = r*G + v*G2, where G2 is
a second generator with no known discrete log relative to G. The
commitments are additively homomorphic, which VerifyTally exploits to
check that a set of inputs and outputs balances to a public excess
without learning any of the committed values.

A range proof convinces a verifier that a committed value lies in a
subrange of [0, 2^64) without revealing it. The value is reduced to a
base-10 mantissa/exponent form, the mantissa is split into base-4
digits, each digit gets its own blinded commitment, and a Borromean
ring signature over all digit rings binds everything to the original
commitment. A prover who shares the signing nonce with an auditor
enables rewinding: the auditor re-derives the prover's deterministic
random stream from the nonce and recovers the value, the blinding
factor, and any message bytes folded into the forged signature slots.

All operations require a Context, which owns the precomputed generator
tables. Build one with NewContext and share it; a built Context is
safe for concurrent use.
*/
package secp256k1zkp
